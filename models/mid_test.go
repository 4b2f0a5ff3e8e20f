package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMID(t *testing.T) {
	for _, s := range []string{"pv-a1", "pv-a16", "pv-b2", "pv-d37", "pv-v7", "wr-1", "wr-4", "bs-2"} {
		mid, err := ParseMID(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, mid.String())
	}

	mid, err := ParseMID("pv-c12")
	require.NoError(t, err)
	assert.Equal(t, MID{Prefix: "pv-c", Number: 12}, mid)
}

func TestParseMID_Invalid(t *testing.T) {
	for _, s := range []string{"", "pv-a", "pv-a0", "pv-a17", "pv-b1", "pv-w1", "wr-5", "bs-3", "xx-1", "pv-a100", " pv-a1", "PV-A1"} {
		_, err := ParseMID(s)
		assert.ErrorIs(t, err, ErrInvalidMID, s)
		assert.False(t, IsValidMID(s), s)
	}
}

func TestAllMIDs(t *testing.T) {
	mids := AllMIDs()

	total := 0
	for _, rng := range MIDRanges {
		total += rng.To - rng.From + 1
	}
	assert.Len(t, mids, total)

	seen := map[string]bool{}
	for _, mid := range mids {
		assert.True(t, IsValidMID(mid), mid)
		assert.False(t, seen[mid], "duplicate %s", mid)
		seen[mid] = true
	}

	assert.Equal(t, "bs-1", mids[0])
	assert.Equal(t, "wr-4", mids[len(mids)-1])

	// Callers get their own copy
	mids[0] = "changed"
	assert.Equal(t, "bs-1", AllMIDs()[0])
}
