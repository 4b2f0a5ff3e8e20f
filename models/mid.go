package models

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

var ErrInvalidMID = errors.New("invalid element id")

// MIDRe matches an element identifier: a prefix (`pv-<x>`, `wr-` or `bs-`) followed by one or two digits.
var MIDRe = regexp.MustCompile(`^(pv-\w|(?:wr|bs)-)(\d{1,2})$`)

// MIDRange is the inclusive range of numbers valid for a prefix.
type MIDRange struct {
	From int
	To   int
}

// MIDRanges lists every valid prefix and its number range.
var MIDRanges = map[string]MIDRange{
	"bs-":  {From: 1, To: 2},
	"pv-a": {From: 1, To: 16},
	"pv-b": {From: 2, To: 37},
	"pv-c": {From: 3, To: 37},
	"pv-d": {From: 3, To: 37},
	"pv-e": {From: 1, To: 6},
	"pv-f": {From: 1, To: 6},
	"pv-g": {From: 1, To: 6},
	"pv-h": {From: 1, To: 7},
	"pv-i": {From: 1, To: 7},
	"pv-j": {From: 1, To: 7},
	"pv-k": {From: 1, To: 7},
	"pv-l": {From: 1, To: 7},
	"pv-m": {From: 1, To: 7},
	"pv-n": {From: 1, To: 7},
	"pv-o": {From: 1, To: 7},
	"pv-p": {From: 1, To: 7},
	"pv-q": {From: 1, To: 7},
	"pv-r": {From: 1, To: 7},
	"pv-s": {From: 1, To: 7},
	"pv-t": {From: 1, To: 7},
	"pv-u": {From: 1, To: 7},
	"pv-v": {From: 1, To: 7},
	"wr-":  {From: 1, To: 4},
}

// MID is a parsed element identifier.
type MID struct {
	Prefix string // Prefix is the descriptor part, e.g. "pv-a" or "wr-".
	Number int    // Number is the position within the prefix.
}

// String returns the canonical form of the identifier, e.g. "pv-a7".
func (m MID) String() string {
	return m.Prefix + strconv.Itoa(m.Number)
}

// ParseMID parses and validates an element identifier.
//
// Args:
//   - s: The identifier to parse.
//
// Returns:
//   - MID: The parsed identifier.
//   - error: [ErrInvalidMID] (wrapped) if s is malformed, has an unknown prefix or an out of range number.
func ParseMID(s string) (MID, error) {
	results := MIDRe.FindStringSubmatch(s)
	if results == nil {
		return MID{}, fmt.Errorf("%w: %q", ErrInvalidMID, s)
	}

	rng, ok := MIDRanges[results[1]]
	if !ok {
		return MID{}, fmt.Errorf("%w: unknown prefix %q", ErrInvalidMID, results[1])
	}

	n, err := strconv.Atoi(results[2])
	if err != nil {
		return MID{}, fmt.Errorf("%w: %v", ErrInvalidMID, err)
	}

	if n < rng.From || n > rng.To {
		return MID{}, fmt.Errorf("%w: %q out of range %d-%d", ErrInvalidMID, s, rng.From, rng.To)
	}

	return MID{Prefix: results[1], Number: n}, nil
}

// IsValidMID reports whether s is a valid element identifier.
func IsValidMID(s string) bool {
	_, err := ParseMID(s)
	return err == nil
}

var allMIDs = func() []string {
	prefixes := make([]string, 0, len(MIDRanges))
	for prefix := range MIDRanges {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	var mids []string
	for _, prefix := range prefixes {
		rng := MIDRanges[prefix]
		for n := rng.From; n <= rng.To; n++ {
			mids = append(mids, MID{Prefix: prefix, Number: n}.String())
		}
	}
	return mids
}()

// AllMIDs returns every valid identifier in canonical form,
// ordered by prefix and then by number.
func AllMIDs() []string {
	return append([]string(nil), allMIDs...)
}
