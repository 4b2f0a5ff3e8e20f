package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemove(t *testing.T) {
	handlers := []string{"log", "refresh", "notify", "refresh"}

	// Only the first match goes
	assert.Equal(t, []string{"log", "notify", "refresh"}, Remove(handlers, "refresh"))
	assert.Equal(t, []string{"a", "b"}, Remove([]string{"a", "b"}, "c"))
	assert.Empty(t, Remove([]string{"a"}, "a"))
	assert.Nil(t, Remove[string](nil, "a"))
}
