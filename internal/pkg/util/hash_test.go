package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPostHash(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		hash := NewPostHash()
		assert.Len(t, hash, 64)
		assert.Regexp(t, "^[0-9a-f]+$", hash)
		assert.False(t, seen[hash], "hash 不应重复")
		seen[hash] = true
	}
}
