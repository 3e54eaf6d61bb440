package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeID(t *testing.T) {
	t.Run("roundtrip", func(t *testing.T) {
		for _, id := range []uint64{1, 42, 9999999} {
			encoded := EncodeID(id)
			decoded, err := DecodeID(encoded)
			assert.NoError(t, err)
			assert.Equal(t, id, decoded)
		}
	})

	t.Run("opaque", func(t *testing.T) {
		assert.NotEqual(t, "42", EncodeID(42))
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, err := DecodeID("!!!not-base64!!!")
		assert.ErrorIs(t, err, ErrBadCursor)
	})

	t.Run("base64 but not a number", func(t *testing.T) {
		// "aGVsbG8=" 解码后是 "hello"
		_, err := DecodeID("aGVsbG8=")
		assert.ErrorIs(t, err, ErrBadCursor)
	})
}

func TestParseNumberCursor(t *testing.T) {
	n, err := ParseNumberCursor("17")
	assert.NoError(t, err)
	assert.Equal(t, uint64(17), n)

	_, err = ParseNumberCursor("abc")
	assert.ErrorIs(t, err, ErrBadCursor)

	_, err = ParseNumberCursor("-1")
	assert.ErrorIs(t, err, ErrBadCursor)
}
