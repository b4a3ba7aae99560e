package id

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNanoID_Uniqueness(t *testing.T) {
	gen := NewNanoID()
	ids := make(map[string]bool)
	count := 1000

	for i := 0; i < count; i++ {
		id, err := gen.NewID()
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}

	assert.Len(t, ids, count)
}

func TestNanoID_Format(t *testing.T) {
	id, err := NewNanoID().NewID()
	require.NoError(t, err)
	assert.Len(t, id, BookIDLength)

	// NanoID alphabet: A-Za-z0-9_-
	for _, char := range id {
		assert.True(t,
			(char >= 'A' && char <= 'Z') ||
				(char >= 'a' && char <= 'z') ||
				(char >= '0' && char <= '9') ||
				char == '_' || char == '-',
			"Character %c should be URL-safe", char)
	}
}

func TestNanoID_ZeroLengthFallsBack(t *testing.T) {
	id, err := NanoID{}.NewID()
	require.NoError(t, err)
	assert.Len(t, id, BookIDLength)
}

func TestFunc(t *testing.T) {
	gen := Func(func() (string, error) { return "fixed", nil })
	id, err := gen.NewID()
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)

	boom := errors.New("boom")
	_, err = Func(func() (string, error) { return "", boom }).NewID()
	assert.ErrorIs(t, err, boom)
}

func BenchmarkNanoID(b *testing.B) {
	gen := NewNanoID()
	for i := 0; i < b.N; i++ {
		_, _ = gen.NewID()
	}
}
