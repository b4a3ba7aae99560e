// Package id generates book identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// BookIDLength is the length of generated book ids.
const BookIDLength = 16

// Generator produces fixed-length ids. Implementations must be safe for concurrent use.
type Generator interface {
	NewID() (string, error)
}

// NanoID generates URL-safe NanoIDs of a fixed length.
type NanoID struct {
	Length int
}

// NewNanoID returns a generator producing ids of BookIDLength characters.
func NewNanoID() NanoID {
	return NanoID{Length: BookIDLength}
}

func (n NanoID) NewID() (string, error) {
	size := n.Length
	if size <= 0 {
		size = BookIDLength
	}
	id, err := gonanoid.New(size)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return id, nil
}

// Func adapts a plain function to Generator.
type Func func() (string, error)

func (f Func) NewID() (string, error) { return f() }
