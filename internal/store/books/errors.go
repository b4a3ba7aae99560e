package books

import "errors"

var (
	ErrNotFound = errors.New("book not found")
	ErrInvalid  = errors.New("readPage must not exceed pageCount")

	// ErrNotInserted means a freshly appended book could not be found again.
	ErrNotInserted = errors.New("book missing after insert")
	ErrIDExhausted = errors.New("could not generate a unique book id")
)
