package books

import (
	"time"

	"github.com/5w1tchy/bookshelf-api/internal/models"
)

// indexOf returns the slice position of id, or -1. Caller holds s.mu.
func (s *Store) indexOf(id string) int {
	for i := range s.books {
		if s.books[i].ID == id {
			return i
		}
	}
	return -1
}

// stamp returns the current time in UTC at millisecond precision.
func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func checkPages(in models.BookInput) error {
	if in.ReadPage > in.PageCount {
		return ErrInvalid
	}
	return nil
}
