package books

import (
	"fmt"

	"github.com/5w1tchy/bookshelf-api/internal/models"
)

// Create appends a new book built from in and returns it.
func (s *Store) Create(in models.BookInput) (models.Book, error) {
	if err := checkPages(in); err != nil {
		return models.Book{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bookID, err := s.uniqueID()
	if err != nil {
		return models.Book{}, err
	}

	now := s.stamp()
	b := models.Book{ID: bookID, InsertedAt: now, UpdatedAt: now}
	b.Apply(in)
	s.books = append(s.books, b)

	if s.indexOf(bookID) < 0 {
		return models.Book{}, fmt.Errorf("%w: %s", ErrNotInserted, bookID)
	}
	return b, nil
}

// uniqueID draws ids until one is unused. Caller holds s.mu.
func (s *Store) uniqueID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		candidate, err := s.ids.NewID()
		if err != nil {
			return "", err
		}
		if candidate != "" && s.indexOf(candidate) < 0 {
			return candidate, nil
		}
	}
	return "", ErrIDExhausted
}
