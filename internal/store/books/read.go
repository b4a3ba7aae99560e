package books

import "github.com/5w1tchy/bookshelf-api/internal/models"

// Get returns a copy of the book with the given id.
func (s *Store) Get(id string) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Book{}, ErrNotFound
	}
	return s.books[i], nil
}
