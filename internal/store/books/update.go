package books

import "github.com/5w1tchy/bookshelf-api/internal/models"

// Update replaces every client-writable field of the book and refreshes UpdatedAt.
// ID and InsertedAt are kept.
func (s *Store) Update(id string, in models.BookInput) (models.Book, error) {
	if err := checkPages(in); err != nil {
		return models.Book{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Book{}, ErrNotFound
	}
	b := s.books[i]
	b.Apply(in)
	b.UpdatedAt = s.stamp()
	s.books[i] = b
	return b, nil
}
