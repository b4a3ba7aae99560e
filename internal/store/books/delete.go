package books

import "slices"

// Delete removes the book with the given id, keeping the order of the rest.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.books = slices.Delete(s.books, i, i+1)
	return nil
}
