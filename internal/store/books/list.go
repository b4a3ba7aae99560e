package books

import (
	"strings"

	"github.com/5w1tchy/bookshelf-api/internal/models"
	"golang.org/x/text/cases"
)

// List applies f conjunctively and returns the matches in insertion order.
// The result is never nil.
func (s *Store) List(f ListFilter) []models.BookSummary {
	// A Caser keeps state; one per call.
	fold := cases.Fold()
	needle := ""
	if f.Name != "" {
		needle = fold.String(f.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.BookSummary, 0, len(s.books))
	for _, b := range s.books {
		if needle != "" && !strings.Contains(fold.String(b.Name), needle) {
			continue
		}
		if f.Reading != nil && b.Reading != *f.Reading {
			continue
		}
		if f.Finished != nil && b.Finished != *f.Finished {
			continue
		}
		out = append(out, b.Summarize())
	}
	return out
}
