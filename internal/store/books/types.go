package books

import (
	"sync"
	"time"

	"github.com/5w1tchy/bookshelf-api/internal/id"
	"github.com/5w1tchy/bookshelf-api/internal/models"
)

// maxIDAttempts bounds id regeneration on collision.
const maxIDAttempts = 5

// Store is an in-memory, insertion-ordered collection of books.
// All methods are safe for concurrent use; a single mutex serializes them.
type Store struct {
	mu    sync.Mutex
	books []models.Book
	ids   id.Generator
	now   func() time.Time
}

// ListFilter narrows List. Nil pointers mean "no filter".
type ListFilter struct {
	Name     string
	Reading  *bool
	Finished *bool
}

type Option func(*Store)

// WithIDGenerator replaces the default nanoid generator.
func WithIDGenerator(g id.Generator) Option {
	return func(s *Store) { s.ids = g }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		books: make([]models.Book, 0, 16),
		ids:   id.NewNanoID(),
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Len reports how many books are stored.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.books)
}
