package books

import (
	"github.com/5w1tchy/bookshelf-api/internal/i18n"
	"github.com/5w1tchy/bookshelf-api/internal/models"
)

type createdData struct {
	BookID string `json:"bookId"`
}

type listData struct {
	Books []models.BookSummary `json:"books"`
}

type bookData struct {
	Book models.Book `json:"book"`
}

// inputMessages are the fail messages of one write operation.
type inputMessages struct {
	nameRequired  i18n.Key
	negativePages i18n.Key
	readPageLarge i18n.Key
	// pagesFirst reports readPage > pageCount ahead of a missing name.
	pagesFirst bool
}
