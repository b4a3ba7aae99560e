package books

import (
	"net/http"

	"github.com/5w1tchy/bookshelf-api/internal/api/httpx"
	"github.com/5w1tchy/bookshelf-api/internal/i18n"
	storebooks "github.com/5w1tchy/bookshelf-api/internal/store/books"
	"github.com/5w1tchy/bookshelf-api/internal/validate"
)

// list serves GET /books?name=&reading=&finished=
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := storebooks.ListFilter{
		Name:     q.Get("name"),
		Reading:  validate.ParseFlag(q, "reading"),
		Finished: validate.ParseFlag(q, "finished"),
	}

	httpx.Success(w, http.StatusOK, h.text(r, i18n.BooksListed), listData{Books: h.store.List(filter)})
}
