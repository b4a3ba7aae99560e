package books

import (
	"errors"
	"net/http"

	"github.com/5w1tchy/bookshelf-api/internal/api/apperr"
	"github.com/5w1tchy/bookshelf-api/internal/api/httpx"
	"github.com/5w1tchy/bookshelf-api/internal/i18n"
	storebooks "github.com/5w1tchy/bookshelf-api/internal/store/books"
)

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	b, err := h.store.Get(r.PathValue("bookId"))
	if errors.Is(err, storebooks.ErrNotFound) {
		h.fail(w, r, apperr.NotFound(i18n.BookNotFound, err))
		return
	} else if err != nil {
		h.fail(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, h.text(r, i18n.BookFound), bookData{Book: b})
}
