package books

import (
	"errors"
	"net/http"

	"github.com/5w1tchy/bookshelf-api/internal/api/apperr"
	"github.com/5w1tchy/bookshelf-api/internal/api/httpx"
	"github.com/5w1tchy/bookshelf-api/internal/i18n"
	storebooks "github.com/5w1tchy/bookshelf-api/internal/store/books"
)

func (h *Handler) del(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.PathValue("bookId")); errors.Is(err, storebooks.ErrNotFound) {
		h.fail(w, r, apperr.NotFound(i18n.DeleteNotFound, err))
		return
	} else if err != nil {
		h.fail(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, h.text(r, i18n.BookDeleted), nil)
}
