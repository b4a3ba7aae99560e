package books

import (
	"errors"
	"net/http"
	"strings"

	"github.com/5w1tchy/bookshelf-api/internal/api/apperr"
	"github.com/5w1tchy/bookshelf-api/internal/api/httpx"
	"github.com/5w1tchy/bookshelf-api/internal/i18n"
	storebooks "github.com/5w1tchy/bookshelf-api/internal/store/books"
)

func (h *Handler) put(w http.ResponseWriter, r *http.Request) {
	bookID := strings.TrimSpace(r.PathValue("bookId"))
	if bookID == "" {
		h.fail(w, r, apperr.Validation(i18n.UpdateIDRequired, nil))
		return
	}

	in, err := decodeInput(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.checkInput(in, updateMessages); err != nil {
		h.fail(w, r, err)
		return
	}

	if _, err := h.store.Update(bookID, in); err != nil {
		switch {
		case errors.Is(err, storebooks.ErrNotFound):
			h.fail(w, r, apperr.NotFound(i18n.UpdateNotFound, err))
		case errors.Is(err, storebooks.ErrInvalid):
			h.fail(w, r, apperr.Validation(i18n.UpdateReadPageTooBig, err))
		default:
			h.fail(w, r, err)
		}
		return
	}

	httpx.Success(w, http.StatusOK, h.text(r, i18n.BookUpdated), nil)
}
