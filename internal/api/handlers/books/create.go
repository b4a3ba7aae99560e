package books

import (
	"errors"
	"net/http"

	"github.com/5w1tchy/bookshelf-api/internal/api/apperr"
	"github.com/5w1tchy/bookshelf-api/internal/api/httpx"
	"github.com/5w1tchy/bookshelf-api/internal/i18n"
	storebooks "github.com/5w1tchy/bookshelf-api/internal/store/books"
)

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.checkInput(in, createMessages); err != nil {
		h.fail(w, r, err)
		return
	}

	b, err := h.store.Create(in)
	if err != nil {
		if errors.Is(err, storebooks.ErrInvalid) {
			h.fail(w, r, apperr.Validation(i18n.AddReadPageTooLarge, err))
			return
		}
		h.fail(w, r, apperr.Internal(i18n.AddFailed, err))
		return
	}

	httpx.Success(w, http.StatusCreated, h.text(r, i18n.BookAdded), createdData{BookID: b.ID})
}
