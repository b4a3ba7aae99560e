package books

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/5w1tchy/bookshelf-api/internal/api/apperr"
	"github.com/5w1tchy/bookshelf-api/internal/i18n"
	"github.com/5w1tchy/bookshelf-api/internal/models"
	"github.com/5w1tchy/bookshelf-api/internal/validate"
)

var (
	createMessages = inputMessages{
		nameRequired:  i18n.AddNameRequired,
		negativePages: i18n.AddNegativePages,
		readPageLarge: i18n.AddReadPageTooLarge,
		pagesFirst:    true,
	}
	updateMessages = inputMessages{
		nameRequired:  i18n.UpdateNameRequired,
		negativePages: i18n.UpdateNegativePages,
		readPageLarge: i18n.UpdateReadPageTooBig,
	}
)

var errTrailingData = errors.New("body must hold a single JSON object")

// decodeInput reads a BookInput body. Unknown fields such as id or finished are ignored;
// anything but whitespace after the object is not.
func decodeInput(r *http.Request) (models.BookInput, error) {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	var in models.BookInput
	if err := dec.Decode(&in); err != nil {
		return models.BookInput{}, apperr.BadRequest(i18n.InvalidBody, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return models.BookInput{}, apperr.BadRequest(i18n.InvalidBody, errTrailingData)
	}
	return in, nil
}

// checkInput validates in and picks one message. Create reports readPage > pageCount
// before a missing name; update reports the name first.
func (h *Handler) checkInput(in models.BookInput, msgs inputMessages) error {
	err := h.v.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validate.Errors
	if !errors.As(err, &verrs) {
		return apperr.Internal(i18n.ServerError, err)
	}
	switch {
	case msgs.pagesFirst && verrs.Has("readPage", "ltefield"):
		return apperr.Validation(msgs.readPageLarge, verrs)
	case verrs.Has("name"):
		return apperr.Validation(msgs.nameRequired, verrs)
	case verrs.Has("pageCount", "gte") || verrs.Has("readPage", "gte"):
		return apperr.Validation(msgs.negativePages, verrs)
	default:
		return apperr.Validation(msgs.readPageLarge, verrs)
	}
}

func (h *Handler) text(r *http.Request, k i18n.Key) string {
	return h.tr.Text(r.Header.Get("Accept-Language"), k)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	apperr.Write(w, r, h.tr, err)
}
