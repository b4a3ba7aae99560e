package books

import (
	"net/http"

	"github.com/5w1tchy/bookshelf-api/internal/i18n"
	storebooks "github.com/5w1tchy/bookshelf-api/internal/store/books"
	"github.com/5w1tchy/bookshelf-api/internal/validate"
)

type Handler struct {
	store *storebooks.Store
	v     *validate.Validator
	tr    *i18n.Translator
}

func NewHandler(store *storebooks.Store, v *validate.Validator, tr *i18n.Translator) *Handler {
	return &Handler{store: store, v: v, tr: tr}
}

// Routes registers the bookshelf endpoints. HEAD is served by the GET patterns.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /books", h.create)
	mux.HandleFunc("GET /books", h.list)
	mux.HandleFunc("GET /books/{$}", h.list)
	mux.HandleFunc("GET /books/{bookId}", h.get)
	mux.HandleFunc("PUT /books/{bookId}", h.put)
	mux.HandleFunc("DELETE /books/{bookId}", h.del)

	// No id in the path: rejected by put with 400.
	mux.HandleFunc("PUT /books", h.put)
	mux.HandleFunc("PUT /books/{$}", h.put)
}
