package router

import (
	"net/http"

	"github.com/5w1tchy/bookshelf-api/internal/api/httpx"
	"github.com/5w1tchy/bookshelf-api/internal/i18n"
)

// withFailEnvelope answers requests no pattern matches with the JSON fail
// envelope instead of ServeMux's plain text. Status and Allow header are kept.
func withFailEnvelope(mux *http.ServeMux, tr *i18n.Translator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, pattern := mux.Handler(r); pattern != "" {
			mux.ServeHTTP(w, r)
			return
		}
		mux.ServeHTTP(&envelopeWriter{ResponseWriter: w, r: r, tr: tr}, r)
	})
}

// envelopeWriter replaces the body of a 404 or 405 reply. Other replies,
// such as redirects to the clean path, pass through untouched.
type envelopeWriter struct {
	http.ResponseWriter
	r           *http.Request
	tr          *i18n.Translator
	wrote       bool
	passthrough bool
}

func (w *envelopeWriter) WriteHeader(code int) {
	if w.wrote {
		return
	}
	w.wrote = true

	var key i18n.Key
	switch code {
	case http.StatusNotFound:
		key = i18n.RouteNotFound
	case http.StatusMethodNotAllowed:
		key = i18n.MethodNotAllowed
	default:
		w.passthrough = true
		w.ResponseWriter.WriteHeader(code)
		return
	}
	httpx.Fail(w.ResponseWriter, code, w.tr.Text(w.r.Header.Get("Accept-Language"), key))
}

func (w *envelopeWriter) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	if w.passthrough {
		return w.ResponseWriter.Write(b)
	}
	return len(b), nil
}
