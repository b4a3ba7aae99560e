// Package apperr maps domain failures to the HTTP fail envelope.
package apperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/5w1tchy/bookshelf-api/internal/api/httpx"
	"github.com/5w1tchy/bookshelf-api/internal/i18n"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	default:
		return "internal"
	}
}

// HTTPStatus is the response code for k.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error carries the kind, the message key shown to clients and the cause.
type Error struct {
	Kind Kind
	Key  i18n.Key
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String() + ": " + string(e.Key)
	}
	return e.Kind.String() + ": " + string(e.Key) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(key i18n.Key, err error) *Error { return &Error{Kind: KindValidation, Key: key, Err: err} }
func NotFound(key i18n.Key, err error) *Error   { return &Error{Kind: KindNotFound, Key: key, Err: err} }
func BadRequest(key i18n.Key, err error) *Error { return &Error{Kind: KindBadRequest, Key: key, Err: err} }
func Internal(key i18n.Key, err error) *Error   { return &Error{Kind: KindInternal, Key: key, Err: err} }

// Write renders err as a fail envelope in the request's language.
// Errors that are not *Error become a logged 500.
func Write(w http.ResponseWriter, r *http.Request, tr *i18n.Translator, err error) {
	var ae *Error
	if !errors.As(err, &ae) {
		ae = Internal(i18n.ServerError, err)
	}
	if ae.Kind == KindInternal {
		log.Printf("[apperr] %s %s: %v", r.Method, r.URL.Path, ae)
	}
	httpx.Fail(w, ae.Kind.HTTPStatus(), tr.Text(r.Header.Get("Accept-Language"), ae.Key))
}
