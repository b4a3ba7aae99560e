package router

import (
	"net/http"

	"github.com/5w1tchy/bookshelf-api/internal/api/handlers"
	"github.com/5w1tchy/bookshelf-api/internal/api/handlers/books"
	mw "github.com/5w1tchy/bookshelf-api/internal/api/middlewares"
	"github.com/5w1tchy/bookshelf-api/internal/i18n"
	storebooks "github.com/5w1tchy/bookshelf-api/internal/store/books"
	"github.com/5w1tchy/bookshelf-api/internal/validate"
)

type Deps struct {
	Store      *storebooks.Store
	Validator  *validate.Validator
	Translator *i18n.Translator
}

// Router mounts every endpoint. Unmatched paths and methods get the fail envelope.
func Router(d Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", handlers.Root(d.Translator))
	mux.HandleFunc("GET /healthz", handlers.Health(d.Store, d.Translator))

	books.NewHandler(d.Store, d.Validator, d.Translator).Routes(mux)

	return withFailEnvelope(mux, d.Translator)
}

// Options configure the middleware chain around the router.
type Options struct {
	AllowedOrigins []string
	StrictSecurity bool
	MaxBodySize    int64
	// Limiter is optional; nil disables rate limiting.
	Limiter mw.Limiter
}

// Secure wraps h in the standard middleware chain, outermost first.
func Secure(h http.Handler, tr *i18n.Translator, o Options) http.Handler {
	chain := []mw.Middleware{
		mw.RequestID,
		mw.Recovery(tr),
		mw.ResponseTime,
		mw.SecurityHeaders(o.StrictSecurity),
		mw.CORS(o.AllowedOrigins),
		mw.HPP(mw.ListQueryParams),
	}
	if o.Limiter != nil {
		chain = append(chain, mw.RateLimit(o.Limiter, mw.PerIPKey("rl"), tr))
	}
	chain = append(chain, mw.Compression, mw.BodySizeLimit(o.MaxBodySize))
	return mw.Chain(h, chain...)
}
