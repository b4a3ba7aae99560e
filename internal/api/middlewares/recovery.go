package middlewares

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/5w1tchy/bookshelf-api/internal/api/httpx"
	"github.com/5w1tchy/bookshelf-api/internal/i18n"
)

// Recovery turns a handler panic into a 500 fail envelope and logs the stack.
func Recovery(tr *i18n.Translator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				err := recover()
				if err == nil {
					return
				}
				if err == http.ErrAbortHandler {
					panic(err)
				}
				rid := GetRequestID(r)
				if rid == "" {
					rid = "unknown"
				}
				log.Printf("[PANIC] RequestID=%s %s %s: %v\n%s", rid, r.Method, r.URL.Path, err, debug.Stack())

				httpx.Fail(w, http.StatusInternalServerError, tr.Text(r.Header.Get("Accept-Language"), i18n.ServerError))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
