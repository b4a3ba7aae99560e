package middlewares

import (
	"log"
	"net/http"
	"time"
)

const HeaderResponseTime = "X-Response-Time"

// rtWriter stamps X-Response-Time just before the header is flushed.
type rtWriter struct {
	http.ResponseWriter
	start       time.Time
	wroteHeader bool
	status      int
}

func (w *rtWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.Header().Set(HeaderResponseTime, time.Since(w.start).String())
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *rtWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *rtWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// ResponseTime sets X-Response-Time and writes one access log line per request.
func ResponseTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &rtWriter{ResponseWriter: w, start: time.Now(), status: http.StatusOK}
		next.ServeHTTP(rw, r)

		if !rw.wroteHeader {
			rw.Header().Set(HeaderResponseTime, time.Since(rw.start).String())
		}
		log.Printf("[access] %s %s %d %s rid=%s", r.Method, r.URL.RequestURI(), rw.status, time.Since(rw.start), GetRequestID(r))
	})
}
