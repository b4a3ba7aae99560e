package handlers

import (
	"net/http"
	"time"

	"github.com/5w1tchy/bookshelf-api/internal/api/httpx"
	"github.com/5w1tchy/bookshelf-api/internal/i18n"
	storebooks "github.com/5w1tchy/bookshelf-api/internal/store/books"
)

type rootData struct {
	Service   string   `json:"service"`
	Endpoints []string `json:"endpoints"`
}

type healthData struct {
	Books  int    `json:"books"`
	Uptime string `json:"uptime"`
}

var endpoints = []string{
	"POST /books",
	"GET /books",
	"GET /books/{bookId}",
	"PUT /books/{bookId}",
	"DELETE /books/{bookId}",
	"GET /healthz",
}

// Root lists the available endpoints.
func Root(tr *i18n.Translator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.Success(w, http.StatusOK, tr.Text(r.Header.Get("Accept-Language"), i18n.ServiceInfo), rootData{
			Service:   "bookshelf-api",
			Endpoints: endpoints,
		})
	}
}

// Health reports liveness and the number of stored books.
func Health(store *storebooks.Store, tr *i18n.Translator) http.HandlerFunc {
	started := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.Success(w, http.StatusOK, tr.Text(r.Header.Get("Accept-Language"), i18n.ServerHealthy), healthData{
			Books:  store.Len(),
			Uptime: time.Since(started).Round(time.Second).String(),
		})
	}
}
