package httpx

import (
	"encoding/json"
	"log"
	"net/http"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// Envelope is the body of every API response.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[httpx] encode response: %v", err)
	}
}

// Success writes a "success" envelope. data may be nil.
func Success(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

// Fail writes a "fail" envelope without data.
func Fail(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Status: StatusFail, Message: message})
}
