// Package httpx provides JSON request/response utilities shared by all handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Envelope is the response shape used by every endpoint.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Success sends a success envelope carrying data.
func Success(w http.ResponseWriter, status int, data any) {
	JSON(w, status, Envelope{Status: "success", Data: data})
}

// SuccessMessage sends a success envelope carrying a message and optional data.
func SuccessMessage(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{Status: "success", Message: message, Data: data})
}

// Fail sends a fail envelope with a human-readable message.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Status: "fail", Message: message})
}

// Internal sends a generic 500 without leaking internal detail.
func Internal(w http.ResponseWriter) {
	Fail(w, http.StatusInternalServerError, "internal server error")
}

// ErrBodyTooLarge indicates the request body exceeded the decode limit.
var ErrBodyTooLarge = errors.New("request body too large")

const maxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into target, capping body size.
func DecodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(target); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrBodyTooLarge
		}
		return err
	}
	return nil
}
