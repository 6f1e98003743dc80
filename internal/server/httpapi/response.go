package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Sinduaditya/fisikaap-sub000/internal/common"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/services"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	maxBodyBytes = 1 << 20
)

const (
	msgUnauthenticated    = "Unauthenticated."
	msgInvalidCredentials = "Invalid credentials"
	msgNotFound           = "Resource not found."
	msgServerError        = "Server error."
	msgMalformedBody      = "Malformed JSON body."
	msgTooManyRequests    = "Too many requests. Please try again later."
)

// envelope is the body of every response.
type envelope struct {
	Status  string              `json:"status"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, code int, message string, data any) {
	writeJSON(w, code, envelope{Status: statusSuccess, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, code int, message string, fields map[string][]string) {
	writeJSON(w, code, envelope{Status: statusError, Message: message, Errors: fields})
}

// writeServiceError maps a service error onto a status code. Unexpected
// errors are logged and hidden behind a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var v *services.ValidationError

	switch {
	case errors.As(err, &v):
		writeError(w, http.StatusUnprocessableEntity, v.Error(), v.Fields)
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, msgNotFound, nil)
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrTokenRevoked):
		writeError(w, http.StatusUnauthorized, msgUnauthenticated, nil)
	default:
		loggerFrom(r.Context()).Error(r.Context(), "request failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError, nil)
	}
}

// decodeBody reads a JSON object into dst, answering 400 itself when the
// body is unreadable.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, msgMalformedBody, nil)
		return false
	}
	return true
}
