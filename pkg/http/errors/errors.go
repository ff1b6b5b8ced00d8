package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the envelope returned for every failed request.
// Error mirrors the HTTP status code.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// Message returns the fixed client-facing text for a status code.
func Message(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusForbidden:
		return MsgForbidden
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusMethodNotAllowed:
		return MsgMethodNotAllowed
	case http.StatusUnprocessableEntity:
		return MsgUnprocessable
	case http.StatusBadGateway:
		return MsgUpstream
	default:
		return MsgInternal
	}
}

// RespondError writes a standardized error response to the HTTP response writer
func RespondError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   status,
		Message: Message(status),
	})
}

// RespondBadRequest writes a 400 envelope.
func RespondBadRequest(w http.ResponseWriter) {
	RespondError(w, http.StatusBadRequest)
}

// RespondForbidden writes a 403 envelope.
func RespondForbidden(w http.ResponseWriter) {
	RespondError(w, http.StatusForbidden)
}

// RespondNotFound writes a 404 envelope.
func RespondNotFound(w http.ResponseWriter) {
	RespondError(w, http.StatusNotFound)
}

// RespondMethodNotAllowed writes a 405 envelope.
func RespondMethodNotAllowed(w http.ResponseWriter) {
	RespondError(w, http.StatusMethodNotAllowed)
}

// RespondUnprocessable writes a 422 envelope.
func RespondUnprocessable(w http.ResponseWriter) {
	RespondError(w, http.StatusUnprocessableEntity)
}

// RespondInternalError writes a 500 envelope.
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError)
}
