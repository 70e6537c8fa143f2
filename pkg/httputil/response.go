// Package httputil provides shared HTTP utilities for consistent response handling.
//
// Error responses use the envelope of the emulated API:
//
//	{"code":"not found","message":"bucket \"x\" not found"}
package httputil

import (
	"encoding/json"
	"net/http"
)

// Error codes of the emulated API. CodeBadRequest keeps the trailing space
// the reference server sends for invalid parameters.
const (
	CodeNotFound         = "not found"
	CodeBadRequest       = "bad request "
	CodeInvalid          = "invalid"
	CodeUnauthorized     = "unauthorized"
	CodeConflict         = "conflict"
	CodeMethodNotAllowed = "method not allowed"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes the JSON error envelope with the given status code.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// WriteText writes a plain text response. An empty body is sent without
// a content type.
func WriteText(w http.ResponseWriter, status int, body string) {
	if body == "" {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// WriteHTML writes an HTML response.
func WriteHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// WriteNoContent writes a 204 No Content response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteCreated writes a 201 Created response with the created resource.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, data)
}

// WriteOK writes a 200 OK response with data.
func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteBadRequest writes a 400 Bad Request error response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, CodeBadRequest, message)
}

// WriteInvalid writes a 400 error for a request body that cannot be used.
func WriteInvalid(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, CodeInvalid, message)
}

// WriteNotFound writes a 404 Not Found error response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, CodeNotFound, message)
}

// WriteUnauthorized writes a 401 Unauthorized error response.
func WriteUnauthorized(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, CodeUnauthorized, "unauthorized access")
}

// WriteConflict writes a 422 Unprocessable Entity response for a resource
// that already exists.
func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnprocessableEntity, CodeConflict, message)
}

// WriteMethodNotAllowed writes a 405 Method Not Allowed response.
func WriteMethodNotAllowed(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, message)
}
