// Package httputil writes JSON responses and error bodies.
package httputil

import (
	"encoding/json"
	"net/http"
)

// Error codes returned in the "error" field.
const (
	CodeBadRequest  = "bad_request"
	CodeNotFound    = "not_found"
	CodeInternal    = "internal_error"
	CodeUnavailable = "service_unavailable"
)

var statusCodes = map[string]int{
	CodeBadRequest:  http.StatusBadRequest,
	CodeNotFound:    http.StatusNotFound,
	CodeInternal:    http.StatusInternalServerError,
	CodeUnavailable: http.StatusServiceUnavailable,
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes {"error": code, "error_description": description}.
// Internal errors never carry a description.
func WriteError(w http.ResponseWriter, code, description string) {
	status, ok := statusCodes[code]
	if !ok {
		code, status = CodeInternal, http.StatusInternalServerError
	}
	body := map[string]string{"error": code}
	if code != CodeInternal && description != "" {
		body["error_description"] = description
	}
	WriteJSON(w, status, body)
}
