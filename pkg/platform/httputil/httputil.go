// Package httputil holds the JSON response helpers shared by HTTP handlers.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "nebula/pkg/domain-errors"
)

// CORS and caching headers attached to every command response.
const (
	AllowOrigin  = "*"
	AllowMethods = "GET, POST, OPTIONS"
	AllowHeaders = "Content-Type"
)

// CommandHeaders returns the header set of a command response.
func CommandHeaders() http.Header {
	h := make(http.Header, 5)
	h.Set("Content-Type", "application/json")
	SetNoCacheCORS(h)
	return h
}

// SetNoCacheCORS sets the no-cache and permissive CORS headers on h.
func SetNoCacheCORS(h http.Header) {
	h.Set("Cache-Control", "no-cache")
	h.Set("Access-Control-Allow-Origin", AllowOrigin)
	h.Set("Access-Control-Allow-Methods", AllowMethods)
	h.Set("Access-Control-Allow-Headers", AllowHeaders)
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into a status and a small JSON error body for
// routes outside the command envelope (unknown functions, health). Internal
// errors omit their description.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)
	body := map[string]string{"error": string(code)}
	if status < http.StatusInternalServerError {
		body["error_description"] = err.Error()
	}
	WriteJSON(w, status, body)
}
