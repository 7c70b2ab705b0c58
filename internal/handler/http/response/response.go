// Package response implements the action router's response envelope: a
// flat {success, message, data, code} shape, always served over HTTP
// 200. Business failures are distinguished by success=false and an
// optional code; only infrastructure failures (a malformed request body,
// or an error without a business code escaping a handler or the admin
// gate) use a non-200 status.
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wire shape every action response takes.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Code    string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// Success writes a successful envelope with no message.
func Success(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// SuccessWithMessage writes a successful envelope with a message.
func SuccessWithMessage(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a business failure. Per §7, business failures never use a
// non-200 status code — the `success` field carries the outcome.
func Fail(w http.ResponseWriter, message, code string) {
	writeJSON(w, http.StatusOK, Envelope{Success: false, Message: message, Code: code})
}

// InfrastructureFailure writes a failure for errors that carry no
// business code: malformed request bodies, and (via HandleError) store or
// other infrastructure errors returned by a handler. It carries no
// business code.
func InfrastructureFailure(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, Envelope{Success: false, Message: message})
}
