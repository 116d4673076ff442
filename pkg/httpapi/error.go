package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
// RequestID lets callers correlate the response with the request log.
type ErrorEnvelope struct {
	Message   string `json:"message"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

// WriteError emits the error envelope with a request id resolved via
// EnsureRequestID. idHeader defaults to X-Request-ID when empty.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message, idHeader string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:      code,
		Message:   message,
		RequestID: EnsureRequestID(w, r, idHeader),
	})
}

// EnsureRequestID resolves the request id for a response: the id the
// logging middleware already stamped on the response headers, else the
// inbound header, else a freshly minted uuid. The response header is
// stamped when it was not already set.
func EnsureRequestID(w http.ResponseWriter, r *http.Request, idHeader string) string {
	if w == nil {
		return ""
	}
	header := strings.TrimSpace(idHeader)
	if header == "" {
		header = "X-Request-ID"
	}

	if id := strings.TrimSpace(w.Header().Get(header)); id != "" {
		return id
	}
	if r != nil {
		if id := strings.TrimSpace(r.Header.Get(header)); id != "" {
			w.Header().Set(header, id)
			return id
		}
	}

	id := uuid.NewString()
	w.Header().Set(header, id)
	return id
}
