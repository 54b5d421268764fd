package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/crucial707/blogapi/internal/models"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Client-facing messages.
const (
	// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
	ErrMessageInternal     = "internal server error"
	ErrMessageInvalidInput = "Invalid Input data"
	ErrMessageNotFound     = "Blog Not Found"
	ErrMessageUnauthorized = "unauthorized"
	ErrMessageForbidden    = "forbidden"
)

// Envelope is the body of every blog API response. Clients branch on Status.
type Envelope struct {
	Status  string                        `json:"status"`
	Message string                        `json:"message,omitempty"`
	Blogs   *models.Page[models.BlogView] `json:"blogs,omitempty"`
	Blog    *models.BlogView              `json:"blog,omitempty"`
	Fields  map[string]string             `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// JSONError sends an error envelope with a single message.
func JSONError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, Envelope{Status: StatusError, Message: message})
}

// JSONValidationError sends an error envelope with optional field-level details.
// status is typically http.StatusBadRequest (400).
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	writeJSON(w, status, Envelope{Status: StatusError, Message: message, Fields: fields})
}

// JSONSuccess sends a success envelope with a message.
func JSONSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Envelope{Status: StatusSuccess, Message: message})
}
