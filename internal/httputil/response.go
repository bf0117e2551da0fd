package httputil

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Anurag-Zel/User-Registration/internal/validate"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    any             `json:"data,omitempty"`
	Errors  validate.Errors `json:"errors,omitempty"`
	// Field names the offending column on unique-constraint collisions.
	Field string `json:"field,omitempty"`
}

// RespondJSON writes any payload with the given status code.
// Encoding errors are logged to avoid silent failures.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// RespondSuccess writes a success envelope.
func RespondSuccess(w http.ResponseWriter, message string, data any, statusCode int) {
	RespondJSON(w, Response{Success: true, Message: message, Data: data}, statusCode)
}

// RespondError writes a failure envelope with a message only.
func RespondError(w http.ResponseWriter, message string, statusCode int) {
	RespondJSON(w, Response{Success: false, Message: message}, statusCode)
}

// RespondValidationErrors writes the 400 envelope carrying field-level messages.
func RespondValidationErrors(w http.ResponseWriter, errs validate.Errors) {
	RespondJSON(w, Response{
		Success: false,
		Message: "Validation error",
		Errors:  errs,
	}, http.StatusBadRequest)
}

// RespondDuplicate writes the 409 envelope for unique-constraint collisions.
func RespondDuplicate(w http.ResponseWriter, field string) {
	RespondJSON(w, Response{
		Success: false,
		Message: "Duplicate field value",
		Field:   field,
	}, http.StatusConflict)
}
