// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Success responses are plain JSON objects with no wrapper key. Error
// responses always carry an "error" string, plus an optional "message"
// for internal failures.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the envelope returned for error cases.
//
//	{ "error": "No data received" }
type Response struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
// Header() must be set before WriteHeader(), and WriteHeader() before the body.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Error builds an error body from a literal message.
func Error(msg string) Response {
	return Response{Error: msg}
}

// GeneralError wraps any Go error into the error body.
func GeneralError(err error) Response {
	return Response{Error: err.Error()}
}

// ValidationError converts validator field errors into a single
// human-readable Response, using the JSON name of each field.
//
//	{ "error": "field sheet_id is required" }
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{Error: strings.Join(errMessages, ", ")}
}
