// Package envelope writes every JSON response of the API in one shape:
//
//	{"status": "success", "code": 200, "message": "...", "data": {...}, "meta": null, "errors": null}
package envelope

import (
	"encoding/json"
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json"

// Status is the outcome reported in the "status" member.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusWarning Status = "warning"
	StatusInfo    Status = "info"
)

// Response is the body of every JSON response.
type Response struct {
	// Status mirrors the HTTP outcome: success for 2xx, error otherwise.
	Status Status `json:"status"`

	// Code repeats the HTTP status code so clients reading the body alone
	// don't lose it.
	Code int `json:"code"`

	// Message is a short human readable summary.
	// Example: "authentication successful"
	Message string `json:"message"`

	// Data is the payload of a successful response and null on errors.
	Data any `json:"data"`

	// Meta carries optional paging or diagnostic information.
	Meta any `json:"meta"`

	// Errors lists field level problems. It is null on success.
	Errors []FieldError `json:"errors"`
}

// FieldError is one problem attached to a request field.
type FieldError struct {
	Field   string `json:"field"`          // JSON name of the field, or a pseudo field such as "credentials"
	Message string `json:"message"`        // What is wrong with it
	Type    string `json:"type,omitempty"` // Machine readable code, e.g. "validation_required"
}

// Success writes a success envelope.
func Success(w http.ResponseWriter, code int, message string, data any) {
	Write(w, Response{
		Status:  StatusSuccess,
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Error writes an error envelope. An empty field list is encoded as null.
func Error(w http.ResponseWriter, code int, message string, fieldErrors ...FieldError) {
	resp := Response{
		Status:  StatusError,
		Code:    code,
		Message: message,
	}
	if len(fieldErrors) > 0 {
		resp.Errors = fieldErrors
	}
	Write(w, resp)
}

// Write encodes resp with resp.Code as the HTTP status.
func Write(w http.ResponseWriter, resp Response) {
	if resp.Code == 0 {
		resp.Code = http.StatusOK
	}
	if resp.Status == "" {
		resp.Status = StatusSuccess
		if resp.Code >= http.StatusBadRequest {
			resp.Status = StatusError
		}
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(resp.Code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Err(err).Int("code", resp.Code).Msg("failed to encode response")
	}
}

// FromValidation converts ozzo validation errors into field errors sorted by
// field name. Nested errors are flattened with dotted names. Anything that is
// not a validation.Errors yields nil.
func FromValidation(err error) []FieldError {
	var fields validation.Errors
	if !errors.As(err, &fields) {
		return nil
	}
	return flatten("", fields)
}

func flatten(prefix string, fields validation.Errors) []FieldError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []FieldError
	for _, name := range names {
		fieldErr := fields[name]
		if fieldErr == nil {
			continue
		}
		full := name
		if prefix != "" {
			full = prefix + "." + name
		}

		var nested validation.Errors
		if errors.As(fieldErr, &nested) {
			out = append(out, flatten(full, nested)...)
			continue
		}

		fe := FieldError{Field: full, Message: fieldErr.Error()}
		var coded validation.Error
		if errors.As(fieldErr, &coded) {
			fe.Type = coded.Code()
		}
		out = append(out, fe)
	}
	return out
}
