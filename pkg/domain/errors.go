package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorCode classifies a field-level validation failure. Presentation layers
// may localize on the code; Message carries the default Thai text.
type ErrorCode string

// Field-level validation error codes.
const (
	// ErrCodeEmptyField marks a required field that was blank after trimming.
	ErrCodeEmptyField ErrorCode = "empty_field"
	// ErrCodeInvalidURL marks a field that must hold a well-formed absolute URL.
	ErrCodeInvalidURL ErrorCode = "invalid_url"
	// ErrCodePatternMismatch marks a field that failed its fixed format pattern.
	ErrCodePatternMismatch ErrorCode = "pattern_mismatch"
	// ErrCodeBlankNotAllowed marks an optional field present as whitespace only.
	ErrCodeBlankNotAllowed ErrorCode = "blank_not_allowed"
	// ErrCodeMissingImage marks a create submission without an image reference.
	ErrCodeMissingImage ErrorCode = "missing_image"
	// ErrCodeDuplicateKey marks a secondary key already used by another record.
	ErrCodeDuplicateKey ErrorCode = "duplicate_key"
	// ErrCodeDuplicateName marks a display name already used by another record.
	ErrCodeDuplicateName ErrorCode = "duplicate_name"
)

// FieldError describes a single rejected field.
type FieldError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// FieldErrors maps field names to their validation failures. A nil or empty
// map means the input passed. FieldErrors implements error so validation
// outcomes can travel through error returns while staying structured.
type FieldErrors map[string]FieldError

// Set records a failure for a field. Schema checks run before uniqueness
// checks, so a field never carries more than one error per submission.
func (e FieldErrors) Set(field string, code ErrorCode, message string) {
	e[field] = FieldError{Code: code, Message: message}
}

// Has reports whether the field was rejected.
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Fields returns the rejected field names in stable order.
func (e FieldErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation passed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields(), ", "))
}

// ErrNotFound is returned when a mutation targets a record that does not
// exist. The form session guarantees the target existed when editing began,
// so callers treat this as an invariant violation to log rather than a
// user-facing message.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}
