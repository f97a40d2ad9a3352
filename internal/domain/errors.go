package domain

import (
	"errors"
	"strings"
)

// ErrValidation is returned by the service when a submission fails field
// validation. The concrete error is a *ValidationError listing every violation.
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrMalformedRequest is returned when the request body cannot be decoded into
// a SubmissionInput at all. Handlers should map this to HTTP 400.
var ErrMalformedRequest = errors.New("malformed request")

// ErrPersistence wraps any failure to store a submission.
// The submission is not considered received; the caller may resubmit.
var ErrPersistence = errors.New("persistence failure")

// ErrDelivery wraps a failure to send one or both notification emails after
// the submission has already been stored.
var ErrDelivery = errors.New("delivery failure")

// ViolationCode identifies the kind of field-level validation failure.
type ViolationCode string

const (
	// ErrMissingField marks a required field that is absent or blank.
	ErrMissingField ViolationCode = "missing_field"
	// ErrInvalidFormat marks a field that is present but malformed.
	ErrInvalidFormat ViolationCode = "invalid_format"
)

// Violation is a single field-level validation failure.
type Violation struct {
	Field   string        `json:"field"`
	Code    ViolationCode `json:"code"`
	Message string        `json:"message"`
}

// ValidationError carries every violation found in one SubmissionInput, in
// field order (name before email).
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return "validation error: " + strings.Join(msgs, "; ")
}

// Is lets callers match any *ValidationError with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Has reports whether the error contains a violation for field with code.
func (e *ValidationError) Has(field string, code ViolationCode) bool {
	for _, v := range e.Violations {
		if v.Field == field && v.Code == code {
			return true
		}
	}
	return false
}
