package service

import (
	"regexp"
	"strings"

	"github.com/pkordes/travel-inquiry/backend/internal/domain"
)

// emailPattern accepts printable ASCII local@domain.tld with exactly one "@"
// and at least one "." after it, each label non-empty. Space (0x20) and "@"
// (0x40) are excluded from every character class.
var emailPattern = regexp.MustCompile(`^[\x21-\x3f\x41-\x7e]+@[\x21-\x3f\x41-\x7e]+\.[\x21-\x3f\x41-\x7e]+$`)

// Validate checks the required fields of a submission.
// It returns nil when the input is acceptable, or a *domain.ValidationError
// listing every violation. Optional fields are opaque and never rejected.
func Validate(in domain.SubmissionInput) error {
	var violations []domain.Violation

	if strings.TrimSpace(in.Name) == "" {
		violations = append(violations, domain.Violation{
			Field:   "name",
			Code:    domain.ErrMissingField,
			Message: "name is required",
		})
	}

	switch {
	case strings.TrimSpace(in.Email) == "":
		violations = append(violations, domain.Violation{
			Field:   "email",
			Code:    domain.ErrMissingField,
			Message: "email is required",
		})
	case !ValidEmail(in.Email):
		violations = append(violations, domain.Violation{
			Field:   "email",
			Code:    domain.ErrInvalidFormat,
			Message: "email must be a valid email address",
		})
	}

	if len(violations) > 0 {
		return &domain.ValidationError{Violations: violations}
	}
	return nil
}

// ValidEmail reports whether s looks like a deliverable address.
// It is a syntax check only; no DNS lookup is performed.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
