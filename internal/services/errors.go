package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation             = errors.New("validation failed")
	ErrRequestNotFound        = errors.New("request not found")
	ErrDuplicateRequest       = errors.New("a request with this id already exists")
	ErrUserNotFound           = errors.New("user not found")
	ErrDuplicateEmail         = errors.New("user already exists with this email")
	ErrAdminDenied            = errors.New("incorrect admin password")
	ErrInvalidCredentials     = errors.New("invalid name/email or password")
	ErrCorruptState           = errors.New("stored state is corrupt")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoDraftsGenerated    = errors.New("AI did not generate any drafts")
	ErrAINoValidDrafts        = errors.New("no valid drafts could be built from AI output")
)

// ValidationError lists the required fields that were missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// requireFields returns a ValidationError naming every empty field, or nil.
// fields is a flat list of name/value pairs.
func requireFields(fields ...string) error {
	var missing []string
	for i := 0; i+1 < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) == "" {
			missing = append(missing, fields[i])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: missing}
}
