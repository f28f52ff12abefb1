package errs

import (
	"sort"
	"strings"
)

// FieldError is a caller-facing validation message for a single input field.
type FieldError struct {
	Field   string
	Message string
}

func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return ErrValueIsInvalid
}

// FieldErrors maps input field names to validation messages. It is what the HTTP
// adapters render as the 400 body.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return ErrValueIsInvalid.Error() + ": " + strings.Join(parts, "; ")
}

func (e FieldErrors) Unwrap() error {
	return ErrValueIsInvalid
}

// JoinFieldErrors collects the non-nil field errors into a FieldErrors value.
// It returns nil when every entry is nil. The first message wins for a repeated field.
func JoinFieldErrors(list ...*FieldError) error {
	var fields FieldErrors
	for _, fe := range list {
		if fe == nil {
			continue
		}
		if fields == nil {
			fields = make(FieldErrors)
		}
		if _, exists := fields[fe.Field]; !exists {
			fields[fe.Field] = fe.Message
		}
	}
	if fields == nil {
		return nil
	}
	return fields
}
