package store

import (
	"errors"
	"fmt"
)

// NotFoundError means a referenced id does not exist. Handlers surface it as 404.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// ValidationError covers missing required fields, malformed dates, and
// duplicate-uniqueness violations. Handlers surface it as 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func notFound(resource string, id uint) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
