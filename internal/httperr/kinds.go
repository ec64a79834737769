package httperr

import (
	"errors"
	"fmt"
)

// ValidationError is raised before any store call when a required field is
// missing or malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("missing_%s", e.Field)
	}
	return fmt.Sprintf("invalid_%s: %s", e.Field, e.Reason)
}

func Missing(field string) error {
	return &ValidationError{Field: field}
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// FetchError wraps a failed read against the store.
type FetchError struct {
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func Fetch(resource string, err error) error {
	return &FetchError{Resource: resource, Err: err}
}

// WriteError wraps a failed insert/update; its message is shown to the user.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

func WriteFailed(err error) error {
	return &WriteError{Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsFetch(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

func IsWrite(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}
