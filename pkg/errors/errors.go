package errors

import (
	"fmt"
)

// ValidationError captures malformed or out-of-bounds input: a missing
// required parameter, an unknown anchor or operation name, a palette that
// is already full, or a scene that fails structural validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ReferenceError is returned when a named layer, element, data item or
// container cannot be resolved.
type ReferenceError struct {
	Kind string
	Name string
}

// NewReferenceError constructs a ReferenceError for the given kind of target.
func NewReferenceError(kind, name string) error {
	return &ReferenceError{Kind: kind, Name: name}
}

func (e *ReferenceError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("reference error: %s %q not found", e.Kind, e.Name)
}

// APIError represents a failed or malformed response from an external
// service such as the font catalog or the image generation endpoint.
type APIError struct {
	Service string
	Err     error
}

// NewAPIError constructs an APIError.
func NewAPIError(service string, err error) error {
	return &APIError{Service: service, Err: err}
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Service != "" {
		return fmt.Sprintf("api error: %s: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("api error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FileSystemError represents a persistence failure.
type FileSystemError struct {
	Path string
	Err  error
}

// NewFileSystemError constructs a FileSystemError.
func NewFileSystemError(path string, err error) error {
	return &FileSystemError{Path: path, Err: err}
}

func (e *FileSystemError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("filesystem error: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("filesystem error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *FileSystemError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
