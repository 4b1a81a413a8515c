package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidation       = errors.New("validation failed")
)

// ValidationError maps field names to user-correctable messages.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// FieldError is shorthand for a ValidationError on a single field.
func FieldError(field, format string, args ...any) *ValidationError {
	v := NewValidationError()
	v.Add(field, fmt.Sprintf(format, args...))
	return v
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil lets callers accumulate messages and return a nil error when none were added.
func (e *ValidationError) OrNil() error {
	if e == nil || e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ConflictError reports a uniqueness violation on Field.
type ConflictError struct {
	Resource string
	Field    string
	Value    any
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s with this value already exists", e.Resource)
	}
	return fmt.Sprintf("%s with this %s already exists", e.Resource, strings.ReplaceAll(e.Field, "_", " "))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NotFoundError is returned both for absent ids and for records the caller
// may not see.
type NotFoundError struct {
	Resource string
	Detail   string
}

func (e *NotFoundError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Resource + " not found"
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

type PermissionError struct {
	Operation string
	Resource  string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s on %s requires staff privileges", e.Operation, e.Resource)
}

func (e *PermissionError) Unwrap() error {
	return ErrPermissionDenied
}
