// Package apperrors provides the typed error taxonomy shared by services
// and handlers. Every user-facing failure is one of the four types below;
// handlers map them to HTTP status codes.
package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError indicates a missing or invalid required field.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidation creates a ValidationError for a named field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DuplicateError indicates a unique-constraint violation, e.g. an existing
// category triple.
type DuplicateError struct {
	Entity  string `json:"entity"`
	Message string `json:"message"`
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s: %s", e.Entity, e.Message)
}

// NewDuplicate creates a DuplicateError for the given entity.
func NewDuplicate(entity, message string) *DuplicateError {
	return &DuplicateError{Entity: entity, Message: message}
}

// AuthorizationError indicates a role- or department-gated action attempted
// by an ineligible actor. The attempted action is rejected before any
// mutation.
type AuthorizationError struct {
	Action  string `json:"action"`
	Message string `json:"message"`
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("not authorized for %s: %s", e.Action, e.Message)
}

// NewAuthorization creates an AuthorizationError for the given action.
func NewAuthorization(action, message string) *AuthorizationError {
	return &AuthorizationError{Action: action, Message: message}
}

// NotFoundError indicates an operation on a missing id.
type NotFoundError struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NewNotFound creates a NotFoundError for the given entity and id.
func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsDuplicate reports whether err is (or wraps) a DuplicateError.
func IsDuplicate(err error) bool {
	var e *DuplicateError
	return errors.As(err, &e)
}

// IsAuthorization reports whether err is (or wraps) an AuthorizationError.
func IsAuthorization(err error) bool {
	var e *AuthorizationError
	return errors.As(err, &e)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}
