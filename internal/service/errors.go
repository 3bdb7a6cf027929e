package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrRecipeNotFound means the referenced recipe does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrCategoryNotFound means the referenced category does not exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrForbidden means the requester is authenticated but is not the
	// recipe's owner.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidToken means a JWT failed validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidCredentials means login failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken means registration reused an existing email.
	ErrEmailTaken = errors.New("user already exists")
)

// ValidationError reports which fields failed which rule. It is terminal
// for the triggering request and is raised before any store write.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a failed rule for a field. The first message per field wins.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
