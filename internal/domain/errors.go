package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Remote failure classes. Adapter error types map themselves onto these via
// errors.Is so the app layer never inspects status codes.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
)

// ValidationError is a field-keyed validation failure raised client-side,
// before any network call. Server-side 4xx field errors surface through the
// same FieldErrors accessor so both populate the same display slots.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) FieldErrors() map[string]string { return e.Fields }

// FieldErrors extracts field-keyed messages from any error in the chain
// that carries them, or nil.
func FieldErrors(err error) map[string]string {
	var fe interface{ FieldErrors() map[string]string }
	if errors.As(err, &fe) {
		return fe.FieldErrors()
	}
	return nil
}

// RemoteMessage extracts the server-provided message from an error chain,
// or "" when the failure carried none (e.g. a network error).
func RemoteMessage(err error) string {
	var rm interface{ RemoteMessage() string }
	if errors.As(err, &rm) {
		return rm.RemoteMessage()
	}
	return ""
}
