package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("Only the owner can modify this resource")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInUse              = errors.New("resource is still referenced by tasks")
)

// ValidationError carries per-field reasons keyed by the JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, field := range keys {
		parts = append(parts, field+": "+e.Fields[field])
	}

	return "validation failed: " + strings.Join(parts, ", ")
}

func fieldError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

func inUse(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrInUse)
}

// translateWriteError maps constraint violations that slipped past the
// explicit checks, e.g. two concurrent creates with the same name.
func translateWriteError(err error, uniqueField, entity string) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fieldError(uniqueField, "already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return inUse(entity)
	default:
		return err
	}
}
