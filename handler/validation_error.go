package handler

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// ValidationError maps field paths to messages. It's based on url.Values to
// reuse its multi-value handling.
type ValidationError url.Values

// NewValidationError creates an empty validation error.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// FromSchemaError converts a schema failure into a ValidationError keyed by
// the failing field path.
func FromSchemaError(err *schema.ValidationError) ValidationError {
	e := NewValidationError()
	e.Add(err.Field, err.Reason)
	return e
}

// Error summarises the failures, ordered by field.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "Validation failed"
	}

	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if msgs := e[field]; len(msgs) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msgs[0]))
		}
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the first message for field.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}
