package schema

import (
	"context"

	"github.com/dmitrymomot/schemakit/pkg/format"
)

// CheckFunc is a user supplied predicate run after the built-in rules of a
// field. It receives the field key and its current value and reports whether
// the value is acceptable. A non-nil error aborts validation.
type CheckFunc func(ctx context.Context, key string, value any) (bool, error)

// Check pairs a predicate with the message reported when it returns false.
type Check struct {
	Func    CheckFunc
	Message string
}

// Base holds the attributes shared by every field kind.
type Base struct {
	// Key is the record key the field is read from.
	Key string
	// Name is the display name used in messages; Key is used when empty.
	Name        string
	Description string
	Required    bool
	// Default is written into the validated record when the key is absent.
	// A nil Default means no default.
	Default any
	Checks  []Check
}

// DisplayName returns Name, or Key when no name is set.
func (b *Base) DisplayName() string {
	if b.Name != "" {
		return b.Name
	}
	return b.Key
}

func (b *Base) common() *Base { return b }

// Field is a field descriptor. It is implemented only by the six field types
// of this package.
type Field interface {
	Kind() Kind
	common() *Base
}

// StringField describes a text value. MinLen and MaxLen bound the length in
// characters, Options restricts the value to an enumeration and Format names
// a tester from the validator's format registry.
type StringField struct {
	Base
	MinLen  *int
	MaxLen  *int
	Options []string
	Format  format.Format
}

// NumberField describes any numeric value within optional bounds.
type NumberField struct {
	Base
	Min *float64
	Max *float64
}

// IntegerField describes a whole number within optional bounds.
type IntegerField struct {
	Base
	Min *float64
	Max *float64
}

type BooleanField struct {
	Base
}

// ObjectField describes a nested record. An empty or nil Properties accepts
// any object.
type ObjectField struct {
	Base
	Properties *Schema
}

// ArrayField describes a list. When Items is set every element is validated
// against it; the Key of Items is ignored.
type ArrayField struct {
	Base
	Items Field
}

func (*StringField) Kind() Kind  { return KindString }
func (*NumberField) Kind() Kind  { return KindNumber }
func (*IntegerField) Kind() Kind { return KindInteger }
func (*BooleanField) Kind() Kind { return KindBoolean }
func (*ObjectField) Kind() Kind  { return KindObject }
func (*ArrayField) Kind() Kind   { return KindArray }

// Int returns a pointer to n, for length bounds.
func Int(n int) *int { return &n }

// Float returns a pointer to f, for numeric bounds.
func Float(f float64) *float64 { return &f }
