package schema

import "fmt"

// Schema is an ordered, immutable list of field descriptors with unique keys.
// Validation visits fields in declaration order, so it decides which failure
// is reported first.
type Schema struct {
	fields []Field
	index  map[string]int
}

// New builds a schema from fields in the given order. It rejects nil
// fields, empty or duplicate keys and contradictory bounds.
func New(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f == nil {
			return nil, fmt.Errorf("%w at position %d", ErrNilField, i)
		}
		b := f.common()
		if b.Key == "" {
			return nil, fmt.Errorf("%w at position %d", ErrEmptyKey, i)
		}
		if _, dup := s.index[b.Key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, b.Key)
		}
		if err := checkDescriptor(f); err != nil {
			return nil, fmt.Errorf("field %q: %w", b.Key, err)
		}
		s.index[b.Key] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustNew is like New but panics on error.
func MustNew(fields ...Field) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns the descriptors in declaration order.
func (s *Schema) Fields() []Field {
	if s == nil {
		return nil
	}
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the descriptor for key.
func (s *Schema) Field(key string) (Field, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[key]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

func checkDescriptor(f Field) error {
	switch d := f.(type) {
	case *StringField:
		if d.MinLen != nil && *d.MinLen < 0 {
			return fmt.Errorf("%w: negative minimum length %d", ErrInvalidBounds, *d.MinLen)
		}
		if d.MaxLen != nil && *d.MaxLen < 0 {
			return fmt.Errorf("%w: negative maximum length %d", ErrInvalidBounds, *d.MaxLen)
		}
		if d.MinLen != nil && d.MaxLen != nil && *d.MinLen > *d.MaxLen {
			return fmt.Errorf("%w: minimum length %d exceeds maximum %d", ErrInvalidBounds, *d.MinLen, *d.MaxLen)
		}
	case *NumberField:
		return checkRange(d.Min, d.Max)
	case *IntegerField:
		return checkRange(d.Min, d.Max)
	case *ArrayField:
		if d.Items != nil {
			return checkDescriptor(d.Items)
		}
	case *BooleanField, *ObjectField:
	}
	return nil
}

func checkRange(lo, hi *float64) error {
	if lo != nil && hi != nil && *lo > *hi {
		return fmt.Errorf("%w: minimum %s exceeds maximum %s", ErrInvalidBounds, num(*lo), num(*hi))
	}
	return nil
}
