package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("preserves declaration order", func(t *testing.T) {
		t.Parallel()

		s, err := schema.New(
			&schema.StringField{Base: schema.Base{Key: "b"}},
			&schema.NumberField{Base: schema.Base{Key: "a"}},
			&schema.BooleanField{Base: schema.Base{Key: "c"}},
		)
		require.NoError(t, err)
		require.Equal(t, 3, s.Len())

		var keys []string
		for _, f := range s.Fields() {
			keys = append(keys, f.(interface{ DisplayName() string }).DisplayName())
		}
		assert.Equal(t, []string{"b", "a", "c"}, keys)

		f, ok := s.Field("a")
		require.True(t, ok)
		assert.Equal(t, schema.KindNumber, f.Kind())

		_, ok = s.Field("missing")
		assert.False(t, ok)
	})

	t.Run("rejects nil field", func(t *testing.T) {
		t.Parallel()

		_, err := schema.New(nil)
		assert.ErrorIs(t, err, schema.ErrNilField)
	})

	t.Run("rejects empty key", func(t *testing.T) {
		t.Parallel()

		_, err := schema.New(&schema.StringField{})
		assert.ErrorIs(t, err, schema.ErrEmptyKey)
	})

	t.Run("rejects duplicate key", func(t *testing.T) {
		t.Parallel()

		_, err := schema.New(
			&schema.StringField{Base: schema.Base{Key: "id"}},
			&schema.IntegerField{Base: schema.Base{Key: "id"}},
		)
		assert.ErrorIs(t, err, schema.ErrDuplicateKey)
	})

	t.Run("rejects inverted numeric bounds", func(t *testing.T) {
		t.Parallel()

		_, err := schema.New(&schema.IntegerField{
			Base: schema.Base{Key: "age"},
			Min:  schema.Float(10),
			Max:  schema.Float(1),
		})
		assert.ErrorIs(t, err, schema.ErrInvalidBounds)
	})

	t.Run("rejects inverted and negative length bounds", func(t *testing.T) {
		t.Parallel()

		_, err := schema.New(&schema.StringField{
			Base:   schema.Base{Key: "name"},
			MinLen: schema.Int(5),
			MaxLen: schema.Int(2),
		})
		assert.ErrorIs(t, err, schema.ErrInvalidBounds)

		_, err = schema.New(&schema.StringField{
			Base:   schema.Base{Key: "name"},
			MinLen: schema.Int(-1),
		})
		assert.ErrorIs(t, err, schema.ErrInvalidBounds)
	})

	t.Run("checks array item descriptors", func(t *testing.T) {
		t.Parallel()

		_, err := schema.New(&schema.ArrayField{
			Base:  schema.Base{Key: "scores"},
			Items: &schema.NumberField{Min: schema.Float(3), Max: schema.Float(2)},
		})
		assert.ErrorIs(t, err, schema.ErrInvalidBounds)
	})

	t.Run("MustNew panics on error", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			schema.MustNew(nil)
		})
	})

	t.Run("nil schema accessors", func(t *testing.T) {
		t.Parallel()

		var s *schema.Schema
		assert.Zero(t, s.Len())
		assert.Nil(t, s.Fields())
		_, ok := s.Field("x")
		assert.False(t, ok)
	})
}

func TestBaseDisplayName(t *testing.T) {
	t.Parallel()

	b := schema.Base{Key: "first_name"}
	assert.Equal(t, "first_name", b.DisplayName())

	b.Name = "First name"
	assert.Equal(t, "First name", b.DisplayName())
}
