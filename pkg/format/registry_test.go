package format_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/format"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("resolves built-in formats", func(t *testing.T) {
		t.Parallel()
		reg := format.NewRegistry()

		entry, ok := reg.Lookup(format.Email)
		require.True(t, ok)
		assert.Equal(t, "must be a valid email address", entry.Message)
		assert.True(t, entry.Test("user@example.com"))

		entry, ok = reg.Lookup(format.PasswordStrength)
		require.True(t, ok)
		assert.Equal(t, "is too weak to be a valid password", entry.Message)
	})

	t.Run("unknown format is not found", func(t *testing.T) {
		t.Parallel()
		_, ok := format.NewRegistry().Lookup("slug")
		assert.False(t, ok)
	})

	t.Run("registers custom format", func(t *testing.T) {
		t.Parallel()
		reg := format.NewRegistry()
		isLower := func(s string) bool { return s == strings.ToLower(s) }

		require.NoError(t, reg.Register("lower", isLower, "must be lowercase"))

		entry, ok := reg.Lookup("lower")
		require.True(t, ok)
		assert.True(t, entry.Test("abc"))
		assert.False(t, entry.Test("ABC"))
		assert.Contains(t, reg.Formats(), format.Format("lower"))
	})

	t.Run("registries are independent", func(t *testing.T) {
		t.Parallel()
		a := format.NewRegistry()
		b := format.NewRegistry()
		require.NoError(t, a.Register(format.Email, func(string) bool { return true }, "anything"))

		entry, _ := b.Lookup(format.Email)
		assert.False(t, entry.Test("nope"))
	})

	t.Run("rejects invalid registrations", func(t *testing.T) {
		t.Parallel()
		reg := format.NewRegistry()
		assert.ErrorIs(t, reg.Register("", format.IsEmail, "x"), format.ErrEmptyFormat)
		assert.ErrorIs(t, reg.Register("x", nil, "x"), format.ErrNilTester)
	})

	t.Run("lists formats sorted", func(t *testing.T) {
		t.Parallel()
		formats := format.NewRegistry().Formats()
		assert.Len(t, formats, 11)
		assert.True(t, slices.IsSorted(formats))
	})
}
