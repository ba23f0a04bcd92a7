package schema_test

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/format"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

func reasonOf(t *testing.T, s *schema.Schema, record map[string]any, opts ...schema.Option) string {
	t.Helper()

	r, err := schema.NewValidator(s, opts...).Reason(context.Background(), record)
	require.NoError(t, err)
	return r
}

func ageSchema() *schema.Schema {
	return schema.MustNew(&schema.IntegerField{
		Base: schema.Base{Key: "age"},
		Min:  schema.Float(0),
		Max:  schema.Float(120),
	})
}

func TestValidate_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		schema *schema.Schema
		record map[string]any
		want   string
	}{
		{
			name:   "missing required",
			schema: schema.MustNew(&schema.StringField{Base: schema.Base{Key: "name", Required: true}}),
			record: map[string]any{},
			want:   `The field "name" has not been provided.`,
		},
		{
			name:   "integer out of range",
			schema: ageSchema(),
			record: map[string]any{"age": 150},
			want:   `The field "age" must be between 0 and 120.`,
		},
		{
			name:   "integer not whole",
			schema: ageSchema(),
			record: map[string]any{"age": 12.5},
			want:   `The field "age" must be an integer.`,
		},
		{
			name:   "email format",
			schema: schema.MustNew(&schema.StringField{Base: schema.Base{Key: "email"}, Format: format.Email}),
			record: map[string]any{"email": "not-an-email"},
			want:   `The field "email" must be a valid email address.`,
		},
		{
			name: "array element type",
			schema: schema.MustNew(&schema.ArrayField{
				Base:  schema.Base{Key: "tags"},
				Items: &schema.StringField{},
			}),
			record: map[string]any{"tags": []any{"ok", 5}},
			want:   `The field "tags" must be of type string.`,
		},
		{
			name: "invalid option",
			schema: schema.MustNew(&schema.StringField{
				Base:    schema.Base{Key: "role"},
				Options: []string{"admin", "user"},
			}),
			record: map[string]any{"role": "guest"},
			want:   `The field "role" is not a valid option.`,
		},
		{
			name:   "display name is used",
			schema: schema.MustNew(&schema.StringField{Base: schema.Base{Key: "fn", Name: "First name", Required: true}}),
			record: map[string]any{},
			want:   `The field "First name" has not been provided.`,
		},
		{
			name:   "type mismatch",
			schema: schema.MustNew(&schema.NumberField{Base: schema.Base{Key: "price"}}),
			record: map[string]any{"price": "12"},
			want:   `The field "price" must be of type number.`,
		},
		{
			name:   "integer kind is reported as declared",
			schema: ageSchema(),
			record: map[string]any{"age": true},
			want:   `The field "age" must be of type integer.`,
		},
		{
			name:   "array is object-like at the type pass",
			schema: schema.MustNew(&schema.ObjectField{Base: schema.Base{Key: "meta"}}),
			record: map[string]any{"meta": []any{1}},
			want:   `The field "meta" must be an object.`,
		},
		{
			name:   "object is not an array",
			schema: schema.MustNew(&schema.ArrayField{Base: schema.Base{Key: "list"}}),
			record: map[string]any{"list": map[string]any{}},
			want:   `The field "list" must be an array.`,
		},
		{
			name:   "number below minimum",
			schema: schema.MustNew(&schema.NumberField{Base: schema.Base{Key: "n"}, Min: schema.Float(1.5)}),
			record: map[string]any{"n": 1},
			want:   `The field "n" must be at least 1.5.`,
		},
		{
			name:   "number above maximum",
			schema: schema.MustNew(&schema.NumberField{Base: schema.Base{Key: "n"}, Max: schema.Float(10)}),
			record: map[string]any{"n": 11},
			want:   `The field "n" must be less than 10.`,
		},
		{
			name:   "string below minimum length",
			schema: schema.MustNew(&schema.StringField{Base: schema.Base{Key: "s"}, MinLen: schema.Int(3)}),
			record: map[string]any{"s": "ab"},
			want:   `The field "s" must be at least 3 characters.`,
		},
		{
			name:   "string above maximum length",
			schema: schema.MustNew(&schema.StringField{Base: schema.Base{Key: "s"}, MaxLen: schema.Int(3)}),
			record: map[string]any{"s": "abcd"},
			want:   `The field "s" must be less than 3 characters.`,
		},
		{
			name:   "json number is numeric",
			schema: ageSchema(),
			record: map[string]any{"age": json.Number("121")},
			want:   `The field "age" must be between 0 and 120.`,
		},
		{
			name:   "valid record",
			schema: ageSchema(),
			record: map[string]any{"age": 30},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, reasonOf(t, tt.schema, tt.record))
		})
	}
}

func TestValidate_RequiredWinsOverOtherFields(t *testing.T) {
	t.Parallel()

	s := schema.MustNew(
		&schema.IntegerField{Base: schema.Base{Key: "age"}, Max: schema.Float(10)},
		&schema.StringField{Base: schema.Base{Key: "name", Required: true}},
	)

	got := reasonOf(t, s, map[string]any{"age": "not a number"})
	assert.Equal(t, `The field "name" has not been provided.`, got)
}

func TestValidate_NilCountsAsAbsent(t *testing.T) {
	t.Parallel()

	s := schema.MustNew(&schema.StringField{Base: schema.Base{Key: "name", Required: true}})
	assert.Equal(t, `The field "name" has not been provided.`, reasonOf(t, s, map[string]any{"name": nil}))

	s = schema.MustNew(&schema.StringField{Base: schema.Base{Key: "name"}})
	assert.Empty(t, reasonOf(t, s, map[string]any{"name": nil}))
}

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	s := schema.MustNew(
		&schema.StringField{Base: schema.Base{Key: "role", Default: "user"}, Options: []string{"admin", "user"}},
		&schema.IntegerField{Base: schema.Base{Key: "limit", Required: true, Default: 10}},
		&schema.StringField{Base: schema.Base{Key: "email", Required: true}, Format: format.Email},
	)

	t.Run("fills defaults into the result only", func(t *testing.T) {
		t.Parallel()

		in := map[string]any{"email": "a@b.co"}
		out, err := schema.NewValidator(s).Validate(context.Background(), in)
		require.NoError(t, err)

		assert.Equal(t, map[string]any{"email": "a@b.co", "role": "user", "limit": 10}, out)
		assert.Equal(t, map[string]any{"email": "a@b.co"}, in)
	})

	t.Run("later fields are still checked", func(t *testing.T) {
		t.Parallel()

		got := reasonOf(t, s, map[string]any{"email": "nope"})
		assert.Equal(t, `The field "email" must be a valid email address.`, got)
	})

	t.Run("explicit values are kept", func(t *testing.T) {
		t.Parallel()

		out, err := schema.NewValidator(s).Validate(context.Background(), map[string]any{
			"email": "a@b.co",
			"role":  "admin",
			"limit": 3,
		})
		require.NoError(t, err)
		assert.Equal(t, "admin", out["role"])
		assert.Equal(t, 3, out["limit"])
	})

	t.Run("default values are copied", func(t *testing.T) {
		t.Parallel()

		def := map[string]any{"theme": "dark"}
		s := schema.MustNew(&schema.ObjectField{Base: schema.Base{Key: "prefs", Default: def}})

		out, err := schema.NewValidator(s).Validate(context.Background(), map[string]any{})
		require.NoError(t, err)

		prefs := out["prefs"].(map[string]any)
		prefs["theme"] = "light"
		assert.Equal(t, "dark", def["theme"])
	})
}

func TestValidate_Idempotent(t *testing.T) {
	t.Parallel()

	s := schema.MustNew(
		&schema.StringField{Base: schema.Base{Key: "name", Required: true}, MinLen: schema.Int(1)},
		&schema.IntegerField{Base: schema.Base{Key: "limit", Default: 10}, Max: schema.Float(100)},
	)
	v := schema.NewValidator(s)

	first, err := v.Validate(context.Background(), map[string]any{"name": "x"})
	require.NoError(t, err)

	second, err := v.Validate(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidate_CombinedLengthMessage(t *testing.T) {
	t.Parallel()

	s := schema.MustNew(&schema.StringField{
		Base:   schema.Base{Key: "code"},
		MinLen: schema.Int(2),
		MaxLen: schema.Int(4),
	})

	for _, value := range []string{"", "a", "abcde", "abcdefghij"} {
		got := reasonOf(t, s, map[string]any{"code": value})
		assert.Equal(t, `The field "code" must be between 2 and 4 characters.`, got, "value %q", value)
	}
	assert.Empty(t, reasonOf(t, s, map[string]any{"code": "abc"}))
}

func TestValidate_CombinedNumericMessage(t *testing.T) {
	t.Parallel()

	for _, value := range []any{-1, 121, 1000.5} {
		got := reasonOf(t, ageSchema(), map[string]any{"age": value})
		assert.Equal(t, `The field "age" must be between 0 and 120.`, got, "value %v", value)
	}
}

func TestValidate_IntegerAfterRange(t *testing.T) {
	t.Parallel()

	for _, value := range []any{0.5, 1.1, 119.99} {
		got := reasonOf(t, ageSchema(), map[string]any{"age": value})
		assert.Equal(t, `The field "age" must be an integer.`, got, "value %v", value)
	}
	assert.Equal(t, `The field "age" must be between 0 and 120.`, reasonOf(t, ageSchema(), map[string]any{"age": 120.5}))
	assert.Empty(t, reasonOf(t, ageSchema(), map[string]any{"age": 120.0}))
}

func TestValidate_OptionsBeforeLength(t *testing.T) {
	t.Parallel()

	s := schema.MustNew(&schema.StringField{
		Base:    schema.Base{Key: "size"},
		Options: []string{"s", "m"},
		MinLen:  schema.Int(3),
	})
	assert.Equal(t, `The field "size" is not a valid option.`, reasonOf(t, s, map[string]any{"size": "xl"}))
	assert.Equal(t, `The field "size" must be at least 3 characters.`, reasonOf(t, s, map[string]any{"size": "m"}))
}

func TestValidate_LengthCountsCharacters(t *testing.T) {
	t.Parallel()

	s := schema.MustNew(&schema.StringField{Base: schema.Base{Key: "name"}, MaxLen: schema.Int(4)})

	assert.Empty(t, reasonOf(t, s, map[string]any{"name": "José"}))
	assert.Empty(t, reasonOf(t, s, map[string]any{"name": "日本語"}))

	decomposed := "Jose\u0301"
	assert.Empty(t, reasonOf(t, s, map[string]any{"name": decomposed}))
	assert.Equal(t,
		`The field "name" must be less than 4 characters.`,
		reasonOf(t, s, map[string]any{"name": decomposed}, schema.WithoutNormalization()),
	)
}

func TestValidate_TypePassBeforeConstraints(t *testing.T) {
	t.Parallel()

	s := schema.MustNew(
		&schema.IntegerField{Base: schema.Base{Key: "age"}, Max: schema.Float(1)},
		&schema.StringField{Base: schema.Base{Key: "name"}},
	)

	got := reasonOf(t, s, map[string]any{"age": 5, "name": 7})
	assert.Equal(t, `The field "name" must be of type string.`, got)
}

func TestValidate_NamedTypes(t *testing.T) {
	t.Parallel()

	type role string
	type flag bool

	s := schema.MustNew(
		&schema.StringField{Base: schema.Base{Key: "role"}, Options: []string{"admin"}},
		&schema.BooleanField{Base: schema.Base{Key: "active"}},
		&schema.IntegerField{Base: schema.Base{Key: "count"}, Min: schema.Float(0)},
		&schema.ArrayField{Base: schema.Base{Key: "ids"}, Items: &schema.IntegerField{}},
		&schema.ObjectField{Base: schema.Base{Key: "meta"}},
	)

	out, err := schema.NewValidator(s).Validate(context.Background(), map[string]any{
		"role":   role("admin"),
		"active": flag(true),
		"count":  uint8(3),
		"ids":    []int{1, 2},
		"meta":   map[string]string{"k": "v"},
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", out["role"])
	assert.Equal(t, true, out["active"])
	assert.Equal(t, []any{1, 2}, out["ids"])
	assert.Equal(t, map[string]any{"k": "v"}, out["meta"])
}

func TestValidate_UnknownFormat(t *testing.T) {
	t.Parallel()

	s := schema.MustNew(&schema.StringField{Base: schema.Base{Key: "code"}, Format: "iban"})
	_, err := schema.NewValidator(s).Validate(context.Background(), map[string]any{"code": "x"})
	assert.ErrorIs(t, err, schema.ErrUnknownFormat)
}

func TestValidate_CustomFormatRegistry(t *testing.T) {
	t.Parallel()

	reg := format.NewRegistry()
	require.NoError(t, reg.Register("upper", func(s string) bool {
		return s == strings.ToUpper(s)
	}, "must be upper case"))

	s := schema.MustNew(&schema.StringField{Base: schema.Base{Key: "code"}, Format: "upper"})
	got := reasonOf(t, s, map[string]any{"code": "abc"}, schema.WithFormats(reg))
	assert.Equal(t, `The field "code" must be upper case.`, got)
}

func TestValidate_ValidationError(t *testing.T) {
	t.Parallel()

	_, err := schema.Validate(context.Background(), ageSchema(), map[string]any{"age": 200})
	require.Error(t, err)

	ve, ok := schema.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "age", ve.Field)
	assert.Equal(t, schema.CodeRange, ve.Code)
	assert.Equal(t, ve.Reason, err.Error())

	wrapped := fmt.Errorf("request: %w", err)
	ve, ok = schema.AsValidationError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "age", ve.Field)

	_, ok = schema.AsValidationError(context.Canceled)
	assert.False(t, ok)
}

func TestValidate_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := schema.NewValidator(ageSchema()).Validate(ctx, map[string]any{"age": 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate_Concurrent(t *testing.T) {
	t.Parallel()

	s := schema.MustNew(
		&schema.StringField{Base: schema.Base{Key: "role", Default: "user"}},
		&schema.IntegerField{Base: schema.Base{Key: "age"}, Max: schema.Float(120)},
	)
	v := schema.NewValidator(s)
	shared := map[string]any{"age": 30}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := v.Validate(context.Background(), shared)
			assert.NoError(t, err)
			assert.Equal(t, "user", out["role"])
		}()
	}
	wg.Wait()

	assert.NotContains(t, shared, "role")
}

func TestNumberBounds_NaN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		min, max *float64
		want     string
	}{
		{"both bounds", schema.Float(0), schema.Float(10), `The field "n" must be between 0 and 10.`},
		{"min only", schema.Float(0), nil, `The field "n" must be at least 0.`},
		{"max only", nil, schema.Float(10), `The field "n" must be less than 10.`},
		{"unbounded", nil, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := schema.MustNew(&schema.NumberField{Base: schema.Base{Key: "n"}, Min: tt.min, Max: tt.max})
			assert.Equal(t, tt.want, reasonOf(t, s, map[string]any{"n": math.NaN()}))
		})
	}
}

func TestNumberBounds_OverflowingJSONNumber(t *testing.T) {
	t.Parallel()

	bounded := schema.MustNew(&schema.NumberField{Base: schema.Base{Key: "n"}, Min: schema.Float(0), Max: schema.Float(10)})
	assert.Equal(t, `The field "n" must be between 0 and 10.`,
		reasonOf(t, bounded, map[string]any{"n": json.Number("1e400")}))

	capped := schema.MustNew(&schema.NumberField{Base: schema.Base{Key: "n"}, Max: schema.Float(10)})
	assert.Equal(t, `The field "n" must be less than 10.`,
		reasonOf(t, capped, map[string]any{"n": json.Number("1e400")}))

	floor := schema.MustNew(&schema.NumberField{Base: schema.Base{Key: "n"}, Min: schema.Float(0)})
	assert.Equal(t, `The field "n" must be at least 0.`,
		reasonOf(t, floor, map[string]any{"n": json.Number("-1e400")}))

	integer := schema.MustNew(&schema.IntegerField{Base: schema.Base{Key: "n"}})
	assert.Equal(t, `The field "n" must be an integer.`,
		reasonOf(t, integer, map[string]any{"n": json.Number("1e400")}))
}
