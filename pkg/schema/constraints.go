package schema

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/dmitrymomot/schemakit/pkg/async"
)

var errCheckTimeout = async.ErrTimeout

type checkArg struct {
	key   string
	value any
}

// awaitCheck runs fn and waits for it. The check's context is canceled once
// awaitCheck returns, so an abandoned check can stop early.
func awaitCheck(ctx context.Context, fn CheckFunc, key string, val any, timeout time.Duration) (bool, error) {
	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fut := async.Async(cctx, checkArg{key: key, value: val}, func(ctx context.Context, a checkArg) (bool, error) {
		return fn(ctx, a.key, a.value)
	})
	return fut.AwaitContext(ctx, timeout)
}

// constrain applies the kind rules of one field. Numeric and string rules
// run before the custom checks, the structural rules of booleans, objects
// and arrays after them.
func (v *Validator) constrain(ctx context.Context, e entry, record map[string]any, depth int) (*ValidationError, error) {
	val := record[e.key]

	switch f := e.field.(type) {
	case *NumberField:
		if fe := numberRules(e, val, f.Min, f.Max, false); fe != nil {
			return fe, nil
		}
		return v.runChecks(ctx, e, val)

	case *IntegerField:
		if fe := numberRules(e, val, f.Min, f.Max, true); fe != nil {
			return fe, nil
		}
		return v.runChecks(ctx, e, val)

	case *StringField:
		if fe, err := v.stringRules(e, f, val); fe != nil || err != nil {
			return fe, err
		}
		return v.runChecks(ctx, e, val)

	case *BooleanField:
		if fe, err := v.runChecks(ctx, e, val); fe != nil || err != nil {
			return fe, err
		}
		if _, ok := val.(bool); !ok {
			return fail(e, CodeType, msgNotA(e.name, "a boolean")), nil
		}
		return nil, nil

	case *ObjectField:
		if fe, err := v.runChecks(ctx, e, val); fe != nil || err != nil {
			return fe, err
		}
		obj, ok := val.(map[string]any)
		if !ok {
			return fail(e, CodeType, msgNotA(e.name, "an object")), nil
		}
		if f.Properties.Len() == 0 {
			return nil, nil
		}
		return v.validateLevel(ctx, obj, entriesOf(f.Properties, e.path), depth+1)

	case *ArrayField:
		if fe, err := v.runChecks(ctx, e, val); fe != nil || err != nil {
			return fe, err
		}
		items, ok := val.([]any)
		if !ok {
			return fail(e, CodeType, msgNotA(e.name, "an array")), nil
		}
		if f.Items == nil {
			return nil, nil
		}
		return v.arrayItems(ctx, e, f.Items, items, depth)

	default:
		return nil, fmt.Errorf("schema: unsupported field type %T", f)
	}
}

// arrayItems validates every element against the items descriptor by
// wrapping it in a single-key record under the array's own key. Defaults
// filled into an element are written back to the array.
func (v *Validator) arrayItems(ctx context.Context, e entry, items Field, list []any, depth int) (*ValidationError, error) {
	name := items.common().Name
	if name == "" {
		name = e.name
	}
	for i, elem := range list {
		wrapper := map[string]any{e.key: elem}
		sub := entry{
			key:   e.key,
			name:  name,
			path:  fmt.Sprintf("%s[%d]", e.path, i),
			field: items,
		}
		if fe, err := v.validateLevel(ctx, wrapper, []entry{sub}, depth+1); fe != nil || err != nil {
			return fe, err
		}
		list[i] = wrapper[e.key]
	}
	return nil, nil
}

func numberRules(e entry, val any, lo, hi *float64, integer bool) *ValidationError {
	n, ok := toFloat(val)
	if !ok {
		return fail(e, CodeType, msgType(e.name, e.field.Kind()))
	}
	switch {
	// NaN compares false against everything, so it is never within bounds.
	case lo != nil && hi != nil && (math.IsNaN(n) || n < *lo || n > *hi):
		return fail(e, CodeRange, msgBetween(e.name, *lo, *hi))
	case lo != nil && (math.IsNaN(n) || n < *lo):
		return fail(e, CodeRange, msgAtLeast(e.name, *lo))
	case hi != nil && (math.IsNaN(n) || n > *hi):
		return fail(e, CodeRange, msgLessThan(e.name, *hi))
	}
	if integer && (math.IsInf(n, 0) || math.IsNaN(n) || math.Trunc(n) != n) {
		return fail(e, CodeInteger, msgInteger(e.name))
	}
	return nil
}

func (v *Validator) stringRules(e entry, f *StringField, val any) (*ValidationError, error) {
	s, isString := val.(string)

	if len(f.Options) > 0 && (!isString || !slices.Contains(f.Options, s)) {
		return fail(e, CodeOption, msgOption(e.name)), nil
	}
	if !isString {
		return fail(e, CodeType, msgNotA(e.name, "a string")), nil
	}

	n := v.length(s)
	switch {
	case f.MinLen != nil && f.MaxLen != nil && (n < *f.MinLen || n > *f.MaxLen):
		return fail(e, CodeLength, msgLenBetween(e.name, *f.MinLen, *f.MaxLen)), nil
	case f.MinLen != nil && n < *f.MinLen:
		return fail(e, CodeLength, msgLenAtLeast(e.name, *f.MinLen)), nil
	case f.MaxLen != nil && n > *f.MaxLen:
		return fail(e, CodeLength, msgLenLessThan(e.name, *f.MaxLen)), nil
	}

	if f.Format != "" {
		rule, ok := v.formats.Lookup(f.Format)
		if !ok {
			return nil, fmt.Errorf("%w: %q on field %q", ErrUnknownFormat, f.Format, e.path)
		}
		if !rule.Test(s) {
			return fail(e, CodeFormat, msgFormat(e.name, rule.Message)), nil
		}
	}
	return nil, nil
}

// length counts characters as code points of the NFC form of s.
func (v *Validator) length(s string) int {
	if v.normalize {
		s = norm.NFC.String(s)
	}
	return utf8.RuneCountInString(s)
}
