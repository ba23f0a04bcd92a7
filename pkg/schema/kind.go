package schema

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
)

// Kind is the declared data kind of a field.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindInteger Kind = "integer"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// runtime returns the coarse kind a value of k has before constraint rules
// run: integers are numbers and arrays are object-like.
func (k Kind) runtime() Kind {
	switch k {
	case KindInteger:
		return KindNumber
	case KindArray:
		return KindObject
	default:
		return k
	}
}

// runtimeKind classifies an input value. Maps and slices are both
// object-like; nil has no kind.
func runtimeKind(v any) Kind {
	switch v.(type) {
	case nil:
		return ""
	case string:
		return KindString
	case bool:
		return KindBoolean
	case json.Number, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return KindNumber
	case map[string]any, []any:
		return KindObject
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return KindNumber
	case reflect.Map, reflect.Slice, reflect.Array:
		return KindObject
	default:
		return ""
	}
}

// toFloat converts any numeric value to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		// Out-of-range literals parse to ±Inf and still count as numbers.
		f, err := n.Float64()
		return f, err == nil || errors.Is(err, strconv.ErrRange)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// isFalsy reports whether v would be treated as missing by the legacy
// presence rules: nil, false, "", zero and NaN.
func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	}
	if f, ok := toFloat(v); ok {
		return f == 0 || math.IsNaN(f)
	}
	return false
}
