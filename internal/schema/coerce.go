// Package schema coerces untyped option values to their declared types and
// evaluates hyperparameter constraints.
package schema

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/tsforecast/ainode/pkg/types"
)

// Coerce converts v to the canonical Go type for t: int, float64, bool,
// string or []int. It reports false when v has the wrong shape.
//
// Scalars also accept their decimal string form, since options written in
// SQL WITH clauses reach the node as strings. Lists never accept strings.
func Coerce(t types.ValueType, v any) (any, bool) {
	switch t {
	case types.ValueInt:
		if s, ok := v.(string); ok {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			return n, err == nil
		}
		return toInt(v)
	case types.ValueFloat:
		return toFloat(v)
	case types.ValueBool:
		switch b := v.(type) {
		case bool:
			return b, true
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(b))
			return parsed, err == nil
		}
		return nil, false
	case types.ValueString, types.ValueEnumChoice:
		s, ok := v.(string)
		return s, ok
	case types.ValueListOfInt:
		return toIntList(v)
	}
	return nil, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		if n > math.MaxInt || n < math.MinInt {
			return 0, false
		}
		return int(n), true
	case uint:
		if uint64(n) > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return toInt(i)
		}
		if f, err := n.Float64(); err == nil {
			return floatToInt(f)
		}
	}
	return 0, false
}

// floatToInt accepts integral floats, which is how JSON decoders deliver numbers.
// 2^63 is the smallest float64 above MaxInt64; it and anything larger are rejected
// rather than wrapped.
func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f >= 1<<63 || f < -(1<<63) {
		return 0, false
	}
	return toInt(int64(f))
}

func toFloat(v any) (any, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil, false
		}
		f = parsed
	case bool:
		return nil, false
	default:
		i, ok := toInt(v)
		if !ok {
			return nil, false
		}
		f = float64(i)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return f, true
}

func toIntList(v any) (any, bool) {
	switch l := v.(type) {
	case nil, string, []byte:
		return nil, false
	case []int:
		return append([]int{}, l...), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]int, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if _, isBool := elem.(bool); isBool {
			return nil, false
		}
		n, ok := toInt(elem)
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}
