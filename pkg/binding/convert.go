package binding

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

var stringType = reflect.TypeFor[string]()

// tryConvert attempts to coerce value to targetType.
//
// Nil passes unchanged. Flowing toward the target, the property's
// declared conversion is consulted first; flowing toward the source, a
// value already assignable to the target type is accepted as-is. Anything
// else goes through a generic culture-invariant conversion. On failure
// the original value is returned with ok=false so the caller can log it;
// a failed coercion skips one write, it never fails the binding.
func tryConvert(value any, targetType reflect.Type, property *Property, towardTarget bool) (any, bool) {
	if value == nil {
		return nil, true
	}
	if towardTarget && property != nil {
		if v, ok := property.TryConvert(value); ok {
			return v, true
		}
	} else if reflect.TypeOf(value).AssignableTo(targetType) {
		return value, true
	}
	if v, ok := convertTo(value, targetType); ok {
		return v, true
	}
	return value, false
}

// convertTo performs a generic value conversion to t: numeric widening
// and narrowing with overflow checks, and string parsing/formatting via
// strconv. It reports failure for overflow, malformed strings, and
// unconvertible kinds.
func convertTo(value any, t reflect.Type) (any, bool) {
	switch t.Kind() {
	case reflect.String:
		if s, ok := toString(value); ok {
			return reflect.ValueOf(s).Convert(t).Interface(), true
		}
	case reflect.Bool:
		if b, ok := toBool(value); ok {
			return reflect.ValueOf(b).Convert(t).Interface(), true
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, ok := toInt64(value); ok {
			rv := reflect.New(t).Elem()
			if rv.OverflowInt(n) {
				return nil, false
			}
			rv.SetInt(n)
			return rv.Interface(), true
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, ok := toUint64(value); ok {
			rv := reflect.New(t).Elem()
			if rv.OverflowUint(n) {
				return nil, false
			}
			rv.SetUint(n)
			return rv.Interface(), true
		}
	case reflect.Float32, reflect.Float64:
		if f, ok := toFloat64(value); ok {
			rv := reflect.New(t).Elem()
			if rv.OverflowFloat(f) {
				return nil, false
			}
			rv.SetFloat(f)
			return rv.Interface(), true
		}
	default:
		if rt := reflect.TypeOf(value); rt != nil && rt.AssignableTo(t) {
			return value, true
		}
	}
	return nil, false
}

// toInt64 converts numeric and string values to int64.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return float64ToInt64(float64(n))
	case float64:
		return float64ToInt64(n)
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// float64ToInt64 truncates f, rejecting values outside the int64 range.
func float64ToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || f < math.MinInt64 || f > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// toUint64 converts numeric and string values to uint64, rejecting
// negative values.
func toUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int8:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int16:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int32:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case float32:
		return float64ToUint64(float64(n))
	case float64:
		return float64ToUint64(n)
	case string:
		parsed, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// float64ToUint64 truncates f, rejecting negatives and values outside
// the uint64 range.
func float64ToUint64(f float64) (uint64, bool) {
	if math.IsNaN(f) || f < 0 || f > math.MaxUint64 {
		return 0, false
	}
	return uint64(f), true
}

// toFloat64 converts numeric and string values to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// toString formats numeric, boolean, and stringer values as strings.
func toString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	case bool:
		return strconv.FormatBool(s), true
	case int:
		return strconv.FormatInt(int64(s), 10), true
	case int8:
		return strconv.FormatInt(int64(s), 10), true
	case int16:
		return strconv.FormatInt(int64(s), 10), true
	case int32:
		return strconv.FormatInt(int64(s), 10), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case uint:
		return strconv.FormatUint(uint64(s), 10), true
	case uint8:
		return strconv.FormatUint(uint64(s), 10), true
	case uint16:
		return strconv.FormatUint(uint64(s), 10), true
	case uint32:
		return strconv.FormatUint(uint64(s), 10), true
	case uint64:
		return strconv.FormatUint(s, 10), true
	case float32:
		return strconv.FormatFloat(float64(s), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), true
	case fmt.Stringer:
		return s.String(), true
	default:
		return "", false
	}
}

// toBool converts boolean and string values to bool.
func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, false
		}
		return parsed, true
	default:
		return false, false
	}
}

// isNilValue reports whether v is nil or a nil pointer boxed in a
// non-nil interface.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// valuesEqual reports whether two stored property values are equal.
// Values of uncomparable types never compare equal.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
