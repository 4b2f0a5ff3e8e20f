package utils

import (
	"fmt"
	"reflect"
	"strconv"
)

// Stringify converts a value into the string form used for query parameters.
//
// Strings are returned unchanged, so the conversion is idempotent: Stringify(Stringify(v)) == Stringify(v).
// Values implementing [fmt.Stringer] use their String method, numbers and booleans are formatted with [strconv],
// and anything else falls back to [fmt.Sprint].
//
// Args:
//   - v: The value to convert.
//
// Returns:
//   - string: The string form of the value.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		// A nil pointer to a value-receiver Stringer panics on String; fmt prints it as <nil>.
		if rv := reflect.ValueOf(val); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return fmt.Sprint(val)
		}
		return val.String()
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
