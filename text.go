package slot

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// fullStringer is implemented by slots.
type fullStringer interface {
	FullString() string
}

// ToText converts a Go value to display text. Slots and other
// fmt.Stringers use their String method.
//
//	slot.ToText(42)          // "42"
//	slot.ToText(&root.Left)  // "Node(2)"
//	slot.ToText([]int{1, 2}) // "[1 2]"
func ToText(v any) string {
	if v == nil {
		return "nil"
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "nil"
	}

	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			parts := make([]string, rv.Len())
			for i := range rv.Len() {
				parts[i] = ToText(rv.Index(i).Interface())
			}
			return "[" + strings.Join(parts, " ") + "]"
		default:
			return fmt.Sprintf("%v", v)
		}
	}
}

// ToFullText is ToText, except that slots are described with FullString.
func ToFullText(v any) string {
	if fs, ok := v.(fullStringer); ok {
		return fs.FullString()
	}
	return ToText(v)
}
