package request

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Query holds request parameters. Values may be scalars, pointers or
// slices; nil values (including nil pointers) are dropped and Null is
// written as the literal string "null".
type Query map[string]any

type nullValue struct{}

func (nullValue) String() string { return "null" }

// Null is a query value serialized as "null".
var Null = nullValue{}

// Encode appends q to the query string of u and returns u. Slices become a
// single comma-joined value with nil entries removed; a slice with nothing
// left after filtering adds no parameter.
func Encode(u *url.URL, q Query) *url.URL {
	if len(q) == 0 {
		return u
	}

	values := u.Query()
	for key, value := range q {
		if encoded, ok := encodeValue(value); ok {
			values.Add(key, encoded)
		}
	}
	u.RawQuery = values.Encode()
	return u
}

func encodeValue(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	if _, ok := value.(nullValue); ok {
		return "null", true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if _, isBytes := value.([]byte); isBytes {
			return string(value.([]byte)), true
		}
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if s, ok := stringify(rv.Index(i).Interface()); ok {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, ","), true
	default:
		return stringify(value)
	}
}

func stringify(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case nullValue:
		return "null", true
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case fmt.Stringer:
		return v.String(), true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		return stringify(rv.Elem().Interface())
	}
	return fmt.Sprint(value), true
}
