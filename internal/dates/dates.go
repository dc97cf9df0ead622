// Package dates converts date-like string leaves of decoded JSON into
// time.Time values.
package dates

import (
	"regexp"
	"time"

	"github.com/spf13/cast"
)

// isoDate matches a calendar date, optionally followed by a UTC time with
// optional milliseconds. Other strings are never converted, however
// date-like they look to a lenient parser.
var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2}(\.\d{3})?Z)?$`)

// Normalize returns a copy of v in which every string matching isoDate and
// forming a valid date is replaced by its time.Time. Maps and slices are
// copied, so v itself is never modified.
func Normalize(v any) any {
	switch value := v.(type) {
	case map[string]any:
		return NormalizeMap(value)
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = Normalize(item)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(value))
		for i, item := range value {
			out[i] = NormalizeMap(item)
		}
		return out
	case string:
		if t, ok := Parse(value); ok {
			return t
		}
		return value
	default:
		return v
	}
}

// NormalizeMap is Normalize for a JSON object.
func NormalizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = Normalize(value)
	}
	return out
}

// Parse converts s when it is an ISO date or UTC date-time.
func Parse(s string) (time.Time, bool) {
	if !isoDate.MatchString(s) {
		return time.Time{}, false
	}
	t, err := cast.ToTimeInDefaultLocationE(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
