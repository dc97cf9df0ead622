package tmdb

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/lepinkainen/reelmeta/internal/dates"
)

func getInt(m map[string]any, key string) (int, bool) {
	val, ok := m[key]
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		i, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func getFloat(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func getString(m map[string]any, key string) (string, bool) {
	val, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

// getTime accepts both normalized payloads and raw date strings.
func getTime(m map[string]any, key string) (time.Time, bool) {
	switch v := m[key].(type) {
	case time.Time:
		return v, true
	case string:
		return dates.Parse(v)
	default:
		return time.Time{}, false
	}
}

func getMap(m map[string]any, key string) (map[string]any, bool) {
	v, ok := m[key].(map[string]any)
	return v, ok
}

// seasonNumbers lists seasons[].season_number in provider order.
func seasonNumbers(show Payload) []int {
	raw, _ := show["seasons"].([]any)
	numbers := make([]int, 0, len(raw))
	for _, item := range raw {
		season, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if n, ok := getInt(season, "season_number"); ok {
			numbers = append(numbers, n)
		}
	}
	return numbers
}

// groupByLength splits items into consecutive chunks of at most size.
func groupByLength[T any](items []T, size int) [][]T {
	var groups [][]T
	for len(items) > size {
		groups = append(groups, items[:size:size])
		items = items[size:]
	}
	if len(items) > 0 {
		groups = append(groups, items)
	}
	return groups
}

// clonePayload returns a shallow copy of p that is always safe to write to.
func clonePayload(p Payload) Payload {
	out := make(Payload, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	return out
}
