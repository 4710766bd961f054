// Package jsonx reads typed values out of untyped provider JSON. Providers
// disagree on field names and nesting, so extraction is driven by ordered
// key-preference tables instead of fixed parsers. Every function here is
// total: a miss yields a zero value, never an error or panic.
package jsonx

import (
	"math"
	"strconv"
	"strings"
)

// PickString returns the first usable string among keys, trimmed. Numeric
// values are coerced to their decimal representation. Returns ok=false when
// no key holds a non-empty scalar.
func PickString(obj map[string]any, keys ...string) (string, bool) {
	if obj == nil {
		return "", false
	}
	for _, key := range keys {
		raw, exists := obj[key]
		if !exists || raw == nil {
			continue
		}
		switch v := raw.(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed, true
			}
		case float64:
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			return formatNumber(v), true
		case bool:
			return strconv.FormatBool(v), true
		}
	}
	return "", false
}

// PickStringDefault is PickString with a fallback value on miss.
func PickStringDefault(obj map[string]any, fallback string, keys ...string) string {
	if s, ok := PickString(obj, keys...); ok {
		return s
	}
	return fallback
}

// PickNumber returns the first finite number among keys. Numeric strings are
// parsed. Nested {total,all,overall,value} stat shapes are unwrapped one
// level, matching how several providers wrap aggregate counters.
func PickNumber(obj map[string]any, keys ...string) (float64, bool) {
	if obj == nil {
		return 0, false
	}
	for _, key := range keys {
		raw, exists := obj[key]
		if !exists || raw == nil {
			continue
		}
		if n, ok := coerceNumber(raw); ok {
			return n, true
		}
	}
	return 0, false
}

// PickInt is PickNumber truncated to int, with a fallback on miss.
func PickInt(obj map[string]any, fallback int, keys ...string) int {
	if n, ok := PickNumber(obj, keys...); ok {
		return int(n)
	}
	return fallback
}

func coerceNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case map[string]any:
		for _, nested := range []string{"total", "all", "overall", "value"} {
			if inner, exists := v[nested]; exists && inner != nil {
				if n, ok := coerceNumber(inner); ok {
					return n, true
				}
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// AsObject returns raw as an object, unwrapping a single {data: {...}}
// envelope when present.
func AsObject(raw any) map[string]any {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	if data, ok := obj["data"].(map[string]any); ok {
		return data
	}
	return obj
}

// AsArray returns raw as a slice, unwrapping a {data: [...]} envelope when
// present. Scalars and objects yield nil.
func AsArray(raw any) []any {
	switch v := raw.(type) {
	case []any:
		return v
	case map[string]any:
		if data, ok := v["data"].([]any); ok {
			return data
		}
		return nil
	default:
		return nil
	}
}

// ObjectRows filters a slice down to its object elements.
func ObjectRows(items []any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}
