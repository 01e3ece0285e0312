// Package docstore implements the domain repositories on top of the raw
// document store. Each repository owns its collection paths and the
// mapping between entity structs and stored maps; raw document data
// never leaves this package.
package docstore

import (
	"time"
)

// Timestamps are stored as RFC3339 strings so every driver round-trips
// them identically.
func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func str(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func boolVal(m map[string]any, key string) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return false
}

// intVal tolerates float64, which is what numbers decode to after a
// JSON round trip.
func intVal(m map[string]any, key string) int {
	switch n := m[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func floatVal(m map[string]any, key string) float64 {
	switch n := m[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func timeVal(m map[string]any, key string) time.Time {
	switch t := m[key].(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func strSlice(m map[string]any, key string) []string {
	switch v := m[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
