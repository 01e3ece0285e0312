package docstore

import (
	"sort"
	"time"
)

// Shared query evaluation. Drivers without native filter pushdown fetch
// the collection and evaluate here, so every backend agrees on the
// comparison semantics (including documents read back from JSON, where
// numbers arrive as float64 and timestamps as RFC3339 strings).

// ApplyQuery filters, orders and limits docs per q.
func ApplyQuery(docs []Doc, q Query) []Doc {
	out := make([]Doc, 0, len(docs))
	for _, d := range docs {
		if MatchFilters(d.Data, q.Filters) {
			out = append(out, d)
		}
	}
	if q.OrderBy != "" {
		SortByField(out, q.OrderBy, q.Dir)
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func MatchFilters(data map[string]any, filters []Filter) bool {
	for _, f := range filters {
		v, ok := data[f.Field]
		switch f.Op {
		case OpEqual:
			if !ok || !equalValues(v, f.Value) {
				return false
			}
		case OpLess:
			if !ok || Compare(v, f.Value) >= 0 {
				return false
			}
		case OpGreater:
			if !ok || Compare(v, f.Value) <= 0 {
				return false
			}
		case OpArrayContains:
			if !ok || !arrayContains(v, f.Value) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// SortByField stable-sorts docs on one field. A missing field sorts as
// the minimum possible value.
func SortByField(docs []Doc, field string, dir Direction) {
	sort.SliceStable(docs, func(i, j int) bool {
		a, aok := docs[i].Data[field]
		b, bok := docs[j].Data[field]
		var c int
		switch {
		case !aok && !bok:
			c = 0
		case !aok:
			c = -1
		case !bok:
			c = 1
		default:
			c = Compare(a, b)
		}
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})
}

// Compare orders two stored values: numbers numerically, timestamps
// chronologically, strings lexically, bools false-first. Mixed or
// unknown types compare equal.
func Compare(a, b any) int {
	if at, aok := asTime(a); aok {
		if bt, bok := asTime(b); bok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			switch {
			case as < bs:
				return -1
			case as > bs:
				return 1
			default:
				return 0
			}
		}
	}
	if ab, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			switch {
			case ab == bb:
				return 0
			case bb:
				return -1
			default:
				return 1
			}
		}
	}
	return 0
}

func equalValues(a, b any) bool {
	if _, aok := asTime(a); aok {
		if _, bok := asTime(b); bok {
			return Compare(a, b) == 0
		}
	}
	return sameComparable(a, b) && Compare(a, b) == 0
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func arrayContains(field, value any) bool {
	switch arr := field.(type) {
	case []string:
		for _, item := range arr {
			if s, ok := value.(string); ok && item == s {
				return true
			}
		}
	case []any:
		for _, item := range arr {
			if Compare(item, value) == 0 && sameComparable(item, value) {
				return true
			}
		}
	}
	return false
}

// sameComparable guards arrayContains against Compare's "unknown types
// compare equal" default.
func sameComparable(a, b any) bool {
	if _, ok := asFloat(a); ok {
		_, ok2 := asFloat(b)
		return ok2
	}
	if _, ok := a.(string); ok {
		_, ok2 := b.(string)
		return ok2
	}
	if _, ok := a.(bool); ok {
		_, ok2 := b.(bool)
		return ok2
	}
	return false
}
