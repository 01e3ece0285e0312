// Package docstore abstracts the hosted document database the engine
// persists to. It offers per-document CRUD and simple equality, range
// and array-membership queries — no joins, no full-text search. Child
// collections are addressed by composing the parent document path with
// a collection name ("skills/<id>/lessons").
package docstore

import (
	"context"
	"strings"
)

// Doc is one raw document as read from the store. Typed records are
// constructed from Data at the repository boundary; Data is never passed
// further up.
type Doc struct {
	ID   string
	Path string
	Data map[string]any
}

type Op string

const (
	OpEqual         Op = "=="
	OpLess          Op = "<"
	OpGreater       Op = ">"
	OpArrayContains Op = "array-contains"
)

type Filter struct {
	Field string
	Op    Op
	Value any
}

func Where(field string, op Op, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

type Direction int

const (
	Ascending Direction = iota
	Descending
)

type Query struct {
	Filters []Filter
	OrderBy string
	Dir     Direction
	Limit   int // 0 means no limit
}

// Batch queues update/delete operations that Commit applies atomically:
// either every queued write lands or none does.
type Batch interface {
	Update(path string, partial map[string]any)
	Delete(path string)
	Commit(ctx context.Context) error
}

type Store interface {
	// Get returns NotFound when the document is absent.
	Get(ctx context.Context, path string) (Doc, error)
	// Query runs over one collection path.
	Query(ctx context.Context, collection string, q Query) ([]Doc, error)
	// QueryGroup runs over every collection with the given name,
	// anywhere in the hierarchy. An ordered group query may fail with
	// IndexUnavailable; callers fall back to an unordered fetch.
	QueryGroup(ctx context.Context, name string, q Query) ([]Doc, error)
	// Add stores data under a generated id and returns it.
	Add(ctx context.Context, collection string, data map[string]any) (string, error)
	// Set creates or replaces the document at path.
	Set(ctx context.Context, path string, data map[string]any) error
	// Update merges partial into an existing document; NotFound when absent.
	Update(ctx context.Context, path string, partial map[string]any) error
	Delete(ctx context.Context, path string) error
	Batch() Batch
	// DeleteRecursive removes the document and its entire subtree.
	// Best-effort rather than atomic: a crash mid-cascade can leave
	// children behind, and re-running completes the cleanup.
	DeleteRecursive(ctx context.Context, path string) error
}

// Join composes a document/collection path from its segments.
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

// DocID returns the last path segment.
func DocID(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
