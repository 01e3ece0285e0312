// Package memory is an in-process document store used by tests and
// local development. It mirrors the hosted store's semantics, including
// the option to refuse ordered collection-group queries the way a store
// with a missing index would.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"go-skillhub-backend/internal/docstore"
	"go-skillhub-backend/pkg/apperror"
)

type Store struct {
	mu   sync.RWMutex
	docs map[string]map[string]any // path -> data

	groupOrdering bool
	gets          int
}

func New() *Store {
	return &Store{
		docs:          make(map[string]map[string]any),
		groupOrdering: true,
	}
}

// DisableGroupOrdering makes ordered QueryGroup calls fail with
// IndexUnavailable, simulating a store whose composite index is not
// built yet. Tests use this to exercise the degraded fallback path.
func (s *Store) DisableGroupOrdering() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groupOrdering = false
}

// GetCount reports how many Get calls the store has served, letting
// tests assert that fan-out resolution deduplicates lookups.
func (s *Store) GetCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gets
}

func (s *Store) Get(_ context.Context, path string) (docstore.Doc, error) {
	s.mu.Lock()
	s.gets++
	data, ok := s.docs[path]
	s.mu.Unlock()

	if !ok {
		return docstore.Doc{}, apperror.NotFound("document not found: " + path)
	}
	return docstore.Doc{ID: docstore.DocID(path), Path: path, Data: copyMap(data)}, nil
}

func (s *Store) Query(_ context.Context, collection string, q docstore.Query) ([]docstore.Doc, error) {
	s.mu.RLock()
	var docs []docstore.Doc
	prefix := collection + "/"
	for path, data := range s.docs {
		rest, ok := strings.CutPrefix(path, prefix)
		if !ok || strings.Contains(rest, "/") {
			continue
		}
		docs = append(docs, docstore.Doc{ID: rest, Path: path, Data: copyMap(data)})
	}
	s.mu.RUnlock()

	return docstore.ApplyQuery(docs, q), nil
}

func (s *Store) QueryGroup(_ context.Context, name string, q docstore.Query) ([]docstore.Doc, error) {
	s.mu.RLock()
	ordered := s.groupOrdering
	var docs []docstore.Doc
	for path, data := range s.docs {
		segments := strings.Split(path, "/")
		if len(segments) < 2 || segments[len(segments)-2] != name {
			continue
		}
		docs = append(docs, docstore.Doc{ID: segments[len(segments)-1], Path: path, Data: copyMap(data)})
	}
	s.mu.RUnlock()

	if q.OrderBy != "" && !ordered {
		return nil, apperror.IndexUnavailable("ordered query over collection group " + name + " requires an index")
	}
	return docstore.ApplyQuery(docs, q), nil
}

func (s *Store) Add(_ context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	s.docs[collection+"/"+id] = copyMap(data)
	s.mu.Unlock()
	return id, nil
}

func (s *Store) Set(_ context.Context, path string, data map[string]any) error {
	s.mu.Lock()
	s.docs[path] = copyMap(data)
	s.mu.Unlock()
	return nil
}

func (s *Store) Update(_ context.Context, path string, partial map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[path]
	if !ok {
		return apperror.NotFound("document not found: " + path)
	}
	for k, v := range partial {
		doc[k] = v
	}
	return nil
}

func (s *Store) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	delete(s.docs, path)
	s.mu.Unlock()
	return nil
}

func (s *Store) DeleteRecursive(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, path)
	prefix := path + "/"
	for p := range s.docs {
		if strings.HasPrefix(p, prefix) {
			delete(s.docs, p)
		}
	}
	return nil
}

func (s *Store) Batch() docstore.Batch {
	return &batch{store: s}
}

type batchOp struct {
	path    string
	partial map[string]any // nil means delete
}

type batch struct {
	store *Store
	ops   []batchOp
}

func (b *batch) Update(path string, partial map[string]any) {
	b.ops = append(b.ops, batchOp{path: path, partial: copyMap(partial)})
}

func (b *batch) Delete(path string) {
	b.ops = append(b.ops, batchOp{path: path})
}

// Commit applies every queued op under one lock. Updates are validated
// first so a missing target leaves the store untouched.
func (b *batch) Commit(_ context.Context) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	for _, op := range b.ops {
		if op.partial == nil {
			continue
		}
		if _, ok := b.store.docs[op.path]; !ok {
			return apperror.NotFound("document not found: " + op.path)
		}
	}
	for _, op := range b.ops {
		if op.partial == nil {
			delete(b.store.docs, op.path)
			continue
		}
		for k, v := range op.partial {
			b.store.docs[op.path][k] = v
		}
	}
	b.ops = nil
	return nil
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch vv := v.(type) {
		case map[string]any:
			out[k] = copyMap(vv)
		case []string:
			out[k] = append([]string(nil), vv...)
		case []any:
			out[k] = append([]any(nil), vv...)
		default:
			out[k] = v
		}
	}
	return out
}
