// Package surreal backs the document store with SurrealDB over its
// websocket RPC driver. Documents live in one table keyed by path, with
// collection/doc_group columns mirroring the postgres driver; batches
// ride a single transactional query.
package surreal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go"

	"go-skillhub-backend/internal/docstore"
	"go-skillhub-backend/pkg/apperror"
)

const table = "document"

type Config struct {
	URL       string // ws://host:port/rpc
	Namespace string
	Database  string
	User      string
	Pass      string
}

type Store struct {
	db *surrealdb.DB
}

func NewStore(cfg Config) (*Store, error) {
	db, err := surrealdb.New(cfg.URL)
	if err != nil {
		return nil, apperror.Unavailable("Service temporarily unavailable.", err)
	}
	if _, err := db.Signin(map[string]any{"user": cfg.User, "pass": cfg.Pass}); err != nil {
		return nil, apperror.Unavailable("Service temporarily unavailable.", err)
	}
	if _, err := db.Use(cfg.Namespace, cfg.Database); err != nil {
		return nil, apperror.Unavailable("Service temporarily unavailable.", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() {
	s.db.Close()
}

func (s *Store) Get(_ context.Context, path string) (docstore.Doc, error) {
	rows, err := s.query(`SELECT * FROM `+table+` WHERE path = $path LIMIT 1`, map[string]any{"path": path})
	if err != nil {
		return docstore.Doc{}, err
	}
	if len(rows) == 0 {
		return docstore.Doc{}, apperror.NotFound("document not found: " + path)
	}
	return toDoc(rows[0]), nil
}

func (s *Store) Query(_ context.Context, collection string, q docstore.Query) ([]docstore.Doc, error) {
	rows, err := s.query(`SELECT * FROM `+table+` WHERE collection = $c`, map[string]any{"c": collection})
	if err != nil {
		return nil, err
	}
	return docstore.ApplyQuery(toDocs(rows), q), nil
}

func (s *Store) QueryGroup(_ context.Context, name string, q docstore.Query) ([]docstore.Doc, error) {
	rows, err := s.query(`SELECT * FROM `+table+` WHERE doc_group = $g`, map[string]any{"g": name})
	if err != nil {
		return nil, err
	}
	return docstore.ApplyQuery(toDocs(rows), q), nil
}

func (s *Store) Add(_ context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()
	path := collection + "/" + id
	if err := s.create(path, collection, data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Set(_ context.Context, path string, data map[string]any) error {
	// Replace semantics: drop any existing record for the path first.
	_, err := s.query(
		`BEGIN TRANSACTION; DELETE `+table+` WHERE path = $path; CREATE `+table+` CONTENT $content; COMMIT TRANSACTION`,
		map[string]any{"path": path, "content": record(path, parentCollection(path), data)},
	)
	return err
}

func (s *Store) create(path, collection string, data map[string]any) error {
	_, err := s.db.Create(table, record(path, collection, data))
	if err != nil {
		return apperror.Unavailable("Service temporarily unavailable.", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, path string, partial map[string]any) error {
	if _, err := s.Get(ctx, path); err != nil {
		return err
	}
	_, err := s.query(`UPDATE `+table+` MERGE { data: $partial } WHERE path = $path`,
		map[string]any{"partial": partial, "path": path})
	return err
}

func (s *Store) Delete(_ context.Context, path string) error {
	_, err := s.query(`DELETE `+table+` WHERE path = $path`, map[string]any{"path": path})
	return err
}

func (s *Store) DeleteRecursive(_ context.Context, path string) error {
	_, err := s.query(`DELETE `+table+` WHERE path = $path OR string::startsWith(path, $prefix)`,
		map[string]any{"path": path, "prefix": path + "/"})
	return err
}

func (s *Store) Batch() docstore.Batch {
	return &batch{store: s}
}

type batch struct {
	store *Store
	stmts []string
	vars  map[string]any
}

func (b *batch) Update(path string, partial map[string]any) {
	n := len(b.stmts)
	b.ensureVars()
	b.vars[fmt.Sprintf("p%d", n)] = path
	b.vars[fmt.Sprintf("m%d", n)] = partial
	b.stmts = append(b.stmts, fmt.Sprintf(`UPDATE %s MERGE { data: $m%d } WHERE path = $p%d`, table, n, n))
}

func (b *batch) Delete(path string) {
	n := len(b.stmts)
	b.ensureVars()
	b.vars[fmt.Sprintf("p%d", n)] = path
	b.stmts = append(b.stmts, fmt.Sprintf(`DELETE %s WHERE path = $p%d`, table, n))
}

func (b *batch) ensureVars() {
	if b.vars == nil {
		b.vars = make(map[string]any)
	}
}

// Commit sends every queued statement as one transaction.
func (b *batch) Commit(_ context.Context) error {
	if len(b.stmts) == 0 {
		return nil
	}
	sql := "BEGIN TRANSACTION"
	for _, stmt := range b.stmts {
		sql += "; " + stmt
	}
	sql += "; COMMIT TRANSACTION"

	_, err := b.store.query(sql, b.vars)
	if err != nil {
		return err
	}
	b.stmts, b.vars = nil, nil
	return nil
}

func (s *Store) query(sql string, vars map[string]any) ([]map[string]any, error) {
	resp, err := s.db.Query(sql, vars)
	if err != nil {
		return nil, apperror.Unavailable("Service temporarily unavailable.", err)
	}
	return rows(resp), nil
}

func record(path, collection string, data map[string]any) map[string]any {
	return map[string]any{
		"path":       path,
		"collection": collection,
		"doc_group":  docstore.DocID(collection),
		"data":       data,
	}
}

func toDoc(row map[string]any) docstore.Doc {
	path, _ := row["path"].(string)
	data, _ := row["data"].(map[string]any)
	return docstore.Doc{ID: docstore.DocID(path), Path: path, Data: data}
}

func toDocs(rows []map[string]any) []docstore.Doc {
	docs := make([]docstore.Doc, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, toDoc(r))
	}
	return docs
}

// rows flattens the driver's response shapes: either a raw record list
// or a list of per-statement results carrying their own record lists.
func rows(resp any) []map[string]any {
	var out []map[string]any
	switch v := resp.(type) {
	case []any:
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if result, has := m["result"]; has {
				out = append(out, rows(result)...)
				continue
			}
			out = append(out, m)
		}
	case map[string]any:
		if result, has := v["result"]; has {
			out = append(out, rows(result)...)
		} else {
			out = append(out, v)
		}
	}
	return out
}

func parentCollection(path string) string {
	id := docstore.DocID(path)
	if len(path) > len(id) {
		return path[:len(path)-len(id)-1]
	}
	return path
}
