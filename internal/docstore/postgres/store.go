// Package postgres persists the document hierarchy in a single jsonb
// table. Paths keep the parent/child structure ("skills/<id>/lessons/
// <id>"), the collection column holds the full collection path and
// doc_group its last segment, which is what collection-group queries
// scan. Filters are evaluated in-process with the shared docstore
// helpers so every driver agrees on comparison semantics.
package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-skillhub-backend/internal/docstore"
	"go-skillhub-backend/pkg/apperror"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate creates the documents table and its lookup indexes.
func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			path       text PRIMARY KEY,
			collection text NOT NULL,
			doc_group  text NOT NULL,
			data       jsonb NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents (collection)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_group ON documents (doc_group)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return apperror.Unavailable("Service temporarily unavailable.", err)
		}
	}
	return nil
}

func (s *Store) Get(ctx context.Context, path string) (docstore.Doc, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM documents WHERE path = $1`, path).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return docstore.Doc{}, apperror.NotFound("document not found: " + path)
	}
	if err != nil {
		return docstore.Doc{}, apperror.Unavailable("Service temporarily unavailable.", err)
	}

	data, err := decode(raw)
	if err != nil {
		return docstore.Doc{}, apperror.Internal(err)
	}
	return docstore.Doc{ID: docstore.DocID(path), Path: path, Data: data}, nil
}

func (s *Store) Query(ctx context.Context, collection string, q docstore.Query) ([]docstore.Doc, error) {
	return s.scan(ctx, `SELECT path, data FROM documents WHERE collection = $1`, collection, q)
}

func (s *Store) QueryGroup(ctx context.Context, name string, q docstore.Query) ([]docstore.Doc, error) {
	return s.scan(ctx, `SELECT path, data FROM documents WHERE doc_group = $1`, name, q)
}

func (s *Store) scan(ctx context.Context, sql, arg string, q docstore.Query) ([]docstore.Doc, error) {
	rows, err := s.pool.Query(ctx, sql, arg)
	if err != nil {
		return nil, apperror.Unavailable("Service temporarily unavailable.", err)
	}
	defer rows.Close()

	var docs []docstore.Doc
	for rows.Next() {
		var path string
		var raw []byte
		if err := rows.Scan(&path, &raw); err != nil {
			return nil, apperror.Unavailable("Service temporarily unavailable.", err)
		}
		data, err := decode(raw)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		docs = append(docs, docstore.Doc{ID: docstore.DocID(path), Path: path, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Unavailable("Service temporarily unavailable.", err)
	}

	return docstore.ApplyQuery(docs, q), nil
}

func (s *Store) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()
	if err := s.insert(ctx, collection+"/"+id, collection, data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Set(ctx context.Context, path string, data map[string]any) error {
	return s.insert(ctx, path, parentCollection(path), data)
}

func (s *Store) insert(ctx context.Context, path, collection string, data map[string]any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return apperror.Internal(err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (path, collection, doc_group, data) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (path) DO UPDATE SET data = EXCLUDED.data`,
		path, collection, docstore.DocID(collection), raw)
	if err != nil {
		return apperror.Unavailable("Service temporarily unavailable.", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, path string, partial map[string]any) error {
	raw, err := json.Marshal(partial)
	if err != nil {
		return apperror.Internal(err)
	}
	tag, err := s.pool.Exec(ctx, `UPDATE documents SET data = data || $2::jsonb WHERE path = $1`, path, raw)
	if err != nil {
		return apperror.Unavailable("Service temporarily unavailable.", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("document not found: " + path)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE path = $1`, path)
	if err != nil {
		return apperror.Unavailable("Service temporarily unavailable.", err)
	}
	return nil
}

func (s *Store) DeleteRecursive(ctx context.Context, path string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE path = $1 OR path LIKE $2`, path, path+"/%")
	if err != nil {
		return apperror.Unavailable("Service temporarily unavailable.", err)
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
	b.ops = append(b.ops, batchOp{path: path, partial: partial})
}

func (b *batch) Delete(path string) {
	b.ops = append(b.ops, batchOp{path: path})
}

// Commit runs every queued op inside one transaction.
func (b *batch) Commit(ctx context.Context) error {
	tx, err := b.store.pool.Begin(ctx)
	if err != nil {
		return apperror.Unavailable("Service temporarily unavailable.", err)
	}
	defer tx.Rollback(ctx)

	for _, op := range b.ops {
		if op.partial == nil {
			if _, err := tx.Exec(ctx, `DELETE FROM documents WHERE path = $1`, op.path); err != nil {
				return apperror.Unavailable("Service temporarily unavailable.", err)
			}
			continue
		}
		raw, err := json.Marshal(op.partial)
		if err != nil {
			return apperror.Internal(err)
		}
		tag, err := tx.Exec(ctx, `UPDATE documents SET data = data || $2::jsonb WHERE path = $1`, op.path, raw)
		if err != nil {
			return apperror.Unavailable("Service temporarily unavailable.", err)
		}
		if tag.RowsAffected() == 0 {
			return apperror.NotFound("document not found: " + op.path)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Unavailable("Service temporarily unavailable.", err)
	}
	b.ops = nil
	return nil
}

func decode(raw []byte) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// parentCollection strips the document id from a path.
func parentCollection(path string) string {
	return path[:max(0, len(path)-len(docstore.DocID(path))-1)]
}
