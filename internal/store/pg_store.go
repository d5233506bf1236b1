package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore implements DocumentStore on PostgreSQL. All collections share one
// documents table keyed by (collection, id); fields are stored as jsonb and
// listed in insertion order.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new DocumentStore backed by a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// CreateDocument inserts a new document and returns the id assigned by the store.
func (p *PgStore) CreateDocument(ctx context.Context, collection string, fields json.RawMessage) (string, error) {
	const q = `INSERT INTO documents (collection, fields) VALUES ($1, $2) RETURNING id`
	var id string
	if err := p.db.QueryRow(ctx, q, collection, fields).Scan(&id); err != nil {
		return "", fmt.Errorf("%w: create document in %q: %v", ErrWrite, collection, err)
	}
	return id, nil
}

// GetDocument retrieves a document's fields by id. A missing document is
// reported via found=false, not an error.
func (p *PgStore) GetDocument(ctx context.Context, collection, id string) (json.RawMessage, bool, error) {
	const q = `SELECT fields FROM documents WHERE collection = $1 AND id = $2`
	var fields json.RawMessage
	err := p.db.QueryRow(ctx, q, collection, id).Scan(&fields)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: get document %s from %q: %v", ErrRead, id, collection, err)
	}
	return fields, true, nil
}

// ListDocuments returns the whole collection in insertion order.
func (p *PgStore) ListDocuments(ctx context.Context, collection string) ([]Document, error) {
	const q = `SELECT id, fields FROM documents WHERE collection = $1 ORDER BY created_at, id`
	rows, err := p.db.Query(ctx, q, collection)
	if err != nil {
		return nil, fmt.Errorf("%w: list documents in %q: %v", ErrRead, collection, err)
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Fields); err != nil {
			return nil, fmt.Errorf("%w: scan document in %q: %v", ErrRead, collection, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list documents in %q: %v", ErrRead, collection, err)
	}
	return docs, nil
}

// UpdateDocument replaces the fields of an existing document. Updating a
// missing id affects zero rows and is not reported as an error.
func (p *PgStore) UpdateDocument(ctx context.Context, collection, id string, fields json.RawMessage) error {
	const q = `UPDATE documents SET fields = $3 WHERE collection = $1 AND id = $2`
	if _, err := p.db.Exec(ctx, q, collection, id, fields); err != nil {
		return fmt.Errorf("%w: update document %s in %q: %v", ErrWrite, id, collection, err)
	}
	return nil
}

// DeleteDocument removes a document by id.
func (p *PgStore) DeleteDocument(ctx context.Context, collection, id string) error {
	const q = `DELETE FROM documents WHERE collection = $1 AND id = $2`
	if _, err := p.db.Exec(ctx, q, collection, id); err != nil {
		return fmt.Errorf("%w: delete document %s from %q: %v", ErrWrite, id, collection, err)
	}
	return nil
}
