// Package store defines the document store contract the application
// persists into, plus its PostgreSQL and in-memory implementations.
//
// The store is collection-addressed: documents live in a named collection,
// carry an opaque store-assigned id, and hold their fields as a JSON object.
// Callers own the typing of the fields on both sides of the boundary.
package store

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrRead marks failures of read operations (list, get). Absence of a
// document is not a read failure; GetDocument reports it via found=false.
var ErrRead = errors.New("store read failed")

// ErrWrite marks failures of write operations (create, update, delete).
var ErrWrite = errors.New("store write failed")

// Document is one record of a collection: an opaque unique id plus the
// marshaled field object.
type Document struct {
	ID     string
	Fields json.RawMessage
}

// DocumentStore is the persistence collaborator.
// Implementations must keep ListDocuments order stable (insertion order);
// the application renders documents in the order the store returns them.
type DocumentStore interface {
	// CreateDocument stores a new document and returns its store-assigned id.
	// Fails with ErrWrite.
	CreateDocument(ctx context.Context, collection string, fields json.RawMessage) (string, error)

	// GetDocument retrieves a single document's fields by id. A missing
	// document is a normal (found=false) result, not an error.
	// Fails with ErrRead.
	GetDocument(ctx context.Context, collection, id string) (json.RawMessage, bool, error)

	// ListDocuments returns the entire collection in the store's order.
	// Returns an empty slice if the collection is empty. Fails with ErrRead.
	ListDocuments(ctx context.Context, collection string) ([]Document, error)

	// UpdateDocument replaces the fields of the document with the given id.
	// The result for a missing id is implementation-defined; callers must not
	// rely on it. Fails with ErrWrite.
	UpdateDocument(ctx context.Context, collection, id string, fields json.RawMessage) error

	// DeleteDocument removes the document with the given id.
	// Fails with ErrWrite.
	DeleteDocument(ctx context.Context, collection, id string) error
}
