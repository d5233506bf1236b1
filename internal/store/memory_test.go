package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MemStore_CreateAndGet(t *testing.T) {
	// given
	mem := NewMemStore()
	ctx := context.Background()

	// when
	id, err := mem.CreateDocument(ctx, "products", json.RawMessage(`{"name":"Cap"}`))

	// then
	require.NoError(t, err)
	require.NotEmpty(t, id)

	fields, found, err := mem.GetDocument(ctx, "products", id)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"name":"Cap"}`, string(fields))
}

func Test_MemStore_GetMissing(t *testing.T) {
	mem := NewMemStore()

	fields, found, err := mem.GetDocument(context.Background(), "products", "no-such-id")

	require.NoError(t, err, "absence is not an error")
	assert.False(t, found)
	assert.Nil(t, fields)
}

func Test_MemStore_ListKeepsInsertionOrder(t *testing.T) {
	// given
	mem := NewMemStore()
	ctx := context.Background()
	var ids []string
	for _, doc := range []string{`{"n":1}`, `{"n":2}`, `{"n":3}`} {
		id, err := mem.CreateDocument(ctx, "products", json.RawMessage(doc))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	// when
	docs, err := mem.ListDocuments(ctx, "products")

	// then
	require.NoError(t, err)
	require.Len(t, docs, 3)
	for i, doc := range docs {
		assert.Equal(t, ids[i], doc.ID)
	}
}

func Test_MemStore_ListEmptyCollection(t *testing.T) {
	mem := NewMemStore()

	docs, err := mem.ListDocuments(context.Background(), "products")

	require.NoError(t, err)
	assert.Empty(t, docs)
}

func Test_MemStore_CollectionsAreIsolated(t *testing.T) {
	// given
	mem := NewMemStore()
	ctx := context.Background()
	id, err := mem.CreateDocument(ctx, "products", json.RawMessage(`{"name":"Cap"}`))
	require.NoError(t, err)

	// when: the same id is looked up in another collection
	_, found, err := mem.GetDocument(ctx, "orders", id)

	// then
	require.NoError(t, err)
	assert.False(t, found)
}

func Test_MemStore_Update(t *testing.T) {
	// given
	mem := NewMemStore()
	ctx := context.Background()
	id, err := mem.CreateDocument(ctx, "products", json.RawMessage(`{"name":"Cap"}`))
	require.NoError(t, err)

	// when
	err = mem.UpdateDocument(ctx, "products", id, json.RawMessage(`{"name":"Hat"}`))

	// then
	require.NoError(t, err)
	fields, found, err := mem.GetDocument(ctx, "products", id)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"name":"Hat"}`, string(fields))
}

func Test_MemStore_UpdateMissingIsNoOp(t *testing.T) {
	mem := NewMemStore()
	ctx := context.Background()

	err := mem.UpdateDocument(ctx, "products", "no-such-id", json.RawMessage(`{}`))

	require.NoError(t, err)
	docs, err := mem.ListDocuments(ctx, "products")
	require.NoError(t, err)
	assert.Empty(t, docs, "a blind update must not create a document")
}

func Test_MemStore_Delete(t *testing.T) {
	// given
	mem := NewMemStore()
	ctx := context.Background()
	first, err := mem.CreateDocument(ctx, "products", json.RawMessage(`{"n":1}`))
	require.NoError(t, err)
	victim, err := mem.CreateDocument(ctx, "products", json.RawMessage(`{"n":2}`))
	require.NoError(t, err)
	last, err := mem.CreateDocument(ctx, "products", json.RawMessage(`{"n":3}`))
	require.NoError(t, err)

	// when
	err = mem.DeleteDocument(ctx, "products", victim)

	// then: only the victim is gone and the order of the rest survives
	require.NoError(t, err)
	docs, err := mem.ListDocuments(ctx, "products")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, first, docs[0].ID)
	assert.Equal(t, last, docs[1].ID)
}

func Test_MemStore_DeleteMissingIsNoOp(t *testing.T) {
	mem := NewMemStore()

	err := mem.DeleteDocument(context.Background(), "products", "no-such-id")

	require.NoError(t, err)
}

func Test_MemStore_CallerCannotMutateStoredFields(t *testing.T) {
	// given
	mem := NewMemStore()
	ctx := context.Background()
	input := json.RawMessage(`{"name":"Cap"}`)
	id, err := mem.CreateDocument(ctx, "products", input)
	require.NoError(t, err)

	// when: the caller scribbles over the slice it passed in and the one it
	// read back
	input[2] = 'X'
	out, found, err := mem.GetDocument(ctx, "products", id)
	require.NoError(t, err)
	require.True(t, found)
	out[2] = 'Y'

	// then: the stored document is untouched
	fresh, found, err := mem.GetDocument(ctx, "products", id)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"name":"Cap"}`, string(fresh))
}
