package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type note struct {
	ID        primitive.ObjectID `bson:"_id"`
	Owner     string             `bson:"owner"`
	Body      string             `bson:"body"`
	CreatedAt time.Time          `bson:"created_at"`
}

func TestMemoryInsertFindInOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	fixed := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	var ids []primitive.ObjectID
	for _, body := range []string{"a", "b", "c"} {
		id, err := m.Insert(ctx, "note", bson.M{"owner": "x", "body": body})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	var got []note
	require.NoError(t, m.Find(ctx, "note", nil, 50, &got))
	require.Len(t, got, 3)
	for i, n := range got {
		assert.Equal(t, ids[i], n.ID)
		assert.True(t, fixed.Equal(n.CreatedAt))
	}
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].Body, got[1].Body, got[2].Body})
}

func TestMemoryFindFilterAndLimit(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for _, owner := range []string{"x", "y", "x", "x"} {
		_, err := m.Insert(ctx, "note", bson.M{"owner": owner})
		require.NoError(t, err)
	}

	var got []note
	require.NoError(t, m.Find(ctx, "note", Filter{"owner": "x"}, 2, &got))
	assert.Len(t, got, 2)

	got = nil
	require.NoError(t, m.Find(ctx, "note", Filter{"owner": "X"}, 50, &got))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMemoryZeroLimitIsEmpty(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_, err := m.Insert(ctx, "note", bson.M{"owner": "x"})
	require.NoError(t, err)

	var got []note
	require.NoError(t, m.Find(ctx, "note", nil, 0, &got))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMemoryIgnoresCallerID(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	mine := primitive.NewObjectID()
	id, err := m.Insert(ctx, "note", bson.M{"_id": mine, "owner": "x"})
	require.NoError(t, err)
	assert.NotEqual(t, mine, id)
}

func TestMemoryExists(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	id, err := m.Insert(ctx, "note", bson.M{"owner": "x"})
	require.NoError(t, err)

	ok, err := m.Exists(ctx, "note", Filter{"_id": id})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Exists(ctx, "note", Filter{"_id": primitive.NewObjectID()})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = m.Exists(ctx, "note", Filter{"_id": id.Hex()})
	require.NoError(t, err)
	assert.False(t, ok, "hex string must not match an ObjectID")
}

func TestMemoryClosedBehavesUnreachable(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_, err := m.Insert(ctx, "note", bson.M{"owner": "x"})
	require.NoError(t, err)

	names, err := m.CollectionNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"note"}, names)

	require.NoError(t, m.Close(ctx))

	_, err = m.Insert(ctx, "note", bson.M{"owner": "x"})
	assert.True(t, IsStorageError(err))
	var got []note
	assert.True(t, IsStorageError(m.Find(ctx, "note", nil, 10, &got)))
	assert.True(t, IsStorageError(m.Ping(ctx)))
}
