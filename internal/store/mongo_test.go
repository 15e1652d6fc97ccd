package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Requires a running MongoDB; skipped unless MONGODB_URI is set.
func TestMongo_Integration(t *testing.T) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("Skipping MongoDB integration test - MONGODB_URI not set")
	}
	ctx := context.Background()
	dbName := fmt.Sprintf("cutconnect_test_%d", time.Now().UnixNano())

	m, err := NewMongo(ctx, MongoOpts{
		URI:              uri,
		Database:         dbName,
		MaxPoolSize:      4,
		ConnectTimeout:   5 * time.Second,
		SelectionTimeout: 5 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	defer func() {
		_ = m.db.Drop(ctx)
		_ = m.Close(ctx)
	}()

	first, err := m.Insert(ctx, "note", bson.M{"owner": "x", "body": "a"})
	require.NoError(t, err)
	_, err = m.Insert(ctx, "note", bson.M{"owner": "y", "body": "b"})
	require.NoError(t, err)

	var got []note
	require.NoError(t, m.Find(ctx, "note", Filter{"owner": "x"}, 50, &got))
	require.Len(t, got, 1)
	assert.Equal(t, first, got[0].ID)
	assert.False(t, got[0].CreatedAt.IsZero())

	ok, err := m.Exists(ctx, "note", Filter{"_id": first})
	require.NoError(t, err)
	assert.True(t, ok)

	names, err := m.CollectionNames(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "note")

	got = nil
	require.NoError(t, m.Find(ctx, "note", nil, 0, &got))
	assert.Empty(t, got)
}

func TestNewMongoWithoutURL(t *testing.T) {
	_, err := NewMongo(context.Background(), MongoOpts{Database: "cutconnect"}, zap.NewNop())
	assert.ErrorIs(t, err, ErrNoConnectionString)
}

func TestNewMongoKeepsClientWhenPingFails(t *testing.T) {
	ctx := context.Background()
	m, err := NewMongo(ctx, MongoOpts{
		URI:              "mongodb://127.0.0.1:1",
		Database:         "cutconnect",
		ConnectTimeout:   200 * time.Millisecond,
		SelectionTimeout: 200 * time.Millisecond,
	}, zap.NewNop())
	require.NoError(t, err)
	defer m.Close(ctx)

	_, err = m.CollectionNames(ctx)
	assert.True(t, IsStorageError(err))
	assert.Error(t, m.Ping(ctx))
}
