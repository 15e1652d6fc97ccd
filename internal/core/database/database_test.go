package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cutconnect/internal/core/config"
	"cutconnect/internal/store"
)

func TestOpenMemory(t *testing.T) {
	s, err := Open(context.Background(), config.Database{Driver: "memory"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &store.Memory{}, s)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Database{Driver: "postgres"}, zap.NewNop())
	assert.ErrorIs(t, err, store.ErrUnsupportedDriver)
}

func TestOpenMongoRequiresURL(t *testing.T) {
	_, err := Open(context.Background(), config.Database{Driver: "mongo", Name: "cutconnect"}, zap.NewNop())
	assert.ErrorIs(t, err, store.ErrNoConnectionString)
}

func TestConnectDegradesWithoutURL(t *testing.T) {
	ctx := context.Background()
	s, ready, err := Connect(ctx, config.Database{Driver: "mongo", Name: "cutconnect"}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, ready)

	_, err = s.Insert(ctx, "barber", map[string]string{"name": "Marcus"})
	assert.True(t, store.IsStorageError(err))
	assert.ErrorIs(t, err, store.ErrNoConnectionString)
}

func TestConnectDegradesOnBadURL(t *testing.T) {
	s, ready, err := Connect(context.Background(), config.Database{Driver: "mongo", URL: "postgres://nope", Name: "cutconnect"}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, ready)
	assert.IsType(t, &store.Unavailable{}, s)
}

func TestConnectMemoryIsReady(t *testing.T) {
	_, ready, err := Connect(context.Background(), config.Database{Driver: "memory"}, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, ready)
}

func TestConnectUnknownDriverStillFails(t *testing.T) {
	_, _, err := Connect(context.Background(), config.Database{Driver: "postgres"}, zap.NewNop())
	assert.ErrorIs(t, err, store.ErrUnsupportedDriver)
}
