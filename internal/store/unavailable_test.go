package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestUnavailableFailsEveryOperation(t *testing.T) {
	ctx := context.Background()
	u := NewUnavailable(ErrNoConnectionString)

	_, err := u.Insert(ctx, "barber", bson.M{"name": "Marcus"})
	assert.True(t, IsStorageError(err))
	assert.ErrorIs(t, err, ErrNoConnectionString)

	var out []bson.M
	assert.True(t, IsStorageError(u.Find(ctx, "barber", nil, 10, &out)))

	_, err = u.Exists(ctx, "barber", Filter{"name": "Marcus"})
	assert.True(t, IsStorageError(err))

	_, err = u.CollectionNames(ctx)
	assert.ErrorIs(t, err, ErrNoConnectionString)
	assert.Error(t, u.Ping(ctx))
	assert.NoError(t, u.Close(ctx))
}
