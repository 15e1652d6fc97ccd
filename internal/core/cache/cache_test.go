package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestGetOrLoadJSONCachesResult(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"fade", "trim"}, nil
	}

	got, err := GetOrLoadJSON(c, ctx, "services", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"fade", "trim"}, got)

	got, err = GetOrLoadJSON(c, ctx, "services", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"fade", "trim"}, got)
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists("cutconnect:services"))
}

func TestGetOrLoadDoesNotCacheErrors(t *testing.T) {
	c, mr := newTestCache(t)
	boom := errors.New("boom")

	_, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("cutconnect:k"))
}

func TestGenerationBump(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	g, err := c.Generation(ctx, "barber")
	require.NoError(t, err)
	assert.Equal(t, int64(0), g)

	require.NoError(t, c.Bump(ctx, "barber"))
	require.NoError(t, c.Bump(ctx, "barber"))
	g, err = c.Generation(ctx, "barber")
	require.NoError(t, err)
	assert.Equal(t, int64(2), g)
}

func TestGetOrLoadFallsBackWhenRedisDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	b, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		return []byte(`"ok"`), nil
	})
	require.NoError(t, err)
	assert.Equal(t, `"ok"`, string(b))
}
