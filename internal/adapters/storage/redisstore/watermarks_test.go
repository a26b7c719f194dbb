package redisstore

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption/internal/domain/activity"
)

func newStore(t *testing.T) (*Watermarks, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewWatermarks(client), mr
}

func TestWatermarks_GetMissing(t *testing.T) {
	store, _ := newStore(t)

	_, ok, err := store.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWatermarks_AdvanceIsMonotonic(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 123456000, time.UTC)

	c, err := store.Advance(ctx, "u1", activity.Cursor{At: at, ID: "e2"})
	require.NoError(t, err)
	assert.Equal(t, activity.Cursor{At: at, ID: "e2"}, c)
	assert.Equal(t, "e2", mr.HGet(keyPrefix+"u1", "id"))

	// Mismo instante, id menor: no retrocede.
	c, err = store.Advance(ctx, "u1", activity.Cursor{At: at, ID: "e1"})
	require.NoError(t, err)
	assert.Equal(t, "e2", c.ID)

	// Anterior en el tiempo: no retrocede.
	c, err = store.Advance(ctx, "u1", activity.Cursor{At: at.Add(-time.Hour), ID: "e9"})
	require.NoError(t, err)
	assert.Equal(t, "e2", c.ID)

	// Mismo instante, id mayor: avanza.
	c, err = store.Advance(ctx, "u1", activity.Cursor{At: at, ID: "e3"})
	require.NoError(t, err)
	assert.Equal(t, "e3", c.ID)

	got, ok, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, at.Equal(got.At))
	assert.Equal(t, "e3", got.ID)

	_, ok, err = store.Get(ctx, "u2")
	require.NoError(t, err)
	assert.False(t, ok, "watermarks are per user")
}

func TestWatermarks_AdvanceRequiresUser(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.Advance(context.Background(), " ", activity.Cursor{At: time.Now(), ID: "e1"})
	require.Error(t, err)
}
