package sessions

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisRepository_SaveGetDelete(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepository(client, "test:session:", time.Hour)

	ctx := context.Background()
	s := &State{ID: "s1", Authenticated: true, Editing: true, DraftID: "d1"}

	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.True(t, got.Authenticated)
	require.Equal(t, "d1", got.DraftID)

	require.NoError(t, repo.Delete(ctx, "s1"))
	got2, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.Nil(t, got2)
}

func TestRedisRepository_TTLExpiry(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepository(client, "test:session:", time.Second)

	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &State{ID: "s2"}))

	// visible immediately
	got, err := repo.Get(ctx, "s2")
	require.NoError(t, err)
	require.NotNil(t, got)

	// advance miniredis clock past TTL
	m.FastForward(2 * time.Second)

	got2, err := repo.Get(ctx, "s2")
	require.NoError(t, err)
	require.Nil(t, got2)
}
