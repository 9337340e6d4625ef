package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkroom/server/internal/domain"
	"github.com/linkroom/server/internal/repository/room"
)

func newTestRepo(t *testing.T) *repo {
	t.Helper()

	s := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})

	return NewRepo(rc, time.Hour)
}

func TestSetGetRoom(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	stored := domain.NewRoom()
	stored.AddLink("url-1")
	stored.AppendMessage("hello")
	stored.SetCurrentTime(3.5)
	require.NoError(t, repo.SetRoom(ctx, stored))

	got, err := repo.GetRoom(ctx, stored.Id)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestGetRoomNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetRoom(context.Background(), "missing")
	assert.ErrorIs(t, err, room.ErrRoomNotFound)
}

func TestGetRoomIds(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	room1 := domain.NewRoom()
	room2 := domain.NewRoom()
	require.NoError(t, repo.SetRoom(ctx, room1))
	require.NoError(t, repo.SetRoom(ctx, room2))

	ids, err := repo.GetRoomIds(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{room1.Id, room2.Id}, ids)
}
