package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkroom/server/internal/domain"
	"github.com/linkroom/server/internal/repository/room"
)

func TestSetGetRoom(t *testing.T) {
	repo := NewRepo()
	ctx := context.Background()

	stored := domain.NewRoom()
	stored.AddLink("url-1")
	require.NoError(t, repo.SetRoom(ctx, stored))

	got, err := repo.GetRoom(ctx, stored.Id)
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	// stored state must not alias the caller's copy
	got.AddLink("url-2")
	again, err := repo.GetRoom(ctx, stored.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, len(again.Links))
}

func TestGetRoomNotFound(t *testing.T) {
	repo := NewRepo()

	_, err := repo.GetRoom(context.Background(), "missing")
	assert.ErrorIs(t, err, room.ErrRoomNotFound)
}

func TestGetRoomIds(t *testing.T) {
	repo := NewRepo()
	ctx := context.Background()

	ids, err := repo.GetRoomIds(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	room1 := domain.NewRoom()
	room2 := domain.NewRoom()
	require.NoError(t, repo.SetRoom(ctx, room1))
	require.NoError(t, repo.SetRoom(ctx, room2))

	ids, err = repo.GetRoomIds(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{room1.Id, room2.Id}, ids)
}
