package inmemory

import (
	"context"
	"sync"

	"github.com/linkroom/server/internal/domain"
	"github.com/linkroom/server/internal/repository/room"
)

// repo keeps rooms in process memory. Rooms live until process exit, there
// is no eviction.
type repo struct {
	rooms map[string]*domain.Room
	mu    sync.RWMutex
}

func NewRepo() *repo {
	return &repo{
		rooms: make(map[string]*domain.Room),
	}
}

func (r *repo) SetRoom(_ context.Context, room *domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms[room.Id] = room.Clone()
	return nil
}

func (r *repo) GetRoom(_ context.Context, roomId string) (*domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.rooms[roomId]
	if !ok {
		return nil, room.ErrRoomNotFound
	}

	return stored.Clone(), nil
}

func (r *repo) GetRoomIds(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.rooms))
	for id := range r.rooms {
		ids = append(ids, id)
	}

	return ids, nil
}
