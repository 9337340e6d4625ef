package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/linkroom/server/internal/domain"
	roomrepo "github.com/linkroom/server/internal/repository/room"
)

// getRoom translates repository misses into the service sentinel.
func (s *service) getRoom(ctx context.Context, roomId string) (*domain.Room, error) {
	roomState, err := s.roomRepo.GetRoom(ctx, roomId)
	if err != nil {
		if errors.Is(err, roomrepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}

		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return roomState, nil
}

// mutate runs fn on the room state inside the per-room critical section and
// stores the result. The room is stored only when fn succeeds, so a failed
// command never leaves it partially mutated. The returned conns are every
// session bound to the room at the time of the mutation.
func (s *service) mutate(ctx context.Context, roomId string, fn func(*domain.Room) error) (domain.Snapshot, []*websocket.Conn, error) {
	lock := s.lockRoom(roomId)
	lock.Lock()
	defer lock.Unlock()

	roomState, err := s.getRoom(ctx, roomId)
	if err != nil {
		return domain.Snapshot{}, nil, err
	}

	if err := fn(roomState); err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			return domain.Snapshot{}, nil, ErrLinkNotFound
		}

		return domain.Snapshot{}, nil, err
	}

	if err := s.roomRepo.SetRoom(ctx, roomState); err != nil {
		return domain.Snapshot{}, nil, fmt.Errorf("failed to set room: %w", err)
	}

	return roomState.Snapshot(), s.connRepo.GetConnsByRoomId(roomId), nil
}
