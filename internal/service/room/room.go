package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/linkroom/server/internal/domain"
	"github.com/linkroom/server/internal/repository/connection"
)

type CreateRoomResponse struct {
	RoomId string
	Room   domain.Snapshot
}

func (s *service) CreateRoom(ctx context.Context) (CreateRoomResponse, error) {
	roomState := domain.NewRoom()
	if err := s.roomRepo.SetRoom(ctx, roomState); err != nil {
		return CreateRoomResponse{}, fmt.Errorf("failed to set room: %w", err)
	}

	return CreateRoomResponse{
		RoomId: roomState.Id,
		Room:   roomState.Snapshot(),
	}, nil
}

func (s *service) GetRooms(ctx context.Context) ([]domain.Snapshot, error) {
	roomIds, err := s.roomRepo.GetRoomIds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get room ids: %w", err)
	}

	rooms := make([]domain.Snapshot, 0, len(roomIds))
	for _, roomId := range roomIds {
		roomState, err := s.getRoom(ctx, roomId)
		if err != nil {
			// a room can expire between enumeration and lookup
			if errors.Is(err, ErrRoomNotFound) {
				continue
			}

			return nil, err
		}

		rooms = append(rooms, roomState.Snapshot())
	}

	return rooms, nil
}

func (s *service) GetRoomState(ctx context.Context, roomId string) (domain.Snapshot, error) {
	roomState, err := s.getRoom(ctx, roomId)
	if err != nil {
		return domain.Snapshot{}, err
	}

	return roomState.Snapshot(), nil
}

type ConnectSessionParams struct {
	Conn   *websocket.Conn
	RoomId string
}

type ConnectSessionResponse struct {
	SessionId string
	Room      domain.Snapshot
}

func (s *service) ConnectSession(ctx context.Context, params *ConnectSessionParams) (ConnectSessionResponse, error) {
	roomState, err := s.getRoom(ctx, params.RoomId)
	if err != nil {
		return ConnectSessionResponse{}, err
	}

	sessionId := uuid.NewString()
	if err := s.connRepo.Add(params.Conn, sessionId, params.RoomId); err != nil {
		return ConnectSessionResponse{}, fmt.Errorf("failed to add connection: %w", err)
	}

	return ConnectSessionResponse{
		SessionId: sessionId,
		Room:      roomState.Snapshot(),
	}, nil
}

// DisconnectSession unregisters the session. Safe to call more than once;
// a session already gone is not an error.
func (s *service) DisconnectSession(conn *websocket.Conn) error {
	if err := s.connRepo.RemoveByConn(conn); err != nil {
		if errors.Is(err, connection.ErrNotFound) {
			return nil
		}

		return fmt.Errorf("failed to remove connection: %w", err)
	}

	return nil
}
