package room

import (
	"context"

	"github.com/gorilla/websocket"

	"github.com/linkroom/server/internal/domain"
)

type AppendMessageParams struct {
	RoomId  string
	Message string
}

type AppendMessageResponse struct {
	Room  domain.Snapshot
	Conns []*websocket.Conn
}

// AppendMessage adds a chat entry. The log is append-only and uncapped.
func (s *service) AppendMessage(ctx context.Context, params *AppendMessageParams) (AppendMessageResponse, error) {
	snapshot, conns, err := s.mutate(ctx, params.RoomId, func(r *domain.Room) error {
		r.AppendMessage(params.Message)
		return nil
	})
	if err != nil {
		return AppendMessageResponse{}, err
	}

	return AppendMessageResponse{
		Room:  snapshot,
		Conns: conns,
	}, nil
}
