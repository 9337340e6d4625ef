package room

import (
	"context"

	"github.com/gorilla/websocket"

	"github.com/linkroom/server/internal/domain"
)

type PlayParams struct {
	RoomId string
}

type PlayResponse struct {
	Room  domain.Snapshot
	Conns []*websocket.Conn
}

func (s *service) Play(ctx context.Context, params *PlayParams) (PlayResponse, error) {
	snapshot, conns, err := s.mutate(ctx, params.RoomId, func(r *domain.Room) error {
		r.SetPlaying(true)
		return nil
	})
	if err != nil {
		return PlayResponse{}, err
	}

	return PlayResponse{
		Room:  snapshot,
		Conns: conns,
	}, nil
}

type PauseParams struct {
	RoomId string
	Time   float64
}

type PauseResponse struct {
	Room  domain.Snapshot
	Conns []*websocket.Conn
}

func (s *service) Pause(ctx context.Context, params *PauseParams) (PauseResponse, error) {
	snapshot, conns, err := s.mutate(ctx, params.RoomId, func(r *domain.Room) error {
		r.SetCurrentTime(params.Time)
		r.SetPlaying(false)
		return nil
	})
	if err != nil {
		return PauseResponse{}, err
	}

	return PauseResponse{
		Room:  snapshot,
		Conns: conns,
	}, nil
}

type SeekParams struct {
	RoomId string
	Time   float64
}

type SeekResponse struct {
	Room  domain.Snapshot
	Conns []*websocket.Conn
}

// Seek stores the reported position without touching the play flag.
func (s *service) Seek(ctx context.Context, params *SeekParams) (SeekResponse, error) {
	snapshot, conns, err := s.mutate(ctx, params.RoomId, func(r *domain.Room) error {
		r.SetCurrentTime(params.Time)
		return nil
	})
	if err != nil {
		return SeekResponse{}, err
	}

	return SeekResponse{
		Room:  snapshot,
		Conns: conns,
	}, nil
}

type StopPlaybackParams struct {
	RoomId string
}

type StopPlaybackResponse struct {
	Room  domain.Snapshot
	Conns []*websocket.Conn
}

// StopPlayback backs the get_room and refresh commands, which both force
// the room into the paused state.
func (s *service) StopPlayback(ctx context.Context, params *StopPlaybackParams) (StopPlaybackResponse, error) {
	snapshot, conns, err := s.mutate(ctx, params.RoomId, func(r *domain.Room) error {
		r.SetPlaying(false)
		return nil
	})
	if err != nil {
		return StopPlaybackResponse{}, err
	}

	return StopPlaybackResponse{
		Room:  snapshot,
		Conns: conns,
	}, nil
}
