package room

import (
	"context"

	"github.com/gorilla/websocket"

	"github.com/linkroom/server/internal/domain"
)

type AddLinkParams struct {
	RoomId string
	Url    string
}

type AddLinkResponse struct {
	AddedLink domain.Link
	Room      domain.Snapshot
	Conns     []*websocket.Conn
}

func (s *service) AddLink(ctx context.Context, params *AddLinkParams) (AddLinkResponse, error) {
	var addedLink domain.Link
	snapshot, conns, err := s.mutate(ctx, params.RoomId, func(r *domain.Room) error {
		addedLink = r.AddLink(params.Url)
		return nil
	})
	if err != nil {
		return AddLinkResponse{}, err
	}

	return AddLinkResponse{
		AddedLink: addedLink,
		Room:      snapshot,
		Conns:     conns,
	}, nil
}

type RemoveLinkParams struct {
	RoomId string
	LinkId string
}

type RemoveLinkResponse struct {
	Room  domain.Snapshot
	Conns []*websocket.Conn
}

func (s *service) RemoveLink(ctx context.Context, params *RemoveLinkParams) (RemoveLinkResponse, error) {
	snapshot, conns, err := s.mutate(ctx, params.RoomId, func(r *domain.Room) error {
		return r.RemoveLink(params.LinkId)
	})
	if err != nil {
		return RemoveLinkResponse{}, err
	}

	return RemoveLinkResponse{
		Room:  snapshot,
		Conns: conns,
	}, nil
}

type SelectLinkParams struct {
	RoomId string
	LinkId string
}

type SelectLinkResponse struct {
	Room  domain.Snapshot
	Conns []*websocket.Conn
}

func (s *service) SelectLink(ctx context.Context, params *SelectLinkParams) (SelectLinkResponse, error) {
	snapshot, conns, err := s.mutate(ctx, params.RoomId, func(r *domain.Room) error {
		return r.SelectLink(params.LinkId)
	})
	if err != nil {
		return SelectLinkResponse{}, err
	}

	return SelectLinkResponse{
		Room:  snapshot,
		Conns: conns,
	}, nil
}

type SelectLinkByUrlParams struct {
	RoomId string
	Url    string
}

func (s *service) SelectLinkByUrl(ctx context.Context, params *SelectLinkByUrlParams) (SelectLinkResponse, error) {
	snapshot, conns, err := s.mutate(ctx, params.RoomId, func(r *domain.Room) error {
		return r.SelectLinkByUrl(params.Url)
	})
	if err != nil {
		return SelectLinkResponse{}, err
	}

	return SelectLinkResponse{
		Room:  snapshot,
		Conns: conns,
	}, nil
}

type AdvanceLinkParams struct {
	RoomId string
}

type AdvanceLinkResponse struct {
	Room  domain.Snapshot
	Conns []*websocket.Conn
}

func (s *service) AdvanceLink(ctx context.Context, params *AdvanceLinkParams) (AdvanceLinkResponse, error) {
	snapshot, conns, err := s.mutate(ctx, params.RoomId, func(r *domain.Room) error {
		r.AdvanceLink()
		return nil
	})
	if err != nil {
		return AdvanceLinkResponse{}, err
	}

	return AdvanceLinkResponse{
		Room:  snapshot,
		Conns: conns,
	}, nil
}
