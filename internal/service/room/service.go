package room

import (
	"context"
	"errors"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/linkroom/server/internal/domain"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrLinkNotFound = errors.New("link not found")
)

type iRoomRepo interface {
	SetRoom(context.Context, *domain.Room) error
	GetRoom(context.Context, string) (*domain.Room, error)
	GetRoomIds(context.Context) ([]string, error)
}

type iConnRepo interface {
	Add(conn *websocket.Conn, sessionId, roomId string) error
	RemoveByConn(conn *websocket.Conn) error
	GetConnsByRoomId(roomId string) []*websocket.Conn
}

type service struct {
	roomRepo iRoomRepo
	connRepo iConnRepo

	roomLocks map[string]*sync.Mutex
	mu        sync.Mutex
}

func NewService(roomRepo iRoomRepo, connRepo iConnRepo) *service {
	return &service{
		roomRepo:  roomRepo,
		connRepo:  connRepo,
		roomLocks: make(map[string]*sync.Mutex),
	}
}

// lockRoom returns the mutex serializing all mutations of one room. Locks
// accumulate with rooms; rooms are never deleted, so neither are locks.
func (s *service) lockRoom(roomId string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.roomLocks[roomId]
	if !ok {
		lock = &sync.Mutex{}
		s.roomLocks[roomId] = lock
	}

	return lock
}
