package inmemory

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/linkroom/server/internal/repository/connection"
)

type session struct {
	id     string
	roomId string
}

// repo maps live websocket connections to the session each one carries.
// The connection's lifetime is owned by the controller; the repo only
// tracks membership.
type repo struct {
	connList map[*websocket.Conn]session
	idList   map[string]*websocket.Conn
	mu       sync.RWMutex
}

func NewRepo() *repo {
	return &repo{
		connList: make(map[*websocket.Conn]session),
		idList:   make(map[string]*websocket.Conn),
	}
}

func (r *repo) Add(conn *websocket.Conn, sessionId, roomId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.connList[conn]; ok {
		return connection.ErrAlreadyExists
	}
	if _, ok := r.idList[sessionId]; ok {
		return connection.ErrAlreadyExists
	}

	r.connList[conn] = session{id: sessionId, roomId: roomId}
	r.idList[sessionId] = conn

	return nil
}

func (r *repo) RemoveByConn(conn *websocket.Conn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.connList[conn]
	if !ok {
		return connection.ErrNotFound
	}

	delete(r.connList, conn)
	delete(r.idList, sess.id)

	return nil
}

func (r *repo) GetConnsByRoomId(roomId string) []*websocket.Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]*websocket.Conn, 0)
	for conn, sess := range r.connList {
		if sess.roomId == roomId {
			conns = append(conns, conn)
		}
	}

	return conns
}
