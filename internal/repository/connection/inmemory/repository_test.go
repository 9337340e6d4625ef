package inmemory

import (
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkroom/server/internal/repository/connection"
)

func TestAddRemove(t *testing.T) {
	repo := NewRepo()
	conn := &websocket.Conn{}

	require.NoError(t, repo.Add(conn, "session-1", "room-a"))
	assert.ErrorIs(t, repo.Add(conn, "session-2", "room-a"), connection.ErrAlreadyExists)
	assert.ErrorIs(t, repo.Add(&websocket.Conn{}, "session-1", "room-a"), connection.ErrAlreadyExists)

	require.NoError(t, repo.RemoveByConn(conn))
	// removal is idempotent at the caller level: a second remove reports
	// not found instead of failing loudly
	assert.ErrorIs(t, repo.RemoveByConn(conn), connection.ErrNotFound)

	// the freed session id can be bound again
	require.NoError(t, repo.Add(&websocket.Conn{}, "session-1", "room-a"))
}

func TestGetConnsByRoomId(t *testing.T) {
	repo := NewRepo()
	conn1 := &websocket.Conn{}
	conn2 := &websocket.Conn{}
	conn3 := &websocket.Conn{}

	require.NoError(t, repo.Add(conn1, "session-1", "room-a"))
	require.NoError(t, repo.Add(conn2, "session-2", "room-a"))
	require.NoError(t, repo.Add(conn3, "session-3", "room-b"))

	// compare by pointer identity: zero-value conns are deep-equal, so
	// ElementsMatch would pass even for conns from the wrong room
	roomA := repo.GetConnsByRoomId("room-a")
	setA := make(map[*websocket.Conn]bool, len(roomA))
	for _, c := range roomA {
		setA[c] = true
	}
	assert.Len(t, roomA, 2)
	assert.True(t, setA[conn1])
	assert.True(t, setA[conn2])
	assert.False(t, setA[conn3])

	roomB := repo.GetConnsByRoomId("room-b")
	require.Len(t, roomB, 1)
	assert.Same(t, conn3, roomB[0])
	assert.Empty(t, repo.GetConnsByRoomId("room-c"))
}
