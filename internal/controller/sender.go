package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/linkroom/server/internal/domain"
	"github.com/linkroom/server/internal/service/room"
	"github.com/linkroom/server/pkg/validator"
	"github.com/linkroom/server/pkg/wsrouter"
)

const (
	statusOk    = "ok"
	statusError = "error"
)

type Output struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type ErrorOutput struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// writeJSON serializes writes to one connection.
func (c *controller) writeJSON(conn *websocket.Conn, v any) error {
	lockAny, _ := c.connLocks.LoadOrStore(conn, &sync.Mutex{})
	lock := lockAny.(*sync.Mutex)
	lock.Lock()
	defer lock.Unlock()

	return conn.WriteJSON(v)
}

func (c *controller) forgetConn(conn *websocket.Conn) {
	c.connLocks.Delete(conn)
}

// broadcastState fans the snapshot out to every conn bound to the room.
// A failed recipient is logged and skipped, the rest still get theirs.
func (c *controller) broadcastState(ctx context.Context, conns []*websocket.Conn, state domain.Snapshot) {
	out := Output{Status: statusOk, Data: state}
	for _, conn := range conns {
		if err := c.writeJSON(conn, &out); err != nil {
			c.logger.WarnContext(ctx, "failed to write to conn", "error", err)
		}
	}
}

func (c *controller) errorMessage(err error) string {
	var validationError validator.ValidationError

	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		return "Room not found"
	case errors.Is(err, room.ErrLinkNotFound):
		return "Link not found"
	case errors.Is(err, wsrouter.ErrMalformedMessage):
		return "Malformed message"
	case errors.Is(err, wsrouter.ErrMissingType):
		return "Missing message type"
	case errors.Is(err, wsrouter.ErrUnknownType):
		return "Unknown message type"
	case errors.As(err, &validationError):
		return validationError.Message
	default:
		return "Internal error"
	}
}

func (c *controller) writeError(ctx context.Context, conn *websocket.Conn, err error) {
	out := ErrorOutput{Status: statusError, Message: c.errorMessage(err)}
	if werr := c.writeJSON(conn, &out); werr != nil {
		c.logger.WarnContext(ctx, "failed to write error", "error", werr)
	}
}
