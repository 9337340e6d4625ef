package controller

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/linkroom/server/internal/domain"
	"github.com/linkroom/server/internal/service/room"
	"github.com/linkroom/server/pkg/validator"
	"github.com/linkroom/server/pkg/wsrouter"
)

type iRoomService interface {
	CreateRoom(context.Context) (room.CreateRoomResponse, error)
	GetRooms(context.Context) ([]domain.Snapshot, error)
	ConnectSession(context.Context, *room.ConnectSessionParams) (room.ConnectSessionResponse, error)
	DisconnectSession(*websocket.Conn) error
	AddLink(context.Context, *room.AddLinkParams) (room.AddLinkResponse, error)
	RemoveLink(context.Context, *room.RemoveLinkParams) (room.RemoveLinkResponse, error)
	SelectLink(context.Context, *room.SelectLinkParams) (room.SelectLinkResponse, error)
	SelectLinkByUrl(context.Context, *room.SelectLinkByUrlParams) (room.SelectLinkResponse, error)
	AdvanceLink(context.Context, *room.AdvanceLinkParams) (room.AdvanceLinkResponse, error)
	Play(context.Context, *room.PlayParams) (room.PlayResponse, error)
	Pause(context.Context, *room.PauseParams) (room.PauseResponse, error)
	Seek(context.Context, *room.SeekParams) (room.SeekResponse, error)
	StopPlayback(context.Context, *room.StopPlaybackParams) (room.StopPlaybackResponse, error)
	AppendMessage(context.Context, *room.AppendMessageParams) (room.AppendMessageResponse, error)
}

type controller struct {
	roomService iRoomService
	upgrader    websocket.Upgrader
	validate    *validator.Validator
	wsmux       *wsrouter.WSRouter
	logger      *slog.Logger

	// per-room ordering locks; a command's mutation and its broadcast
	// fan-out form one critical section, so every session observes room
	// snapshots in mutation order
	roomLocks   map[string]*sync.Mutex
	roomLocksMu sync.Mutex

	// per-conn write locks; error notifications can interleave with
	// broadcasts and gorilla conns allow one concurrent writer
	connLocks sync.Map
}

func NewController(roomService iRoomService, logger *slog.Logger) *controller {
	c := &controller{
		roomService: roomService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		validate:  validator.NewValidator(),
		logger:    logger,
		roomLocks: make(map[string]*sync.Mutex),
	}
	c.wsmux = c.getWSRouter()

	return c
}

// lockRoom returns the mutex ordering state delivery for one room. Locks
// accumulate with rooms; rooms are never deleted, so neither are locks.
func (c *controller) lockRoom(roomId string) *sync.Mutex {
	c.roomLocksMu.Lock()
	defer c.roomLocksMu.Unlock()

	lock, ok := c.roomLocks[roomId]
	if !ok {
		lock = &sync.Mutex{}
		c.roomLocks[roomId] = lock
	}

	return lock
}
