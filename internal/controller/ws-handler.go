package controller

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/linkroom/server/internal/service/room"
	"github.com/linkroom/server/pkg/ctxlogger"
	"github.com/linkroom/server/pkg/wsrouter"
)

// ws binds the connection to the room named in the url and serves its
// command loop. An unknown room id is still accepted: the client gets one
// error message before the connection closes.
func (c *controller) ws(w http.ResponseWriter, r *http.Request) {
	roomId := chi.URLParam(r, "room-id")

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}

	lock := c.lockRoom(roomId)
	lock.Lock()
	connectResp, err := c.roomService.ConnectSession(r.Context(), &room.ConnectSessionParams{
		Conn:   conn,
		RoomId: roomId,
	})
	if err != nil {
		lock.Unlock()
		c.logger.InfoContext(r.Context(), "failed to connect session", "error", err)
		c.writeError(r.Context(), conn, err)
		conn.Close()
		c.forgetConn(conn)
		return
	}

	ctx := ctxlogger.AppendCtx(r.Context(),
		slog.String("room_id", roomId),
		slog.String("session_id", connectResp.SessionId),
	)
	ctx = context.WithValue(ctx, roomIdCtxKey, roomId)

	// the freshly bound session gets the current state inside the room's
	// ordering section, before any later mutation's broadcast
	initErr := c.writeJSON(conn, &Output{Status: statusOk, Data: connectResp.Room})
	lock.Unlock()

	defer c.disconnect(ctx, conn)

	if initErr != nil {
		c.logger.WarnContext(ctx, "failed to write initial state", "error", initErr)
		return
	}

	if err := c.wsmux.ServeConn(ctx, conn); err != nil {
		c.logger.InfoContext(ctx, "session closed", "error", err)
	}
}

func (c *controller) disconnect(ctx context.Context, conn *websocket.Conn) {
	if err := c.roomService.DisconnectSession(conn); err != nil {
		c.logger.WarnContext(ctx, "failed to disconnect session", "error", err)
	}
	c.forgetConn(conn)
}

// decode unmarshals the raw command into input and validates it.
func (c *controller) decode(payload json.RawMessage, input any) error {
	if err := json.Unmarshal(payload, input); err != nil {
		return wsrouter.ErrMalformedMessage
	}

	if validationErrors, ok := c.validate.Validate(input); !ok {
		return validationErrors[0]
	}

	return nil
}

func (c *controller) handleStopPlayback(ctx context.Context, conn *websocket.Conn, _ json.RawMessage) error {
	stopResp, err := c.roomService.StopPlayback(ctx, &room.StopPlaybackParams{
		RoomId: c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return err
	}

	c.broadcastState(ctx, stopResp.Conns, stopResp.Room)
	return nil
}

type MessageInput struct {
	Message string `json:"message" validate:"required"`
}

func (c *controller) handleMessage(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input MessageInput
	if err := c.decode(payload, &input); err != nil {
		return err
	}

	messageResp, err := c.roomService.AppendMessage(ctx, &room.AppendMessageParams{
		RoomId:  c.getRoomIdFromCtx(ctx),
		Message: input.Message,
	})
	if err != nil {
		return err
	}

	c.broadcastState(ctx, messageResp.Conns, messageResp.Room)
	return nil
}

type PlayLinkInput struct {
	Url string `json:"url" validate:"required"`
}

func (c *controller) handlePlayLink(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input PlayLinkInput
	if err := c.decode(payload, &input); err != nil {
		return err
	}

	selectResp, err := c.roomService.SelectLinkByUrl(ctx, &room.SelectLinkByUrlParams{
		RoomId: c.getRoomIdFromCtx(ctx),
		Url:    input.Url,
	})
	if err != nil {
		return err
	}

	c.broadcastState(ctx, selectResp.Conns, selectResp.Room)
	return nil
}

type SelectLinkInput struct {
	Id string `json:"id" validate:"required"`
}

func (c *controller) handleSelectLink(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input SelectLinkInput
	if err := c.decode(payload, &input); err != nil {
		return err
	}

	selectResp, err := c.roomService.SelectLink(ctx, &room.SelectLinkParams{
		RoomId: c.getRoomIdFromCtx(ctx),
		LinkId: input.Id,
	})
	if err != nil {
		return err
	}

	c.broadcastState(ctx, selectResp.Conns, selectResp.Room)
	return nil
}

type AddLinkInput struct {
	Url string `json:"url" validate:"required"`
}

func (c *controller) handleAddLink(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input AddLinkInput
	if err := c.decode(payload, &input); err != nil {
		return err
	}

	addLinkResp, err := c.roomService.AddLink(ctx, &room.AddLinkParams{
		RoomId: c.getRoomIdFromCtx(ctx),
		Url:    input.Url,
	})
	if err != nil {
		return err
	}

	c.broadcastState(ctx, addLinkResp.Conns, addLinkResp.Room)
	return nil
}

type DeleteLinkInput struct {
	Id string `json:"id" validate:"required"`
}

func (c *controller) handleDeleteLink(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input DeleteLinkInput
	if err := c.decode(payload, &input); err != nil {
		return err
	}

	removeResp, err := c.roomService.RemoveLink(ctx, &room.RemoveLinkParams{
		RoomId: c.getRoomIdFromCtx(ctx),
		LinkId: input.Id,
	})
	if err != nil {
		return err
	}

	c.broadcastState(ctx, removeResp.Conns, removeResp.Room)
	return nil
}

func (c *controller) handleAdvanceLink(ctx context.Context, conn *websocket.Conn, _ json.RawMessage) error {
	advanceResp, err := c.roomService.AdvanceLink(ctx, &room.AdvanceLinkParams{
		RoomId: c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return err
	}

	c.broadcastState(ctx, advanceResp.Conns, advanceResp.Room)
	return nil
}

func (c *controller) handlePlay(ctx context.Context, conn *websocket.Conn, _ json.RawMessage) error {
	playResp, err := c.roomService.Play(ctx, &room.PlayParams{
		RoomId: c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return err
	}

	c.broadcastState(ctx, playResp.Conns, playResp.Room)
	return nil
}

type PauseInput struct {
	Time *float64 `json:"time" validate:"required"`
}

func (c *controller) handlePause(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input PauseInput
	if err := c.decode(payload, &input); err != nil {
		return err
	}

	pauseResp, err := c.roomService.Pause(ctx, &room.PauseParams{
		RoomId: c.getRoomIdFromCtx(ctx),
		Time:   *input.Time,
	})
	if err != nil {
		return err
	}

	c.broadcastState(ctx, pauseResp.Conns, pauseResp.Room)
	return nil
}

type SeekInput struct {
	Time *float64 `json:"time" validate:"required"`
}

func (c *controller) handleSeek(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input SeekInput
	if err := c.decode(payload, &input); err != nil {
		return err
	}

	seekResp, err := c.roomService.Seek(ctx, &room.SeekParams{
		RoomId: c.getRoomIdFromCtx(ctx),
		Time:   *input.Time,
	})
	if err != nil {
		return err
	}

	c.broadcastState(ctx, seekResp.Conns, seekResp.Room)
	return nil
}
