package controller

import (
	"context"

	"github.com/gorilla/websocket"

	"github.com/linkroom/server/pkg/wsrouter"
)

func (c *controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()

	// playback
	mux.Handle("play", c.roomOrderMw(c.handlePlay))
	mux.Handle("pause", c.roomOrderMw(c.handlePause))
	mux.Handle("seek", c.roomOrderMw(c.handleSeek))
	mux.Handle("get_room", c.roomOrderMw(c.handleStopPlayback))
	mux.Handle("refresh", c.roomOrderMw(c.handleStopPlayback))

	// playlist
	mux.Handle("add_link", c.roomOrderMw(c.handleAddLink))
	mux.Handle("delete_link", c.roomOrderMw(c.handleDeleteLink))
	mux.Handle("remove_link", c.roomOrderMw(c.handleDeleteLink))
	mux.Handle("play_link", c.roomOrderMw(c.handlePlayLink))
	mux.Handle("select_link", c.roomOrderMw(c.handleSelectLink))
	mux.Handle("next", c.roomOrderMw(c.handleAdvanceLink))
	mux.Handle("end", c.roomOrderMw(c.handleAdvanceLink))

	// chat
	mux.Handle("message", c.roomOrderMw(c.handleMessage))

	mux.OnError(func(ctx context.Context, conn *websocket.Conn, err error) {
		c.logger.InfoContext(ctx, "command failed",
			"message_type", wsrouter.GetMessageTypeFromCtx(ctx),
			"error", err,
		)
		c.writeError(ctx, conn, err)
	})

	return mux
}
