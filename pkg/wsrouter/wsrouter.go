// Package wsrouter dispatches inbound websocket JSON messages on their
// "type" field, one handler per message type. Handlers receive the raw
// message and decode their own fields.
package wsrouter

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gorilla/websocket"
)

var (
	ErrMalformedMessage = errors.New("malformed message")
	ErrMissingType      = errors.New("missing message type")
	ErrUnknownType      = errors.New("unknown message type")
)

type HandlerFunc func(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error

// ErrorFunc is invoked for protocol and handler errors. The loop keeps
// serving the connection afterwards; only transport errors end it.
type ErrorFunc func(ctx context.Context, conn *websocket.Conn, err error)

type WSRouter struct {
	routes  map[string]HandlerFunc
	onError ErrorFunc
}

func New() *WSRouter {
	return &WSRouter{
		routes:  make(map[string]HandlerFunc),
		onError: func(context.Context, *websocket.Conn, error) {},
	}
}

func (r *WSRouter) Handle(messageType string, handler HandlerFunc) {
	r.routes[messageType] = handler
}

func (r *WSRouter) OnError(fn ErrorFunc) {
	r.onError = fn
}

// ServeConn reads messages until the transport fails and returns the
// transport error. conn is closed on return.
func (r *WSRouter) ServeConn(ctx context.Context, conn *websocket.Conn) error {
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var msg struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &msg); err != nil {
			r.onError(ctx, conn, ErrMalformedMessage)
			continue
		}
		if msg.Type == "" {
			r.onError(ctx, conn, ErrMissingType)
			continue
		}

		handler, ok := r.routes[msg.Type]
		if !ok {
			r.onError(ctx, conn, ErrUnknownType)
			continue
		}

		msgCtx := context.WithValue(ctx, messageTypeKey, msg.Type)
		if err := handler(msgCtx, conn, data); err != nil {
			r.onError(msgCtx, conn, err)
		}
	}
}
