package controller

import (
	"net/http"

	"github.com/linkroom/server/pkg/rest"
)

func (c *controller) createRoom(w http.ResponseWriter, r *http.Request) {
	createRoomResp, err := c.roomService.CreateRoom(r.Context())
	if err != nil {
		c.logger.ErrorContext(r.Context(), "failed to create room", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"status": "error", "message": "Internal error"})
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"status": "ok", "room_id": createRoomResp.RoomId})
}

func (c *controller) getRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := c.roomService.GetRooms(r.Context())
	if err != nil {
		c.logger.ErrorContext(r.Context(), "failed to get rooms", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"status": "error", "message": "Internal error"})
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"status": "ok", "data": rooms})
}
