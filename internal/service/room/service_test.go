package room

import (
	"context"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	connInmemory "github.com/linkroom/server/internal/repository/connection/inmemory"
	roomInmemory "github.com/linkroom/server/internal/repository/room/inmemory"
)

func newTestService() *service {
	return NewService(roomInmemory.NewRepo(), connInmemory.NewRepo())
}

func TestCreateRoom(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	createRoomResp, err := service.CreateRoom(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, createRoomResp.RoomId, "room id is empty")
	assert.Empty(t, createRoomResp.Room.Links)
	assert.Equal(t, "", createRoomResp.Room.CurrentLink)
	assert.False(t, createRoomResp.Room.Playing)

	roomState, err := service.GetRoomState(ctx, createRoomResp.RoomId)
	require.NoError(t, err)
	assert.Equal(t, createRoomResp.RoomId, roomState.Id)

	_, err = service.GetRoomState(ctx, "missing")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestGetRooms(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	rooms, err := service.GetRooms(ctx)
	require.NoError(t, err)
	assert.Empty(t, rooms)

	room1, err := service.CreateRoom(ctx)
	require.NoError(t, err)
	room2, err := service.CreateRoom(ctx)
	require.NoError(t, err)

	rooms, err = service.GetRooms(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.Id)
	}
	assert.ElementsMatch(t, []string{room1.RoomId, room2.RoomId}, ids)
}

func TestConnectSession(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	createRoomResp, err := service.CreateRoom(ctx)
	require.NoError(t, err)

	conn := &websocket.Conn{}
	connectResp, err := service.ConnectSession(ctx, &ConnectSessionParams{
		Conn:   conn,
		RoomId: createRoomResp.RoomId,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, connectResp.SessionId, "session id is empty")
	assert.Equal(t, createRoomResp.RoomId, connectResp.Room.Id)

	_, err = service.ConnectSession(ctx, &ConnectSessionParams{
		Conn:   &websocket.Conn{},
		RoomId: "missing",
	})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	require.NoError(t, service.DisconnectSession(conn))
	// disconnect is idempotent
	require.NoError(t, service.DisconnectSession(conn))
}

func TestLinkFlow(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	createRoomResp, err := service.CreateRoom(ctx)
	require.NoError(t, err)
	roomId := createRoomResp.RoomId

	addLinkResp, err := service.AddLink(ctx, &AddLinkParams{RoomId: roomId, Url: "url-1"})
	require.NoError(t, err)
	assert.Equal(t, "url-1", addLinkResp.AddedLink.Url)
	assert.NotEmpty(t, addLinkResp.AddedLink.Id)
	assert.Equal(t, "url-1", addLinkResp.Room.CurrentLink)

	addLinkResp2, err := service.AddLink(ctx, &AddLinkParams{RoomId: roomId, Url: "url-2"})
	require.NoError(t, err)
	assert.Equal(t, 2, len(addLinkResp2.Room.Links))
	assert.Equal(t, "url-1", addLinkResp2.Room.CurrentLink)

	playResp, err := service.Play(ctx, &PlayParams{RoomId: roomId})
	require.NoError(t, err)
	assert.True(t, playResp.Room.Playing)

	selectResp, err := service.SelectLink(ctx, &SelectLinkParams{RoomId: roomId, LinkId: addLinkResp2.AddedLink.Id})
	require.NoError(t, err)
	assert.Equal(t, "url-2", selectResp.Room.CurrentLink)
	assert.Equal(t, float64(0), selectResp.Room.CurrentTime)
	assert.False(t, selectResp.Room.Playing)

	_, err = service.SelectLink(ctx, &SelectLinkParams{RoomId: roomId, LinkId: "missing"})
	assert.ErrorIs(t, err, ErrLinkNotFound)

	// failed select left the room untouched
	roomState, err := service.GetRoomState(ctx, roomId)
	require.NoError(t, err)
	assert.Equal(t, "url-2", roomState.CurrentLink)

	byUrlResp, err := service.SelectLinkByUrl(ctx, &SelectLinkByUrlParams{RoomId: roomId, Url: "url-1"})
	require.NoError(t, err)
	assert.Equal(t, "url-1", byUrlResp.Room.CurrentLink)

	advanceResp, err := service.AdvanceLink(ctx, &AdvanceLinkParams{RoomId: roomId})
	require.NoError(t, err)
	assert.Equal(t, "url-2", advanceResp.Room.CurrentLink)

	removeResp, err := service.RemoveLink(ctx, &RemoveLinkParams{RoomId: roomId, LinkId: addLinkResp2.AddedLink.Id})
	require.NoError(t, err)
	assert.Equal(t, 1, len(removeResp.Room.Links))
	assert.Equal(t, "url-1", removeResp.Room.CurrentLink)

	_, err = service.RemoveLink(ctx, &RemoveLinkParams{RoomId: roomId, LinkId: "missing"})
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestPlayback(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	createRoomResp, err := service.CreateRoom(ctx)
	require.NoError(t, err)
	roomId := createRoomResp.RoomId

	_, err = service.AddLink(ctx, &AddLinkParams{RoomId: roomId, Url: "url-1"})
	require.NoError(t, err)

	playResp, err := service.Play(ctx, &PlayParams{RoomId: roomId})
	require.NoError(t, err)
	assert.True(t, playResp.Room.Playing)

	seekResp, err := service.Seek(ctx, &SeekParams{RoomId: roomId, Time: 12})
	require.NoError(t, err)
	assert.Equal(t, float64(12), seekResp.Room.CurrentTime)
	// seek leaves the play flag alone
	assert.True(t, seekResp.Room.Playing)

	pauseResp, err := service.Pause(ctx, &PauseParams{RoomId: roomId, Time: 17})
	require.NoError(t, err)
	assert.Equal(t, float64(17), pauseResp.Room.CurrentTime)
	assert.False(t, pauseResp.Room.Playing)

	_, err = service.Play(ctx, &PlayParams{RoomId: roomId})
	require.NoError(t, err)

	stopResp, err := service.StopPlayback(ctx, &StopPlaybackParams{RoomId: roomId})
	require.NoError(t, err)
	assert.False(t, stopResp.Room.Playing)
	assert.Equal(t, float64(17), stopResp.Room.CurrentTime)
}

func TestAppendMessage(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	createRoomResp, err := service.CreateRoom(ctx)
	require.NoError(t, err)

	messageResp, err := service.AppendMessage(ctx, &AppendMessageParams{
		RoomId:  createRoomResp.RoomId,
		Message: "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, messageResp.Room.Messages)

	messageResp, err = service.AppendMessage(ctx, &AppendMessageParams{
		RoomId:  createRoomResp.RoomId,
		Message: "world",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "world"}, messageResp.Room.Messages)
}

func TestBroadcastScopedToRoom(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	roomA, err := service.CreateRoom(ctx)
	require.NoError(t, err)
	roomB, err := service.CreateRoom(ctx)
	require.NoError(t, err)

	conn1 := &websocket.Conn{}
	conn2 := &websocket.Conn{}
	conn3 := &websocket.Conn{}
	_, err = service.ConnectSession(ctx, &ConnectSessionParams{Conn: conn1, RoomId: roomA.RoomId})
	require.NoError(t, err)
	_, err = service.ConnectSession(ctx, &ConnectSessionParams{Conn: conn2, RoomId: roomA.RoomId})
	require.NoError(t, err)
	_, err = service.ConnectSession(ctx, &ConnectSessionParams{Conn: conn3, RoomId: roomB.RoomId})
	require.NoError(t, err)

	addLinkResp, err := service.AddLink(ctx, &AddLinkParams{RoomId: roomA.RoomId, Url: "url-1"})
	require.NoError(t, err)
	// compare by pointer identity: zero-value conns are deep-equal, so
	// testify's ElementsMatch/NotContains cannot discriminate them
	set := make(map[*websocket.Conn]bool, len(addLinkResp.Conns))
	for _, c := range addLinkResp.Conns {
		set[c] = true
	}
	assert.Len(t, addLinkResp.Conns, 2)
	assert.True(t, set[conn1])
	assert.True(t, set[conn2])
	assert.False(t, set[conn3])
}

func TestConcurrentAddLink(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	createRoomResp, err := service.CreateRoom(ctx)
	require.NoError(t, err)
	roomId := createRoomResp.RoomId

	var wg sync.WaitGroup
	for _, url := range []string{"url-1", "url-2"} {
		url := url
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.AddLink(ctx, &AddLinkParams{RoomId: roomId, Url: url})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	roomState, err := service.GetRoomState(ctx, roomId)
	require.NoError(t, err)
	require.Equal(t, 2, len(roomState.Links))

	urls := []string{roomState.Links[0].Url, roomState.Links[1].Url}
	assert.ElementsMatch(t, []string{"url-1", "url-2"}, urls)
	// exactly one link carries the playing marker and it is the selected one
	assert.True(t, roomState.Links[0].IsPlaying)
	assert.False(t, roomState.Links[1].IsPlaying)
	assert.Equal(t, roomState.Links[0].Url, roomState.CurrentLink)
}
