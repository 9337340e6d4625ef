package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linkroom/server/internal/domain"
	"github.com/linkroom/server/internal/repository/room"
)

const roomsKey = "rooms"

// repo stores each room as a JSON document under room:{id} with a TTL
// refreshed on every access, plus a set of known room ids for enumeration.
type repo struct {
	rc             *redis.Client
	expireDuration time.Duration
}

func NewRepo(rc *redis.Client, expireDuration time.Duration) *repo {
	return &repo{
		rc:             rc,
		expireDuration: expireDuration,
	}
}

func (r repo) getRoomKey(roomId string) string {
	return "room:" + roomId
}

func (r repo) SetRoom(ctx context.Context, roomState *domain.Room) error {
	data, err := json.Marshal(roomState)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	pipe := r.rc.TxPipeline()
	pipe.Set(ctx, r.getRoomKey(roomState.Id), data, r.expireDuration)
	pipe.SAdd(ctx, roomsKey, roomState.Id)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	return nil
}

func (r repo) GetRoom(ctx context.Context, roomId string) (*domain.Room, error) {
	roomKey := r.getRoomKey(roomId)
	data, err := r.rc.Get(ctx, roomKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, room.ErrRoomNotFound
		}

		return nil, err
	}

	var roomState domain.Room
	if err := json.Unmarshal(data, &roomState); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	r.rc.Expire(ctx, roomKey, r.expireDuration)

	return &roomState, nil
}

func (r repo) GetRoomIds(ctx context.Context) ([]string, error) {
	return r.rc.SMembers(ctx, roomsKey).Result()
}
