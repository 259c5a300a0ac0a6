package game

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// RedisHandStateTracker stores hand snapshots in Redis so they survive a
// server restart.
type RedisHandStateTracker struct {
	rdclient *redis.Client
}

func NewRedisHandStateTracker(redisURL string, redisPW string, redisDB int) *RedisHandStateTracker {
	rdclient := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: redisPW,
		DB:       redisDB,
	})
	return &RedisHandStateTracker{rdclient: rdclient}
}

func (r *RedisHandStateTracker) key(roomID string) string {
	return fmt.Sprintf("handstate:%s", roomID)
}

func (r *RedisHandStateTracker) Save(roomID string, snap *HandSnapshot) error {
	b, err := jsoniter.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "Error marshalling hand snapshot")
	}
	err = r.rdclient.Set(context.Background(), r.key(roomID), b, 0).Err()
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("Error saving hand snapshot for room [%s]", roomID))
	}
	return nil
}

func (r *RedisHandStateTracker) Load(roomID string) (*HandSnapshot, error) {
	b, err := r.rdclient.Get(context.Background(), r.key(roomID)).Bytes()
	if err == redis.Nil {
		return nil, errors.Errorf("No hand snapshot found for room [%s]", roomID)
	} else if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Error loading hand snapshot for room [%s]", roomID))
	}
	snap := &HandSnapshot{}
	if err := jsoniter.Unmarshal(b, snap); err != nil {
		return nil, errors.Wrap(err, "Error unmarshalling hand snapshot")
	}
	return snap, nil
}

func (r *RedisHandStateTracker) Remove(roomID string) error {
	err := r.rdclient.Del(context.Background(), r.key(roomID)).Err()
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("Error removing hand snapshot for room [%s]", roomID))
	}
	return nil
}
