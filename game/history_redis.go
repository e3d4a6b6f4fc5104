package game

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
)

// RedisHandTracker keeps hand history in redis, one JSON value per hand.
type RedisHandTracker struct {
	rdclient *redis.Client
}

func NewRedisHandTracker(redisHost string, redisPort int, redisPW string, redisDB int) *RedisHandTracker {
	rdclient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", redisHost, redisPort),
		Password: redisPW,
		DB:       redisDB,
	})
	return &RedisHandTracker{
		rdclient: rdclient,
	}
}

func (r *RedisHandTracker) Save(record *HandRecord) error {
	data, err := jsoniter.Marshal(record)
	if err != nil {
		return err
	}
	key := historyKey(record.SessionID, record.HandNum)
	return r.rdclient.Set(context.Background(), key, data, 0).Err()
}

func (r *RedisHandTracker) Load(sessionID string, handNum uint32) (*HandRecord, error) {
	key := historyKey(sessionID, handNum)
	data, err := r.rdclient.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("Hand record for Session: %s, Hand: %d is not found", sessionID, handNum)
	} else if err != nil {
		return nil, err
	}
	record := &HandRecord{}
	if err := jsoniter.Unmarshal([]byte(data), record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *RedisHandTracker) Remove(sessionID string, handNum uint32) error {
	key := historyKey(sessionID, handNum)
	return r.rdclient.Del(context.Background(), key).Err()
}
