package searchlog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const DefaultStream = "careerpath:searches"

type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisStore appends records to a redis stream.
type RedisStore struct {
	rdb    streamAdder
	stream string
}

func NewRedisStore(rdb redis.Cmdable, stream string) *RedisStore {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisStore{
		rdb:    rdb,
		stream: stream,
	}
}

func (s *RedisStore) Save(ctx context.Context, r Record) error {
	payloadJSON, err := json.Marshal(r)
	if err != nil {
		return err
	}

	res, err := s.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		ID:     "*",
		Values: map[string]any{
			"id":      r.ID,
			"payload": string(payloadJSON),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to append search to stream '%s': %w", s.stream, err)
	}

	slog.Debug("appended search to stream", "stream", s.stream, "entry", res)
	return nil
}
