package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis key of the pending record.
const DefaultKey = "documind:handoff"

// Redis is a Slot shared between API replicas. Take uses GETDEL so only one
// reader receives the record.
type Redis struct {
	client *redisv9.Client
	key    string
	ttl    time.Duration
}

var _ Slot = (*Redis)(nil)

// NewRedis returns a Redis slot. A zero ttl keeps the entry until taken.
func NewRedis(client *redisv9.Client, key string, ttl time.Duration) *Redis {
	if key == "" {
		key = DefaultKey
	}
	return &Redis{client: client, key: key, ttl: ttl}
}

func (r *Redis) Put(ctx context.Context, e Entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal handoff entry failed: %w", err)
	}
	if err := r.client.Set(ctx, r.key, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set handoff failed: %w", err)
	}
	return nil
}

func (r *Redis) Take(ctx context.Context) (*Entry, error) {
	raw, err := r.client.GetDel(ctx, r.key).Bytes()
	if errors.Is(err, redisv9.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis getdel handoff failed: %w", err)
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("unmarshal handoff entry failed: %w", err)
	}
	return &e, nil
}

func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis delete handoff failed: %w", err)
	}
	return nil
}
