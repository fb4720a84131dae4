package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/finprep/exam-engine/internal/core/errors"
)

// usedContentKey is the Redis set holding committed fingerprints.
const usedContentKey = "exam:used_content"

const (
	redisDialTimeout  = 5 * time.Second
	redisReadTimeout  = 3 * time.Second
	redisWriteTimeout = 3 * time.Second
)

// RedisLedger is a Redis-backed fingerprint store. SADD is atomic, so
// commits need no extra locking.
type RedisLedger struct {
	client *redis.Client
}

// NewRedisLedger connects to Redis and verifies the connection.
func NewRedisLedger(ctx context.Context, url string) (*RedisLedger, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.DialTimeout = redisDialTimeout
	opts.ReadTimeout = redisReadTimeout
	opts.WriteTimeout = redisWriteTimeout

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisLedger{client: client}, nil
}

// Close shuts down the Redis client.
func (r *RedisLedger) Close() error {
	return r.client.Close()
}

// Ping verifies the Redis connection is alive.
func (r *RedisLedger) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// LoadAll returns every committed content fingerprint.
func (r *RedisLedger) LoadAll(ctx context.Context) ([]string, error) {
	hashes, err := r.client.SMembers(ctx, usedContentKey).Result()
	if err != nil {
		return nil, fmt.Errorf("load used content: %w", err)
	}

	return hashes, nil
}

// Contains reports whether a fingerprint has been committed.
func (r *RedisLedger) Contains(ctx context.Context, hash string) (bool, error) {
	exists, err := r.client.SIsMember(ctx, usedContentKey, hash).Result()
	if err != nil {
		return false, fmt.Errorf("check used content: %w", err)
	}

	return exists, nil
}

// addAllScript appends every fingerprint or none: if any argument is already
// a member the script returns 0 without adding, keeping the append
// all-or-nothing under concurrent commits.
var addAllScript = redis.NewScript(`
for _, v in ipairs(ARGV) do
	if redis.call('SISMEMBER', KEYS[1], v) == 1 then
		return 0
	end
end
for _, v in ipairs(ARGV) do
	redis.call('SADD', KEYS[1], v)
end
return 1
`)

// AddMany appends fingerprints to the persisted set, failing with
// ErrContentReused when any of them was already committed.
func (r *RedisLedger) AddMany(ctx context.Context, hashes []string) error {
	if len(hashes) == 0 {
		return nil
	}

	members := make([]interface{}, 0, len(hashes))
	for _, hash := range hashes {
		members = append(members, hash)
	}

	added, err := addAllScript.Run(ctx, r.client, []string{usedContentKey}, members...).Int()
	if err != nil {
		return fmt.Errorf("add used content: %w", err)
	}

	if added == 0 {
		return fmt.Errorf("%w: commit rejected by store", apperrors.ErrContentReused)
	}

	return nil
}
