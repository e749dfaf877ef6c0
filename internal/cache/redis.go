package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"healio/internal/nutrition"

	"github.com/redis/go-redis/v9"
)

// StatusReporter is implemented by both cache backends.
type StatusReporter interface {
	Status(ctx context.Context) (map[string]interface{}, error)
}

// SummaryCache stores computed daily summaries keyed by user and day (YYYY-MM-DD).
//
// Every invalidation changes the day's version. Callers read Version before
// loading the data a summary is computed from and pass it to SetSummary, which
// drops the write if the day was invalidated in between.
type SummaryCache interface {
	GetSummary(ctx context.Context, userID uint, day string) (*nutrition.Summary, bool, error)
	Version(ctx context.Context, userID uint, day string) (string, error)
	SetSummary(ctx context.Context, userID uint, day, version string, summary *nutrition.Summary) error
	InvalidateDay(ctx context.Context, userID uint, day string) error
	InvalidateUser(ctx context.Context, userID uint) error
}

// versionTTL outlives any summary computation; an expired counter reads as a new version.
const versionTTL = 24 * time.Hour

var errStaleVersion = errors.New("summary version changed")

type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(ctx context.Context, redisURL string, ttl time.Duration) (*RedisClient, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{client: client, ttl: ttl}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func summaryKey(userID uint, day string) string {
	return fmt.Sprintf("summary:%d:%s", userID, day)
}

func userVersionKey(userID uint) string {
	return fmt.Sprintf("summaryver:%d", userID)
}

func dayVersionKey(userID uint, day string) string {
	return fmt.Sprintf("summaryver:%d:%s", userID, day)
}

func versionOf(vals []interface{}) string {
	parts := [2]string{"0", "0"}
	for i := 0; i < len(vals) && i < 2; i++ {
		if vals[i] != nil {
			parts[i] = fmt.Sprint(vals[i])
		}
	}
	return parts[0] + "/" + parts[1]
}

func (r *RedisClient) Version(ctx context.Context, userID uint, day string) (string, error) {
	vals, err := r.client.MGet(ctx, userVersionKey(userID), dayVersionKey(userID, day)).Result()
	if err != nil {
		return "", fmt.Errorf("failed to read summary version: %w", err)
	}
	return versionOf(vals), nil
}

func (r *RedisClient) GetSummary(ctx context.Context, userID uint, day string) (*nutrition.Summary, bool, error) {
	data, err := r.client.Get(ctx, summaryKey(userID, day)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get summary from Redis: %w", err)
	}

	var summary nutrition.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return &summary, true, nil
}

// SetSummary stores summary unless the day's version no longer equals version.
// A skipped write is not an error.
func (r *RedisClient) SetSummary(ctx context.Context, userID uint, day, version string, summary *nutrition.Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	userKey, dayKey := userVersionKey(userID), dayVersionKey(userID, day)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		vals, err := tx.MGet(ctx, userKey, dayKey).Result()
		if err != nil {
			return err
		}
		if versionOf(vals) != version {
			return errStaleVersion
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, summaryKey(userID, day), data, r.ttl)
			return nil
		})
		return err
	}, userKey, dayKey)

	switch {
	case err == nil, errors.Is(err, errStaleVersion), errors.Is(err, redis.TxFailedErr):
		return nil
	default:
		return fmt.Errorf("failed to store summary in Redis: %w", err)
	}
}

func (r *RedisClient) InvalidateDay(ctx context.Context, userID uint, day string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, dayVersionKey(userID, day))
		pipe.Expire(ctx, dayVersionKey(userID, day), versionTTL)
		pipe.Del(ctx, summaryKey(userID, day))
		return nil
	})
	return err
}

// InvalidateUser drops every cached day for the user. Used when goals change.
func (r *RedisClient) InvalidateUser(ctx context.Context, userID uint) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, userVersionKey(userID))
		pipe.Expire(ctx, userVersionKey(userID), versionTTL)
		return nil
	})
	if err != nil {
		return err
	}

	iter := r.client.Scan(ctx, 0, fmt.Sprintf("summary:%d:*", userID), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// Status reports connection pool counters for the debug endpoint.
func (r *RedisClient) Status(ctx context.Context) (map[string]interface{}, error) {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	stats := r.client.PoolStats()
	return map[string]interface{}{
		"connected":    true,
		"hits":         stats.Hits,
		"misses":       stats.Misses,
		"active_conns": stats.TotalConns,
	}, nil
}

// Noop is used when no Redis URL is configured.
type Noop struct{}

func (Noop) Status(context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"connected": false, "enabled": false}, nil
}

func (Noop) GetSummary(context.Context, uint, string) (*nutrition.Summary, bool, error) {
	return nil, false, nil
}

func (Noop) Version(context.Context, uint, string) (string, error) { return "", nil }

func (Noop) SetSummary(context.Context, uint, string, string, *nutrition.Summary) error { return nil }

func (Noop) InvalidateDay(context.Context, uint, string) error { return nil }

func (Noop) InvalidateUser(context.Context, uint) error { return nil }
