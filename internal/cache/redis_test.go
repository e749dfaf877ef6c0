package cache

import (
	"context"
	"testing"
	"time"

	"healio/internal/nutrition"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ SummaryCache   = (*RedisClient)(nil)
	_ SummaryCache   = Noop{}
	_ StatusReporter = (*RedisClient)(nil)
	_ StatusReporter = Noop{}
)

func setupRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func sampleSummary(calories float64) *nutrition.Summary {
	return &nutrition.Summary{
		Consumed:    nutrition.Macros{Calories: calories, Protein: 40, Carbs: 200, Fat: 60},
		Goals:       nutrition.Macros{Calories: 2000, Protein: 50, Carbs: 250, Fat: 70},
		Remaining:   nutrition.Macros{Calories: 2000 - calories, Protein: 10, Carbs: 50, Fat: 10},
		Percentages: nutrition.Percentages{Calories: 90, Protein: 80, Carbs: 80, Fat: 86},
	}
}

// store writes a summary at the day's current version.
func store(t *testing.T, c *RedisClient, userID uint, day string, s *nutrition.Summary) {
	t.Helper()
	ctx := context.Background()
	version, err := c.Version(ctx, userID, day)
	require.NoError(t, err)
	require.NoError(t, c.SetSummary(ctx, userID, day, version, s))
}

func TestSummaryKey(t *testing.T) {
	assert.Equal(t, "summary:42:2024-01-15", summaryKey(42, "2024-01-15"))
}

func TestNoopCache(t *testing.T) {
	var c SummaryCache = Noop{}
	ctx := context.Background()

	version, err := c.Version(ctx, 1, "2024-01-15")
	require.NoError(t, err)
	require.NoError(t, c.SetSummary(ctx, 1, "2024-01-15", version, nil))
	s, ok, err := c.GetSummary(ctx, 1, "2024-01-15")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, s)
	assert.NoError(t, c.InvalidateDay(ctx, 1, "2024-01-15"))
	assert.NoError(t, c.InvalidateUser(ctx, 1))
}

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not-a-url", 0)
	assert.Error(t, err)
}

func TestRedisSummaryRoundTrip(t *testing.T) {
	c, mr := setupRedis(t)
	ctx := context.Background()

	got, ok, err := c.GetSummary(ctx, 1, "2024-01-15")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	want := sampleSummary(1800)
	store(t, c, 1, "2024-01-15", want)

	got, ok, err = c.GetSummary(ctx, 1, "2024-01-15")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, time.Minute, mr.TTL("summary:1:2024-01-15"))
}

func TestRedisGetSummaryCorruptValue(t *testing.T) {
	c, mr := setupRedis(t)
	require.NoError(t, mr.Set("summary:1:2024-01-15", "{not json"))

	_, ok, err := c.GetSummary(context.Background(), 1, "2024-01-15")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisInvalidateDay(t *testing.T) {
	c, mr := setupRedis(t)
	store(t, c, 1, "2024-01-15", sampleSummary(1800))
	store(t, c, 1, "2024-01-16", sampleSummary(900))

	require.NoError(t, c.InvalidateDay(context.Background(), 1, "2024-01-15"))

	assert.False(t, mr.Exists("summary:1:2024-01-15"))
	assert.True(t, mr.Exists("summary:1:2024-01-16"))
}

func TestRedisInvalidateUserLeavesOtherUsers(t *testing.T) {
	c, mr := setupRedis(t)
	store(t, c, 1, "2024-01-15", sampleSummary(1800))
	store(t, c, 1, "2024-01-16", sampleSummary(900))
	store(t, c, 11, "2024-01-15", sampleSummary(500))
	store(t, c, 2, "2024-01-15", sampleSummary(700))

	require.NoError(t, c.InvalidateUser(context.Background(), 1))

	assert.False(t, mr.Exists("summary:1:2024-01-15"))
	assert.False(t, mr.Exists("summary:1:2024-01-16"))
	assert.True(t, mr.Exists("summary:11:2024-01-15"))
	assert.True(t, mr.Exists("summary:2:2024-01-15"))
}

func TestRedisVersionChangesOnInvalidation(t *testing.T) {
	c, _ := setupRedis(t)
	ctx := context.Background()

	v0, err := c.Version(ctx, 1, "2024-01-15")
	require.NoError(t, err)

	require.NoError(t, c.InvalidateDay(ctx, 1, "2024-01-15"))
	v1, err := c.Version(ctx, 1, "2024-01-15")
	require.NoError(t, err)
	assert.NotEqual(t, v0, v1)

	require.NoError(t, c.InvalidateUser(ctx, 1))
	v2, err := c.Version(ctx, 1, "2024-01-15")
	require.NoError(t, err)
	assert.NotEqual(t, v1, v2)

	other, err := c.Version(ctx, 2, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, v0, other)
}

func TestRedisSetSummaryDropsStaleWrite(t *testing.T) {
	tests := []struct {
		name       string
		invalidate func(ctx context.Context, c *RedisClient) error
	}{
		{"meal change on the day", func(ctx context.Context, c *RedisClient) error {
			return c.InvalidateDay(ctx, 1, "2024-01-15")
		}},
		{"goal change", func(ctx context.Context, c *RedisClient) error {
			return c.InvalidateUser(ctx, 1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mr := setupRedis(t)
			ctx := context.Background()

			version, err := c.Version(ctx, 1, "2024-01-15")
			require.NoError(t, err)

			require.NoError(t, tt.invalidate(ctx, c))

			require.NoError(t, c.SetSummary(ctx, 1, "2024-01-15", version, sampleSummary(1800)))
			assert.False(t, mr.Exists("summary:1:2024-01-15"))

			_, ok, err := c.GetSummary(ctx, 1, "2024-01-15")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestRedisStatus(t *testing.T) {
	c, _ := setupRedis(t)

	status, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, true, status["connected"])
}
