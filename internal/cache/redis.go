package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"example.com/worklog/config"
	"example.com/worklog/models"
)

// CalendarCache caches a member's monthly calendar view (work-log entries
// plus absences) in Redis. The cache is strictly an accelerator: misses
// and failures fall through to the projection tables.
type CalendarCache struct {
	client  *redis.Client
	enabled bool
	ttl     time.Duration
}

// CalendarView is the cached payload for one member and month.
type CalendarView struct {
	Entries  []models.WorkLogEntryProjection `json:"entries"`
	Absences []models.AbsenceProjection     `json:"absences"`
}

// NewCalendarCache creates a Redis-backed calendar cache. With Redis
// disabled in config it degrades to a no-op.
func NewCalendarCache(cfg config.Config) (*CalendarCache, error) {
	if !cfg.RedisEnabled {
		return &CalendarCache{enabled: false}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &CalendarCache{
		client:  client,
		enabled: true,
		ttl:     time.Hour,
	}, nil
}

func calendarKey(memberID, yearMonth string) string {
	return fmt.Sprintf("calendar:%s:%s", memberID, yearMonth)
}

// Get retrieves a cached calendar view, redis.Nil on a miss.
func (c *CalendarCache) Get(ctx context.Context, memberID, yearMonth string) (*CalendarView, error) {
	if !c.enabled {
		return nil, redis.Nil
	}

	data, err := c.client.Get(ctx, calendarKey(memberID, yearMonth)).Bytes()
	if err != nil {
		return nil, err
	}

	var view CalendarView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Set caches a calendar view.
func (c *CalendarCache) Set(ctx context.Context, memberID, yearMonth string, view *CalendarView) error {
	if !c.enabled {
		return nil
	}

	data, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, calendarKey(memberID, yearMonth), data, c.ttl).Err()
}

// Invalidate drops the cached view for one member and month.
func (c *CalendarCache) Invalidate(ctx context.Context, memberID, yearMonth string) error {
	if !c.enabled {
		return nil
	}
	return c.client.Del(ctx, calendarKey(memberID, yearMonth)).Err()
}
