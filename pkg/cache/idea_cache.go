package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// IdeaCacheTTL is the time-to-live for cached game ideas.
	IdeaCacheTTL = 24 * time.Hour

	ideaCacheKeyPrefix  = "idea"
	trendCacheKeyPrefix = "idea:trend"
)

// CachedIdea is the denormalized read model stored in Redis.
// Fields are stored as a Redis hash; a secondary "idea:trend:{topic}" key
// points at the id so the consumer's idempotency pre-check can skip a
// database round trip for already-processed trends.
type CachedIdea struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genre       string    `json:"genre"`
	Platform    string    `json:"platform"`
	TrendTopic  string    `json:"trend_topic"`
	CreatedAt   time.Time `json:"created_at"`
}

// IdeaCache provides structured read/write operations for game idea cache entries.
// Key formats: "idea:{ideaID}" and "idea:trend:{trendTopic}".
type IdeaCache struct {
	client *RedisClient
}

// NewIdeaCache creates a new IdeaCache backed by the given RedisClient.
func NewIdeaCache(r *RedisClient) *IdeaCache {
	return &IdeaCache{client: r}
}

// Get retrieves a cached idea by id.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *IdeaCache) Get(ctx context.Context, ideaID uuid.UUID) (*CachedIdea, error) {
	key := c.key(ideaID)
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}

	return &CachedIdea{
		ID:          id,
		Title:       vals["title"],
		Description: vals["description"],
		Genre:       vals["genre"],
		Platform:    vals["platform"],
		TrendTopic:  vals["trend_topic"],
		CreatedAt:   createdAt,
	}, nil
}

// IDForTrend resolves the idea id already generated for a trend topic.
// Returns redis.Nil when no idea is cached for the trend.
func (c *IdeaCache) IDForTrend(ctx context.Context, trend string) (uuid.UUID, error) {
	raw, err := c.client.Client().Get(ctx, c.trendKey(trend)).Result()
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("cache parse trend pointer: %w", err)
	}
	return id, nil
}

// Set writes a cached idea as a Redis hash plus its trend pointer, each with
// a 24-hour TTL. Uses a pipeline so all writes ship in one round trip.
func (c *IdeaCache) Set(ctx context.Context, idea *CachedIdea) error {
	key := c.key(idea.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", idea.ID.String(),
		"title", idea.Title,
		"description", idea.Description,
		"genre", idea.Genre,
		"platform", idea.Platform,
		"trend_topic", idea.TrendTopic,
		"created_at", idea.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, IdeaCacheTTL)
	pipe.Set(ctx, c.trendKey(idea.TrendTopic), idea.ID.String(), IdeaCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// SetTrendPointer records that an idea already exists for a trend without
// touching the content hash. Used by subscribers of idea.generated, whose
// payload is the wire contract and does not carry every artifact field.
func (c *IdeaCache) SetTrendPointer(ctx context.Context, trend string, ideaID uuid.UUID) error {
	if err := c.client.Client().Set(ctx, c.trendKey(trend), ideaID.String(), IdeaCacheTTL).Err(); err != nil {
		return fmt.Errorf("cache set trend pointer: %w", err)
	}
	return nil
}

// Delete removes a cached idea and its trend pointer.
func (c *IdeaCache) Delete(ctx context.Context, ideaID uuid.UUID, trend string) error {
	if err := c.client.Client().Del(ctx, c.key(ideaID), c.trendKey(trend)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *IdeaCache) key(ideaID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", ideaCacheKeyPrefix, ideaID)
}

func (c *IdeaCache) trendKey(trend string) string {
	return fmt.Sprintf("%s:%s", trendCacheKeyPrefix, trend)
}
