package cache

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// ImageCache keeps the last data-URL each user submitted for a report, so
// /userImage can render it back. One slot per email, TTL-bounded; there is
// deliberately no process-wide slot shared across users.
type ImageCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewImageCache(client *redisv9.Client, ttl time.Duration) *ImageCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ImageCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *ImageCache) Store(ctx context.Context, email, dataURL string) error {
	if err := c.client.Set(ctx, c.key(email), dataURL, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set last image failed: %w", err)
	}
	return nil
}

// Load returns the cached data-URL and whether one exists for the email.
func (c *ImageCache) Load(ctx context.Context, email string) (string, bool, error) {
	raw, err := c.client.Get(ctx, c.key(email)).Result()
	if err == redisv9.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get last image failed: %w", err)
	}
	return raw, true, nil
}

func (c *ImageCache) key(email string) string {
	return fmt.Sprintf("report:lastimage:%s", email)
}
