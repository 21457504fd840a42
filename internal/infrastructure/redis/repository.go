package redis

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/sp3dr4/xlu/internal/domain"
)

// ShortLinkRepository reads short links from a redis hash mapping
// short code to target URL.
type ShortLinkRepository struct {
	client *redis.Client
	key    string
	logger *slog.Logger
}

func NewShortLinkRepository(client *redis.Client, key string, logger *slog.Logger) *ShortLinkRepository {
	return &ShortLinkRepository{
		client: client,
		key:    key,
		logger: logger,
	}
}

// GetShortLinks returns the hash contents ordered by short code, since redis
// hashes carry no order of their own.
func (r *ShortLinkRepository) GetShortLinks(ctx context.Context) ([]domain.ShortLinkItem, error) {
	values, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		r.logger.Error("Failed to read short links from redis", "key", r.key, "error", err)
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	links := make([]domain.ShortLinkItem, 0, len(values))
	for shortCode, url := range values {
		links = append(links, domain.ShortLinkItem{ShortCode: shortCode, URL: url})
	}
	slices.SortFunc(links, func(a, b domain.ShortLinkItem) int {
		return cmp.Compare(a.ShortCode, b.ShortCode)
	})

	return links, nil
}

func (r *ShortLinkRepository) Close() error {
	return r.client.Close()
}

func (r *ShortLinkRepository) HealthCheck(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		r.logger.Error("Failed to ping Redis", "error", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
