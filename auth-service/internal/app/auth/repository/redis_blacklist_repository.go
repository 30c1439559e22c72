package repository

import (
	"context"
	"fmt"
	"time"

	"bikeshop/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "blacklist:"

type redisBlacklistRepository struct {
	client *redis.Client
}

// NewRedisBlacklistRepository черный список access токенов в Redis
func NewRedisBlacklistRepository(client *redis.Client) TokenBlacklist {
	return &redisBlacklistRepository{client: client}
}

// AddToBlacklist кладет токен с TTL до его истечения; истекший токен не сохраняется
func (r *redisBlacklistRepository) AddToBlacklist(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	timer := metrics.NewRedisTimer(metricsService, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	if err := r.client.Set(ctx, blacklistPrefix+token, "1", ttl).Err(); err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpSet)
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}

	return nil
}

func (r *redisBlacklistRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	timer := metrics.NewRedisTimer(metricsService, metrics.RedisOpExists)
	defer timer.ObserveDuration()

	exists, err := r.client.Exists(ctx, blacklistPrefix+token).Result()
	if err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpExists)
		return false, fmt.Errorf("failed to check if token is blacklisted: %w", err)
	}

	return exists > 0, nil
}
