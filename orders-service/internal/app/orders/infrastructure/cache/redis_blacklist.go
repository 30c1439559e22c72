package cache

import (
	"context"
	"fmt"

	"bikeshop/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	serviceName        = "orders-service"
	blacklistKeyPrefix = "blacklist:"
)

// RedisBlacklist только читает черный список, запись делает auth-service
type RedisBlacklist struct {
	client *redis.Client
}

func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client}
}

func (b *RedisBlacklist) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpExists)
	defer timer.ObserveDuration()

	exists, err := b.client.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpExists)
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}
