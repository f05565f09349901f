package cache

import (
	"context"
	"time"

	"hireboard/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// NewCache connects to Redis. Callers treat a nil client as "cache disabled".
func NewCache(ctx context.Context, addr, username, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - continuing without result cache")
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
