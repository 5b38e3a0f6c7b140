package common

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"ekklesia/registry/internal/logging"
)

// NewRedisClient connects to the session store. REDIS_ADDR takes host:port;
// REDIS_PASSWORD and REDIS_DB are optional and default to empty and 0.
func NewRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	dbIndex := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			dbIndex = n
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           dbIndex,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// The pool retries on its own, so a failed ping is not fatal.
		logging.Warn("redis ping failed", "addr", addr, "error", err)
		return client
	}

	logging.Info("redis connected", "addr", addr, "db", dbIndex)
	return client
}
