package common

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"flight-footprint/atlas/internal/logging"
)

// NewRedisClient creates a client for host:port. A failed ping is logged
// and the client is still returned; the pool reconnects on demand.
func NewRedisClient(host, port, password string) *redis.Client {
	redisDB := 0 // Default DB

	addr := fmt.Sprintf("%s:%s", host, port)
	logging.Info("Initializing Redis client", "addr", addr, "db", redisDB)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           redisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logging.Error("Failed to ping Redis", "addr", addr, "error", err.Error())
		return client
	}

	logging.Info("Connected to Redis", "addr", addr)
	return client
}
