package config

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"hotel-booking/utils"

	"github.com/go-redis/redis/v8"
)

var RedisClient *redis.Client

// ConnectRedis wires the optional Redis-backed refresh token store. When
// REDIS_URL is unset the token store keeps its in-memory fallback.
func ConnectRedis() {
	raw := strings.TrimSpace(os.Getenv("REDIS_URL"))
	if raw == "" {
		log.Println("REDIS_URL not set, refresh tokens stored in memory")
		return
	}

	opts, err := redis.ParseURL(raw)
	if err != nil {
		log.Printf("warning: invalid REDIS_URL, falling back to in-memory tokens: %v", err)
		return
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("warning: redis unreachable, falling back to in-memory tokens: %v", err)
		return
	}

	RedisClient = client
	utils.UseRedis(client)
	log.Println("Redis connected")
}
