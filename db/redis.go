package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"fourline/config"
)

var RedisClient *redis.Client
var redisEnabled bool

const leaderboardCacheKey = "leaderboard"
const leaderboardCacheTTL = 30 * time.Second

// InitRedis connects the optional cache. A missing Redis never fails
// startup; the server just serves uncached.
func InitRedis() error {
	addr := config.GetEnv("REDIS_URL", "localhost:6379")
	password := config.GetEnv("REDIS_PASSWORD", "")

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx := context.Background()
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, serving without cache")
		redisEnabled = false
		return nil
	}

	redisEnabled = true
	log.Info().Str("addr", addr).Msg("redis connected")
	return nil
}

func IsRedisEnabled() bool {
	return redisEnabled
}

func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// GetCachedLeaderboard returns the cached leaderboard, or (nil, false)
// on a miss or when Redis is disabled.
func GetCachedLeaderboard(ctx context.Context) ([]PlayerStats, bool) {
	if !redisEnabled {
		return nil, false
	}
	data, err := RedisClient.Get(ctx, leaderboardCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var stats []PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, false
	}
	return stats, true
}

// CacheLeaderboard stores the leaderboard with a short TTL.
func CacheLeaderboard(ctx context.Context, stats []PlayerStats) {
	if !redisEnabled {
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := RedisClient.Set(ctx, leaderboardCacheKey, data, leaderboardCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to cache leaderboard")
	}
}
