package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// TrendingCacheKey is the Redis key holding the warmed trending payload
// for a given window and limit.
func TrendingCacheKey(windowDays, limit int) string {
	return fmt.Sprintf("trending:%d:%d", windowDays, limit)
}

// TrendingCacheTTL bounds staleness if the warmer stops running.
const TrendingCacheTTL = 15 * time.Minute

// WarmTrendingCache computes the default trending ranking and stores it in
// Redis. Shared by the periodic warmer and on-demand refreshes.
func WarmTrendingCache(ctx context.Context, agg *Aggregator, redisClient *redis.Client) error {
	trending, err := agg.ComputeTrending(ctx, DefaultTrendingDays, DefaultTrendingLimit)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(trending)
	if err != nil {
		return err
	}

	key := TrendingCacheKey(DefaultTrendingDays, DefaultTrendingLimit)
	if err := redisClient.Set(ctx, key, payload, TrendingCacheTTL).Err(); err != nil {
		return err
	}
	return nil
}

// StartTrendingWarmer refreshes the trending cache on an interval until
// the context is cancelled. The aggregation itself is identical to the
// on-demand path; only the cadence differs.
func StartTrendingWarmer(ctx context.Context, agg *Aggregator, redisClient *redis.Client, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if err := WarmTrendingCache(ctx, agg, redisClient); err != nil {
				log.Printf("trending warmer: refresh failed: %v", err)
			}

			select {
			case <-ctx.Done():
				log.Println("trending warmer stopped")
				return
			case <-ticker.C:
			}
		}
	}()
}
