package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/blogverse-backend/pkg/clientip"
)

const (
	// RateLimitWindow is the fixed window a request counter lives for.
	RateLimitWindow = time.Minute
	// RateLimitMaxRequests is how many requests one IP may make per window.
	RateLimitMaxRequests = 100
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "ratelimit:"
)

// RedisRateLimit counts requests per client IP in Redis over a fixed window. When Redis
// fails the request is allowed (fail open).
func RedisRateLimit(client *redis.Client, trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := RateLimitKeyPrefix + clientip.RealClientIP(r, trustProxy)

			// INCR and EXPIRE NX go out in one MULTI, so every counter carries a TTL even if an
			// earlier expire was lost.
			var incr *redis.IntCmd
			_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				incr = pipe.Incr(ctx, key)
				pipe.ExpireNX(ctx, key, RateLimitWindow)
				return nil
			})
			if err != nil {
				log.Printf("rate limit: redis pipeline failed: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			count := incr.Val()

			if count > RateLimitMaxRequests {
				w.Header().Set("Retry-After", strconv.Itoa(int(RateLimitWindow.Seconds())))
				writeMessage(w, http.StatusTooManyRequests,
					fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", int(RateLimitWindow.Seconds())))
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(RateLimitMaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(RateLimitMaxRequests-count, 10))
			next.ServeHTTP(w, r)
		})
	}
}
