package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// DefaultRateLimitClients bounds the number of tracked client buckets.
const DefaultRateLimitClients = 10_000

// RateLimiter hands out per-client token buckets keyed by scope and client
// IP. The least recently seen clients are evicted once capacity is reached,
// which resets their budget.
type RateLimiter struct {
	mu      sync.Mutex
	buckets *lru.Cache[string, *rate.Limiter]
	now     func() time.Time
}

// NewRateLimiter creates a limiter tracking up to capacity clients. A
// capacity below 1 uses DefaultRateLimitClients.
func NewRateLimiter(capacity int) *RateLimiter {
	if capacity < 1 {
		capacity = DefaultRateLimitClients
	}
	// lru.New fails only for a non-positive size.
	buckets, _ := lru.New[string, *rate.Limiter](capacity)
	return &RateLimiter{buckets: buckets, now: time.Now}
}

// Limit returns middleware that admits perMinute requests per client with
// bursts of up to burst. A burst below 1 defaults to perMinute. Routes
// limited with the same scope share one budget per client. Rejected
// requests get 429 RATE_LIMITED with Retry-After in whole seconds.
func (rl *RateLimiter) Limit(scope string, perMinute, burst int) Middleware {
	perMinute = max(perMinute, 1)
	if burst < 1 {
		burst = perMinute
	}
	every := rate.Every(time.Minute / time.Duration(perMinute))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := rl.now()
			res := rl.bucket(scope+"|"+clientIP(r), every, burst).ReserveN(now, 1)
			if delay := res.DelayFrom(now); delay > 0 {
				res.CancelAt(now)
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) bucket(key string, every rate.Limit, burst int) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if b, ok := rl.buckets.Get(key); ok {
		return b
	}
	b := rate.NewLimiter(every, burst)
	rl.buckets.Add(key, b)
	return b
}

// clientIP is the host part of RemoteAddr, so one client's connections share a bucket.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
