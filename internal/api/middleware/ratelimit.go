package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitStore counts requests per client within a fixed window
type RateLimitStore interface {
	// Allow records one request for key and reports whether it is within
	// limit for the current window
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimiter limits requests per client. Authenticated callers are keyed
// by user id, everyone else by client IP.
type RateLimiter struct {
	store    RateLimitStore
	logger   *slog.Logger
	requests int
	window   time.Duration
}

// NewRateLimiter creates a new rate limiter
// requests: maximum number of requests allowed per window
// window: time window duration (e.g., 1 minute)
// A nil store falls back to an in-memory store.
func NewRateLimiter(store RateLimitStore, requests int, window time.Duration, logger *slog.Logger) *RateLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = NewMemoryRateLimitStore(window)
	}
	return &RateLimiter{
		store:    store,
		requests: requests,
		window:   window,
		logger:   logger,
	}
}

// Middleware returns a rate limiting middleware
// Store failures let the request through.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := "ip:" + getClientIP(r)
		if caller := GetCaller(r); caller.Authenticated() {
			clientID = "user:" + caller.ID
		}

		allowed, err := rl.store.Allow(r.Context(), clientID, rl.requests, rl.window)
		if err != nil {
			rl.logger.Warn("rate limit store failed, allowing request", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":   "rate_limited",
				"message": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// MemoryRateLimitStore keeps counters in process memory
type MemoryRateLimitStore struct {
	clients map[string]*clientLimit
	mu      sync.Mutex
}

type clientLimit struct {
	resetTime time.Time
	count     int
}

// NewMemoryRateLimitStore creates an in-memory store and starts a cleanup
// loop that runs every window
func NewMemoryRateLimitStore(window time.Duration) *MemoryRateLimitStore {
	s := &MemoryRateLimitStore{
		clients: make(map[string]*clientLimit),
	}

	// Cleanup old entries every window duration
	go s.cleanup(window)

	return s
}

// Allow implements RateLimitStore
func (s *MemoryRateLimitStore) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()

	client, exists := s.clients[key]
	if !exists {
		s.clients[key] = &clientLimit{
			count:     1,
			resetTime: now.Add(window),
		}
		return true, nil
	}

	// Check if window has expired
	if now.After(client.resetTime) {
		client.count = 1
		client.resetTime = now.Add(window)
		return true, nil
	}

	if client.count < limit {
		client.count++
		return true, nil
	}

	return false, nil
}

func (s *MemoryRateLimitStore) cleanup(window time.Duration) {
	ticker := time.NewTicker(window)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now().UTC()
		for key, client := range s.clients {
			if now.After(client.resetTime) {
				delete(s.clients, key)
			}
		}
		s.mu.Unlock()
	}
}

// RedisRateLimitStore shares counters between server instances
type RedisRateLimitStore struct {
	client *redis.Client
	prefix string
}

// NewRedisRateLimitStore creates a Redis-backed store
func NewRedisRateLimitStore(client *redis.Client) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client, prefix: "agora:ratelimit:"}
}

// Allow implements RateLimitStore with INCR and a window-length expiry set
// on the first request of each window
func (s *RedisRateLimitStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	redisKey := s.prefix + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to count request: %w", err)
	}

	return incr.Val() <= int64(limit), nil
}

// ConnectRedis parses a redis:// URL and pings the server
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (if behind proxy); first hop is the client
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
