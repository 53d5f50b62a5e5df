package httpx

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/taskdeck/taskdeck/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the rate limiting parameters for an endpoint
// class.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the window.
	RequestsPerWindow int
	// Window is the time window for rate limiting.
	Window time.Duration
	// Burst allows temporary bursts above the steady rate.
	Burst int
}

// Endpoint-class profiles.
var (
	// StrictLimit for credential endpoints (brute force prevention).
	StrictLimit = RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	// ModerateLimit for authenticated mutations.
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 20, Window: time.Minute, Burst: 20}

	// LenientLimit for authenticated reads and health probes.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 100, Window: time.Minute, Burst: 100}
)

// KeyExtractor derives the grouping key for a request (IP, user id, ...).
type KeyExtractor func(*http.Request) string

// IPKeyExtractor extracts the client IP, honouring proxy headers.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, ok := strings.Cut(xff, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

type keyedLimiter struct {
	limiters sync.Map // map[string]*rate.Limiter
	rate     rate.Limit
	burst    int

	mu          sync.Mutex
	lastCleanup time.Time
}

func (kl *keyedLimiter) get(key string) *rate.Limiter {
	if l, ok := kl.limiters.Load(key); ok {
		return l.(*rate.Limiter)
	}
	l, _ := kl.limiters.LoadOrStore(key, rate.NewLimiter(kl.rate, kl.burst))
	kl.maybeCleanup()
	return l.(*rate.Limiter)
}

// maybeCleanup drops idle limiters so ephemeral keys don't accumulate.
// A limiter with a full token bucket has not been used for a while.
func (kl *keyedLimiter) maybeCleanup() {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	if time.Since(kl.lastCleanup) < 5*time.Minute {
		return
	}
	kl.lastCleanup = time.Now()

	kl.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(kl.burst) {
			kl.limiters.Delete(key)
		}
		return true
	})
}

// RateLimitMiddleware limits requests grouped by keyExtractor.
func RateLimitMiddleware(config RateLimitConfig, keyExtractor KeyExtractor) Middleware {
	kl := &keyedLimiter{
		rate:        rate.Limit(float64(config.RequestsPerWindow) / config.Window.Seconds()),
		burst:       config.Burst,
		lastCleanup: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			key := keyExtractor(r)
			if key == "" {
				log.Warn("rate limit: unable to extract key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			limiter := kl.get(key)
			if !limiter.Allow() {
				reservation := limiter.Reserve()
				delay := reservation.Delay()
				reservation.Cancel()

				retryAfter := max(int(delay.Seconds()), 1)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerWindow))
				w.Header().Set("X-RateLimit-Window", config.Window.String())

				log.Warn("rate limit exceeded",
					"key", key,
					"endpoint", r.URL.Path,
					"retry_after", retryAfter,
				)

				WriteMessage(w, http.StatusTooManyRequests, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP limits by client IP only.
func RateLimitByIP(config RateLimitConfig) Middleware {
	return RateLimitMiddleware(config, IPKeyExtractor)
}

// RateLimitByUser limits by authenticated user id, falling back to IP
// for unauthenticated requests.
func RateLimitByUser(config RateLimitConfig) Middleware {
	return RateLimitMiddleware(config, func(r *http.Request) string {
		if userID := UserIDFromContext(r.Context()); userID != "" {
			return userID
		}
		return IPKeyExtractor(r)
	})
}
