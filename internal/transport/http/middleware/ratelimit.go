package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

// RateLimiter is satisfied by redis.FixedWindowLimiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// RateLimit buckets hits per route and caller identity. A nil limiter
// disables limiting, which is the dev boot without Redis.
func RateLimit(limiter RateLimiter, routeKey string, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	if routeKey == "" {
		routeKey = "unknown"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := routeKey + ":" + userOrIP(r)
			allowed, retryAfter, err := limiter.Allow(r.Context(), key)
			if err != nil {
				// Fail open to preserve availability.
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				if retryAfter > 0 {
					w.Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds()+0.5)))
				}
				writeErr(w, r, domain.ErrRateLimited(routeKey))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// userOrIP prefers the authenticated principal if present; otherwise falls
// back to client IP.
func userOrIP(r *http.Request) string {
	if p := PrincipalFromContext(r.Context()); p != nil && strings.TrimSpace(p.ID) != "" {
		return "u:" + p.ID
	}
	return "ip:" + clientIP(r)
}

func clientIP(r *http.Request) string {
	// Trust X-Forwarded-For ONLY if you control the proxy in front.
	xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if xff != "" {
		parts := strings.Split(xff, ",")
		ip := strings.TrimSpace(parts[0])
		if ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
