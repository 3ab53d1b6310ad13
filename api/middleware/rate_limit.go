package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/omarkhalil/framecraft-backend/api/responses"
	pkgerrors "github.com/omarkhalil/framecraft-backend/pkg/errors"
	"github.com/omarkhalil/framecraft-backend/pkg/logger"
)

type fixedWindowLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// WebhookRateLimit throttles the public webhook intake per sender IP with a
// fixed Redis window. A limiter outage fails open: dropping orders because
// Redis is down is worse than letting a burst through.
func WebhookRateLimit(limiter fixedWindowLimiter, limit int64, window time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || limit <= 0 || r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			scope := "webhook:orders:" + clientIP(r)
			allowed, _, err := limiter.FixedWindowAllow(r.Context(), scope, limit, window)
			if err != nil {
				if logg != nil {
					logg.Error(r.Context(), "webhook rate limiter unavailable", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		if idx := strings.Index(fwd, ","); idx > 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
