package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/omarkhalil/framecraft-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID honors an inbound X-Request-Id, minting one when absent, and
// echoes it on the response so callers can correlate logs.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, requestID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, requestID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
