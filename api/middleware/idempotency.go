package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/omarkhalil/framecraft-backend/api/responses"
	pkgerrors "github.com/omarkhalil/framecraft-backend/pkg/errors"
	"github.com/omarkhalil/framecraft-backend/pkg/logger"
	pkgredis "github.com/omarkhalil/framecraft-backend/pkg/redis"
)

const (
	replayTTLDefault = 24 * time.Hour
	replayTTLMoney   = 7 * 24 * time.Hour
)

// guardedRoute marks a mutating route whose responses are replayed when the
// same Idempotency-Key arrives again within the TTL.
type guardedRoute struct {
	method string
	match  func(pattern string) bool
	ttl    time.Duration
}

var guardedRoutes = []guardedRoute{
	{http.MethodPost, exactPath("/api/v1/transactions"), replayTTLDefault},
	{http.MethodPost, exactPath("/api/v1/webhook-config/rotate"), replayTTLDefault},
	// Money moves keep their records a full week; a double-booked order or
	// payment is far worse than a stale replay.
	{http.MethodPost, exactPath("/api/v1/orders"), replayTTLMoney},
	{http.MethodPost, pathUnder("/api/v1/orders/", "/payments/customer"), replayTTLMoney},
	{http.MethodPost, pathUnder("/api/v1/orders/", "/payments/workshop"), replayTTLMoney},
}

// replayRecord is the stored outcome of a guarded request.
type replayRecord struct {
	Status      int               `json:"status"`
	Body        string            `json:"body"`
	Headers     map[string]string `json:"headers,omitempty"`
	RequestHash string            `json:"request_hash"`
}

// Idempotency replays stored responses for guarded routes. A key reused with
// a different body is rejected as a conflict.
func Idempotency(store pkgredis.IdempotencyStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ttl, guarded := guardTTL(r)
			if !guarded || store == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
			if key == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Idempotency-Key header required"))
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			hash := requestHash(body)
			storeKey := store.IdempotencyKey(requestScope(r), key)

			stored, getErr := store.Get(r.Context(), storeKey)
			if getErr != nil && !errors.Is(getErr, redis.Nil) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, getErr, "check idempotency"))
				return
			}
			if stored != "" {
				replayStored(r.Context(), logg, w, stored, hash)
				return
			}

			capture := &captureWriter{ResponseWriter: w}
			next.ServeHTTP(capture, r)
			persistRecord(r.Context(), logg, store, storeKey, capture, hash, ttl)
		})
	}
}

// replayStored writes the recorded response back, or a conflict when the key
// was reused with a different body.
func replayStored(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, stored, hash string) {
	var record replayRecord
	if err := json.Unmarshal([]byte(stored), &record); err != nil {
		responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode idempotency record"))
		return
	}
	if record.RequestHash != hash {
		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeConflict, "idempotency key reused with different request body"))
		return
	}

	if ct := record.Headers["Content-Type"]; ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(record.Status)
	if decoded, err := base64.StdEncoding.DecodeString(record.Body); err == nil {
		_, _ = w.Write(decoded)
	}
}

// persistRecord stores the captured response. Storage failures are logged and
// swallowed; the caller already has their answer.
func persistRecord(ctx context.Context, logg *logger.Logger, store pkgredis.IdempotencyStore, key string, capture *captureWriter, hash string, ttl time.Duration) {
	status := capture.status
	if status == 0 {
		status = http.StatusOK
	}
	record := replayRecord{
		Status:      status,
		Body:        base64.StdEncoding.EncodeToString(capture.body.Bytes()),
		RequestHash: hash,
	}
	if ct := capture.Header().Get("Content-Type"); ct != "" {
		record.Headers = map[string]string{"Content-Type": ct}
	}

	payload, err := json.Marshal(record)
	if err != nil {
		logIdempotencyError(ctx, logg, "marshal idempotency record", err)
		return
	}
	if _, err := store.SetNX(ctx, key, string(payload), ttl); err != nil {
		logIdempotencyError(ctx, logg, "persist idempotency record", err)
	}
}

// requestScope keys records per caller and route so tenants cannot collide on
// a shared key value.
func requestScope(r *http.Request) string {
	return strings.Join([]string{
		UserIDFromContext(r.Context()),
		TenantIDFromContext(r.Context()),
		r.Method,
		r.URL.Path,
	}, "|")
}

func requestHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return base64.StdEncoding.EncodeToString(sum[:])
}

// guardTTL resolves whether the request's route is guarded and with which TTL.
func guardTTL(r *http.Request) (time.Duration, bool) {
	pattern := r.URL.Path
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			pattern = p
		}
	}
	if pattern == "" {
		return 0, false
	}
	for _, route := range guardedRoutes {
		if route.method == r.Method && route.match(pattern) {
			return route.ttl, true
		}
	}
	return 0, false
}

func exactPath(path string) func(string) bool {
	return func(pattern string) bool { return pattern == path }
}

func pathUnder(prefix, suffix string) func(string) bool {
	return func(pattern string) bool {
		return strings.HasPrefix(pattern, prefix) && strings.HasSuffix(pattern, suffix)
	}
}

// captureWriter tees the response so it can be stored for replay.
type captureWriter struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (c *captureWriter) WriteHeader(code int) {
	c.status = code
	c.ResponseWriter.WriteHeader(code)
}

func (c *captureWriter) Write(b []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}

func logIdempotencyError(ctx context.Context, logg *logger.Logger, msg string, err error) {
	if logg == nil || err == nil {
		return
	}
	logg.Error(ctx, msg, err)
}
