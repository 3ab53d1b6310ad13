package middleware

import "context"

type contextKey string

const (
	ctxUserID   contextKey = "user_id"
	ctxTenantID contextKey = "tenant_id"
)

func stringFromContext(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

// UserIDFromContext returns the authenticated user id, or "" when the request
// never passed the auth middleware.
func UserIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxUserID)
}

// TenantIDFromContext returns the authenticated tenant id, or "".
func TenantIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxTenantID)
}

// WithUserID stores the user identifier for downstream handlers.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithTenantID stores the tenant identifier for downstream handlers.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxTenantID, tenantID)
}
