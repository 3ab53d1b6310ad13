package middleware

import (
	"net/http"
	"strings"

	"github.com/omarkhalil/framecraft-backend/api/responses"
	pkgauth "github.com/omarkhalil/framecraft-backend/pkg/auth"
	"github.com/omarkhalil/framecraft-backend/pkg/config"
	pkgerrors "github.com/omarkhalil/framecraft-backend/pkg/errors"
	"github.com/omarkhalil/framecraft-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// authenticated user and tenant.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID.String())
			ctx = WithTenantID(ctx, claims.TenantID.String())

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id": claims.UserID.String(),
				})
				ctx = logg.WithTenantID(ctx, claims.TenantID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
