package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to dashboard clients.
// TenantID scopes every subsequent query the token can reach.
type AccessTokenClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	TenantID uuid.UUID `json:"tenant_id"`
	jwt.RegisteredClaims
}
