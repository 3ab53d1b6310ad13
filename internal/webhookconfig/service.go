package webhookconfig

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarkhalil/framecraft-backend/pkg/db"
	"github.com/omarkhalil/framecraft-backend/pkg/db/models"
	pkgerrors "github.com/omarkhalil/framecraft-backend/pkg/errors"
)

// Service manages per-tenant webhook credentials: create on demand, rotate,
// activate and deactivate. Configs are never deleted automatically.
type Service interface {
	EnsureConfig(ctx context.Context, tenantID uuid.UUID) (*models.WebhookConfig, error)
	RotateKey(ctx context.Context, tenantID uuid.UUID) (*models.WebhookConfig, error)
	SetActive(ctx context.Context, tenantID uuid.UUID, active bool) (*models.WebhookConfig, error)
	Authenticate(ctx context.Context, key string) (*models.WebhookConfig, error)
}

type service struct {
	repo     Repository
	keyBytes int
}

// NewService builds the webhook config service. keyBytes controls how much
// entropy each generated key carries before hex encoding.
func NewService(repo Repository, keyBytes int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("webhook config repository required")
	}
	if keyBytes < 16 {
		keyBytes = 16
	}
	return &service{repo: repo, keyBytes: keyBytes}, nil
}

func (s *service) EnsureConfig(ctx context.Context, tenantID uuid.UUID) (*models.WebhookConfig, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}

	config, err := s.repo.FindByTenant(ctx, tenantID)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load webhook config")
	}

	key, err := s.generateKey()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate webhook key")
	}

	config = &models.WebhookConfig{
		TenantID: tenantID,
		Key:      key,
		Active:   true,
	}
	if err := s.repo.Create(ctx, config); err != nil {
		// Lost the create race: someone else made it first, reuse theirs.
		if db.IsUniqueViolation(err, "") {
			return s.repo.FindByTenant(ctx, tenantID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist webhook config")
	}
	return config, nil
}

func (s *service) RotateKey(ctx context.Context, tenantID uuid.UUID) (*models.WebhookConfig, error) {
	key, err := s.generateKey()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate webhook key")
	}

	if err := s.repo.UpdateKey(ctx, tenantID, key); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "webhook config not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate webhook key")
	}
	return s.repo.FindByTenant(ctx, tenantID)
}

func (s *service) SetActive(ctx context.Context, tenantID uuid.UUID, active bool) (*models.WebhookConfig, error) {
	if err := s.repo.UpdateActive(ctx, tenantID, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "webhook config not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update webhook config")
	}
	return s.repo.FindByTenant(ctx, tenantID)
}

// Authenticate resolves the presented key to its tenant config. An unknown
// key is unauthorized; a known but deactivated key is forbidden.
func (s *service) Authenticate(ctx context.Context, key string) (*models.WebhookConfig, error) {
	if strings.TrimSpace(key) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "webhook key required")
	}

	config, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown webhook key")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up webhook key")
	}
	if !config.Active {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "webhook config inactive")
	}
	return config, nil
}

func (s *service) generateKey() (string, error) {
	buf := make([]byte, s.keyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
