package webhookconfig

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarkhalil/framecraft-backend/pkg/db/models"
)

// Repository persists per-tenant webhook credentials.
type Repository interface {
	Create(ctx context.Context, config *models.WebhookConfig) error
	FindByTenant(ctx context.Context, tenantID uuid.UUID) (*models.WebhookConfig, error)
	FindByKey(ctx context.Context, key string) (*models.WebhookConfig, error)
	UpdateKey(ctx context.Context, tenantID uuid.UUID, key string) error
	UpdateActive(ctx context.Context, tenantID uuid.UUID, active bool) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a webhook config repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, config *models.WebhookConfig) error {
	if config.ID == uuid.Nil {
		config.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(config).Error
}

func (r *repository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*models.WebhookConfig, error) {
	var config models.WebhookConfig
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *repository) FindByKey(ctx context.Context, key string) (*models.WebhookConfig, error) {
	var config models.WebhookConfig
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *repository) UpdateKey(ctx context.Context, tenantID uuid.UUID, key string) error {
	res := r.db.WithContext(ctx).
		Model(&models.WebhookConfig{}).
		Where("tenant_id = ?", tenantID).
		Update("key", key)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) UpdateActive(ctx context.Context, tenantID uuid.UUID, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.WebhookConfig{}).
		Where("tenant_id = ?", tenantID).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
