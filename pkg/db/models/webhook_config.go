package models

import (
	"time"

	"github.com/google/uuid"
)

// WebhookConfig holds the per-tenant intake credentials. Created on demand,
// key rotatable, never deleted automatically.
type WebhookConfig struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID    uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;uniqueIndex"`
	Key         string    `gorm:"column:key;not null;uniqueIndex"`
	Active      bool      `gorm:"column:active;not null;default:true"`
	CallbackURL string    `gorm:"column:callback_url;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
