package models

import (
	"time"

	"github.com/google/uuid"
)

// WebhookLog is the append-only audit record of one inbound webhook call.
// TenantID is nil when authentication failed before tenant resolution and
// OrderSerial is nil unless an order was persisted.
type WebhookLog struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID    *uuid.UUID `gorm:"column:tenant_id;type:uuid"`
	OrderSerial *string    `gorm:"column:order_serial"`
	StatusCode  int        `gorm:"column:status_code;not null"`
	Message     string     `gorm:"column:message;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}
