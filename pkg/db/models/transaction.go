package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omarkhalil/framecraft-backend/pkg/enums"
)

// Transaction is one immutable entry in the tenant cash ledger. The tenant
// balance is always derived by folding these rows, never persisted.
type Transaction struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID    uuid.UUID             `gorm:"column:tenant_id;type:uuid;not null;index"`
	Type        enums.TransactionType `gorm:"column:type;type:transaction_type;not null"`
	Amount      decimal.Decimal       `gorm:"column:amount;type:numeric(12,2);not null"`
	Description string                `gorm:"column:description;not null"`
	OrderSerial string                `gorm:"column:order_serial;not null;index"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
}
