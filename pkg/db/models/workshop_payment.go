package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omarkhalil/framecraft-backend/pkg/enums"
)

// WorkshopPayment records what the tenant has paid (or still owes) the
// print workshop for producing an order.
type WorkshopPayment struct {
	ID          uuid.UUID                   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID    uuid.UUID                   `gorm:"column:tenant_id;type:uuid;not null;index"`
	OrderID     uuid.UUID                   `gorm:"column:order_id;type:uuid;not null;index"`
	OrderSerial string                      `gorm:"column:order_serial;not null"`
	Amount      decimal.Decimal             `gorm:"column:amount;type:numeric(12,2);not null"`
	Status      enums.WorkshopPaymentStatus `gorm:"column:status;type:workshop_payment_status;not null"`
	CreatedAt   time.Time                   `gorm:"column:created_at;autoCreateTime"`
}
