package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omarkhalil/framecraft-backend/pkg/enums"
)

// Order is the primary, authoritative record for a tenant order. The admin
// mirror (AdminOrder) is derived from it and never the other way around.
type Order struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID       uuid.UUID         `gorm:"column:tenant_id;type:uuid;not null;uniqueIndex:uq_orders_tenant_serial"`
	Serial         string            `gorm:"column:serial;not null;uniqueIndex:uq_orders_tenant_serial"`
	CustomerName   string            `gorm:"column:customer_name;not null"`
	Phone          string            `gorm:"column:phone;not null"`
	Email          *string           `gorm:"column:email"`
	DeliveryMethod string            `gorm:"column:delivery_method;not null"`
	Address        *string           `gorm:"column:address"`
	Governorate    *string           `gorm:"column:governorate"`
	PaymentMethod  string            `gorm:"column:payment_method;not null"`
	ShippingCost   decimal.Decimal   `gorm:"column:shipping_cost;type:numeric(12,2);not null"`
	Discount       decimal.Decimal   `gorm:"column:discount;type:numeric(12,2);not null"`
	Deposit        decimal.Decimal   `gorm:"column:deposit;type:numeric(12,2);not null"`
	Total          decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	Profit         decimal.Decimal   `gorm:"column:profit;type:numeric(12,2);not null"`
	Status         enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'pending'"`
	Source         enums.OrderSource `gorm:"column:source;type:order_source;not null;default:'dashboard'"`
	Items          []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
