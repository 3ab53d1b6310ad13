package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omarkhalil/framecraft-backend/pkg/enums"
)

// AdminOrder is the denormalized back-office mirror of an Order. It shares
// the serial with its primary and is written best-effort: a failed mirror
// write never fails the primary.
type AdminOrder struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID       uuid.UUID         `gorm:"column:tenant_id;type:uuid;not null;uniqueIndex:uq_admin_orders_tenant_serial"`
	Serial         string            `gorm:"column:serial;not null;uniqueIndex:uq_admin_orders_tenant_serial"`
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
	Items          []AdminOrderItem  `gorm:"foreignKey:AdminOrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// AdminOrderItem mirrors one OrderItem for back-office reporting.
type AdminOrderItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AdminOrderID uuid.UUID       `gorm:"column:admin_order_id;type:uuid;not null"`
	ProductType  string          `gorm:"column:product_type;not null"`
	Size         string          `gorm:"column:size;not null"`
	Quantity     int             `gorm:"column:quantity;not null"`
	Cost         decimal.Decimal `gorm:"column:cost;type:numeric(12,2);not null"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	ItemDiscount decimal.Decimal `gorm:"column:item_discount;type:numeric(12,2);not null;default:0"`
	LineTotal    decimal.Decimal `gorm:"column:line_total;type:numeric(12,2);not null"`
	LineProfit   decimal.Decimal `gorm:"column:line_profit;type:numeric(12,2);not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
