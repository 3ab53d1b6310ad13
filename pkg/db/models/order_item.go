package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem captures the snapshot of one line within an order.
type OrderItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID      uuid.UUID       `gorm:"column:order_id;type:uuid;not null"`
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
