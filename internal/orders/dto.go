package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omarkhalil/framecraft-backend/pkg/db/models"
	"github.com/omarkhalil/framecraft-backend/pkg/enums"
)

// CreateOrderInput is the normalized order shape both ingestion paths hand
// to the coordinator: the dashboard form and the webhook gateway map into
// it so validation and arithmetic cannot diverge between them.
type CreateOrderInput struct {
	TenantID       uuid.UUID
	CustomerName   string
	Phone          string
	Email          *string
	DeliveryMethod string
	Address        *string
	Governorate    *string
	PaymentMethod  string
	ShippingCost   decimal.Decimal
	Discount       decimal.Decimal
	Deposit        decimal.Decimal
	Source         enums.OrderSource
	Items          []CreateOrderItemInput
}

// CreateOrderItemInput carries one raw order line before derivation.
type CreateOrderItemInput struct {
	ProductType  string
	Size         string
	Quantity     int
	Cost         decimal.Decimal
	Price        decimal.Decimal
	ItemDiscount decimal.Decimal
}

// OrderList is one page of orders plus the cursor for the next page.
type OrderList struct {
	Orders     []models.Order `json:"orders"`
	NextCursor *string        `json:"next_cursor,omitempty"`
}
