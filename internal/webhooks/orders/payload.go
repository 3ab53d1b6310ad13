package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	orderscore "github.com/omarkhalil/framecraft-backend/internal/orders"
	"github.com/omarkhalil/framecraft-backend/pkg/enums"
)

// Payload is the external webhook body. Field names are part of the public
// integration contract and must not change.
type Payload struct {
	WebhookKey     string          `json:"webhook_key"`
	PaymentMethod  string          `json:"paymentMethod"`
	ClientName     string          `json:"clientName"`
	Phone          string          `json:"phone"`
	DeliveryMethod string          `json:"deliveryMethod"`
	Address        *string         `json:"address,omitempty"`
	Governorate    *string         `json:"governorate,omitempty"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	Deposit        decimal.Decimal `json:"deposit"`
	Items          []ItemPayload   `json:"items"`
}

// ItemPayload is one order line in the webhook body.
type ItemPayload struct {
	ProductType  string          `json:"productType"`
	Size         string          `json:"size"`
	Quantity     int             `json:"quantity"`
	Cost         decimal.Decimal `json:"cost"`
	Price        decimal.Decimal `json:"price"`
	ItemDiscount decimal.Decimal `json:"itemDiscount"`
}

// toCreateInput maps the external shape onto the shared intake input.
func (p Payload) toCreateInput(tenantID uuid.UUID) orderscore.CreateOrderInput {
	items := make([]orderscore.CreateOrderItemInput, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, orderscore.CreateOrderItemInput{
			ProductType:  item.ProductType,
			Size:         item.Size,
			Quantity:     item.Quantity,
			Cost:         item.Cost,
			Price:        item.Price,
			ItemDiscount: item.ItemDiscount,
		})
	}
	return orderscore.CreateOrderInput{
		TenantID:       tenantID,
		CustomerName:   p.ClientName,
		Phone:          p.Phone,
		DeliveryMethod: p.DeliveryMethod,
		Address:        p.Address,
		Governorate:    p.Governorate,
		PaymentMethod:  p.PaymentMethod,
		ShippingCost:   p.ShippingCost,
		Deposit:        p.Deposit,
		Source:         enums.OrderSourceWebhook,
		Items:          items,
	}
}
