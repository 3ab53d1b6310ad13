package enums

import "fmt"

// OrderStatus tracks the lifecycle of a tenant order, including the
// print-workshop states between confirmation and shipping.
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusConfirmed    OrderStatus = "confirmed"
	OrderStatusProcessing   OrderStatus = "processing"
	OrderStatusReadyToPrint OrderStatus = "ready_to_print"
	OrderStatusPrinting     OrderStatus = "printing"
	OrderStatusPrinted      OrderStatus = "printed"
	OrderStatusShipped      OrderStatus = "shipped"
	OrderStatusDelivered    OrderStatus = "delivered"
	OrderStatusCancelled    OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusReadyToPrint,
	OrderStatusPrinting,
	OrderStatusPrinted,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
