// Package finance holds the pure money arithmetic every ingestion path must
// reproduce identically. All functions are stateless; callers pass values in
// and get decimals out, no rounding beyond what decimal arithmetic implies.
package finance

import "github.com/shopspring/decimal"

// Item is the minimal shape the calculator needs from an order line.
type Item struct {
	Quantity     int
	Cost         decimal.Decimal
	Price        decimal.Decimal
	ItemDiscount decimal.Decimal
}

// LineTotal returns (price - itemDiscount) * quantity.
func LineTotal(item Item) decimal.Decimal {
	qty := decimal.NewFromInt(int64(item.Quantity))
	return item.Price.Sub(item.ItemDiscount).Mul(qty)
}

// LineProfit returns (price - itemDiscount - cost) * quantity.
func LineProfit(item Item) decimal.Decimal {
	qty := decimal.NewFromInt(int64(item.Quantity))
	return item.Price.Sub(item.ItemDiscount).Sub(item.Cost).Mul(qty)
}

// OrderSubtotal sums LineTotal over the items.
func OrderSubtotal(items []Item) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(LineTotal(item))
	}
	return subtotal
}

// OrderTotal returns subtotal + shipping - discount - deposit.
func OrderTotal(items []Item, shippingCost, discount, deposit decimal.Decimal) decimal.Decimal {
	return OrderSubtotal(items).Add(shippingCost).Sub(discount).Sub(deposit)
}

// ProfitItemsOnly sums LineProfit over the items without charging shipping
// against it. Kept for reporting; not the stored figure.
func ProfitItemsOnly(items []Item) decimal.Decimal {
	profit := decimal.Zero
	for _, item := range items {
		profit = profit.Add(LineProfit(item))
	}
	return profit
}

// ProfitNetOfShipping is the canonical stored profit: item profit minus the
// shipping cost the tenant absorbs.
func ProfitNetOfShipping(items []Item, shippingCost decimal.Decimal) decimal.Decimal {
	return ProfitItemsOnly(items).Sub(shippingCost)
}
