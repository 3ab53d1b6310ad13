package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLineMathWorkedExample(t *testing.T) {
	// Two frames at 100 with a 10 discount, cost 50 each.
	item := Item{Quantity: 2, Cost: dec("50"), Price: dec("100"), ItemDiscount: dec("10")}

	assert.True(t, LineTotal(item).Equal(dec("180")), "line total, got %s", LineTotal(item))
	assert.True(t, LineProfit(item).Equal(dec("80")), "line profit, got %s", LineProfit(item))

	items := []Item{item}
	total := OrderTotal(items, dec("30"), decimal.Zero, dec("20"))
	assert.True(t, total.Equal(dec("190")), "order total, got %s", total)
}

func TestLineTotalWithoutDiscount(t *testing.T) {
	item := Item{Quantity: 3, Cost: dec("20"), Price: dec("45.50")}
	assert.True(t, LineTotal(item).Equal(dec("136.50")))
	assert.True(t, LineProfit(item).Equal(dec("76.50")))
}

func TestOrderSubtotalIsPure(t *testing.T) {
	items := []Item{
		{Quantity: 1, Cost: dec("10"), Price: dec("25")},
		{Quantity: 4, Cost: dec("5"), Price: dec("12.25"), ItemDiscount: dec("0.25")},
	}

	first := OrderSubtotal(items)
	second := OrderSubtotal(items)
	require.True(t, first.Equal(second), "subtotal must be stable across calls")
	assert.True(t, first.Equal(dec("73")), "got %s", first)
}

func TestProfitVariants(t *testing.T) {
	items := []Item{
		{Quantity: 2, Cost: dec("50"), Price: dec("100"), ItemDiscount: dec("10")},
		{Quantity: 1, Cost: dec("30"), Price: dec("60")},
	}
	shipping := dec("30")

	itemsOnly := ProfitItemsOnly(items)
	net := ProfitNetOfShipping(items, shipping)

	assert.True(t, itemsOnly.Equal(dec("110")), "got %s", itemsOnly)
	assert.True(t, net.Equal(dec("80")), "got %s", net)
	assert.True(t, net.Equal(itemsOnly.Sub(shipping)), "variants must differ by exactly the shipping cost")
}

func TestOrderTotalAppliesDiscountAndDeposit(t *testing.T) {
	items := []Item{{Quantity: 1, Cost: dec("10"), Price: dec("100")}}
	total := OrderTotal(items, dec("15"), dec("25"), dec("40"))
	assert.True(t, total.Equal(dec("50")), "got %s", total)
}

func TestEmptyItemList(t *testing.T) {
	assert.True(t, OrderSubtotal(nil).Equal(decimal.Zero))
	assert.True(t, ProfitItemsOnly(nil).Equal(decimal.Zero))
	assert.True(t, ProfitNetOfShipping(nil, dec("30")).Equal(dec("-30")))
}
