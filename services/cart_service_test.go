package services

import (
	"mobile-shop/models"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phone(id int, price int64, stock int) models.LineItem {
	return models.LineItem{
		ProductID:  id,
		Title:      "Test Phone",
		ImageURL:   "https://example.test/phone.png",
		UnitPrice:  price,
		StockLimit: stock,
	}
}

func TestAddItemDistinctProducts(t *testing.T) {
	svc := NewCartService()
	cart := models.NewCart()

	svc.AddItem(cart, phone(1, 500, 10), 1)
	svc.AddItem(cart, phone(2, 700, 10), 2)
	svc.AddItem(cart, phone(3, 900, 10), 1)

	require.Len(t, cart.LineItems, 3)
	assert.Equal(t, 1, cart.LineItems[0].Quantity)
	assert.Equal(t, 2, cart.LineItems[1].Quantity)
	assert.Equal(t, 1, cart.LineItems[2].Quantity)

	// insertion order is display order
	assert.Equal(t, []int{1, 2, 3}, []int{
		cart.LineItems[0].ProductID,
		cart.LineItems[1].ProductID,
		cart.LineItems[2].ProductID,
	})
}

func TestAddItemMergesByProductID(t *testing.T) {
	svc := NewCartService()
	cart := models.NewCart()

	svc.AddItem(cart, phone(1, 500, 10), 1)
	svc.AddItem(cart, phone(1, 500, 10), 1)
	svc.AddItem(cart, phone(1, 500, 10), 3)

	require.Len(t, cart.LineItems, 1)
	assert.Equal(t, 5, cart.LineItems[0].Quantity)
}

func TestAddItemKeepsSnapshottedPrice(t *testing.T) {
	svc := NewCartService()
	cart := models.NewCart()

	svc.AddItem(cart, phone(1, 500, 10), 1)
	// catalog price changed between the two adds
	svc.AddItem(cart, phone(1, 650, 10), 1)

	require.Len(t, cart.LineItems, 1)
	assert.Equal(t, int64(500), cart.LineItems[0].UnitPrice)
	assert.Equal(t, 2, cart.LineItems[0].Quantity)
}

func TestAddItemQuantityBelowOneCountsAsOne(t *testing.T) {
	svc := NewCartService()
	cart := models.NewCart()

	svc.AddItem(cart, phone(1, 500, 10), 0)
	svc.AddItem(cart, phone(2, 700, 10), -3)

	require.Len(t, cart.LineItems, 2)
	assert.Equal(t, 1, cart.LineItems[0].Quantity)
	assert.Equal(t, 1, cart.LineItems[1].Quantity)
}

func TestAddItemDoesNotEnforceStockLimit(t *testing.T) {
	// The bound lives in CanAdd; AddItem applies the increment
	// unconditionally even past the snapshotted stock.
	svc := NewCartService()
	cart := models.NewCart()

	svc.AddItem(cart, phone(1, 500, 2), 5)

	require.Len(t, cart.LineItems, 1)
	assert.Equal(t, 5, cart.LineItems[0].Quantity)
}

func TestCanAdd(t *testing.T) {
	svc := NewCartService()
	cart := models.NewCart()

	assert.True(t, svc.CanAdd(cart, 1, 3, 3))
	assert.False(t, svc.CanAdd(cart, 1, 3, 4))

	svc.AddItem(cart, phone(1, 500, 3), 2)

	assert.True(t, svc.CanAdd(cart, 1, 3, 1))
	assert.False(t, svc.CanAdd(cart, 1, 3, 2))

	// a zero or negative increment counts as one
	assert.True(t, svc.CanAdd(cart, 1, 3, 0))
	assert.False(t, svc.CanAdd(cart, 1, 2, 0))
}

func TestDecrementItemFloorsAtOne(t *testing.T) {
	svc := NewCartService()
	cart := models.NewCart()

	svc.AddItem(cart, phone(1, 500, 10), 3)

	svc.DecrementItem(cart, 1)
	svc.DecrementItem(cart, 1)
	assert.Equal(t, 1, cart.LineItems[0].Quantity)

	// repeated decrements at quantity one leave the cart unchanged
	svc.DecrementItem(cart, 1)
	svc.DecrementItem(cart, 1)
	require.Len(t, cart.LineItems, 1)
	assert.Equal(t, 1, cart.LineItems[0].Quantity)
}

func TestDecrementItemUnknownProductIsNoop(t *testing.T) {
	svc := NewCartService()
	cart := models.NewCart()

	svc.AddItem(cart, phone(1, 500, 10), 2)
	svc.DecrementItem(cart, 99)

	assert.Equal(t, 2, cart.LineItems[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	svc := NewCartService()
	cart := models.NewCart()

	svc.AddItem(cart, phone(1, 500, 10), 4)
	svc.AddItem(cart, phone(2, 700, 10), 1)

	svc.RemoveItem(cart, 1)
	require.Len(t, cart.LineItems, 1)
	assert.Equal(t, 2, cart.LineItems[0].ProductID)

	svc.RemoveItem(cart, 99)
	assert.Len(t, cart.LineItems, 1)
}

func TestRemoveThenAddStartsFresh(t *testing.T) {
	svc := NewCartService()
	cart := models.NewCart()

	svc.AddItem(cart, phone(1, 500, 10), 4)
	svc.RemoveItem(cart, 1)
	svc.AddItem(cart, phone(1, 500, 10), 2)

	require.Len(t, cart.LineItems, 1)
	assert.Equal(t, 2, cart.LineItems[0].Quantity)
}

func TestRecomputeTotalsIdempotent(t *testing.T) {
	svc := NewCartService()
	cart := models.NewCart()

	svc.AddItem(cart, phone(1, 1234, 10), 3)
	svc.AddItem(cart, phone(2, 567, 10), 2)

	svc.RecomputeTotals(cart)
	first := *cart
	svc.RecomputeTotals(cart)

	assert.Equal(t, first.Subtotal, cart.Subtotal)
	assert.Equal(t, first.ShippingCharge, cart.ShippingCharge)
	assert.Equal(t, first.Tax, cart.Tax)
	assert.Equal(t, first.Discount, cart.Discount)
	assert.Equal(t, first.Total, cart.Total)
}

func TestTotalIdentityHolds(t *testing.T) {
	svc := NewCartService()

	carts := [][]struct {
		price int64
		qty   int
	}{
		{},
		{{price: 1, qty: 1}},
		{{price: 999, qty: 1}},
		{{price: 500, qty: 3}, {price: 700, qty: 2}},
		{{price: 2500, qty: 2}, {price: 100, qty: 7}},
		{{price: 1999, qty: 5}, {price: 349, qty: 1}, {price: 49, qty: 9}},
	}

	for _, items := range carts {
		cart := models.NewCart()
		for i, it := range items {
			svc.AddItem(cart, phone(i+1, it.price, 100), it.qty)
		}
		svc.RecomputeTotals(cart)

		assert.Equal(t, cart.Subtotal+cart.ShippingCharge+cart.Tax-cart.Discount, cart.Total)
		assert.GreaterOrEqual(t, cart.Total, int64(0))
	}
}

func TestShippingTierBoundaries(t *testing.T) {
	svc := NewCartService()

	cases := []struct {
		name     string
		subtotal int64
		shipping int64
	}{
		{"zero", 0, 200},
		{"just below mid tier", 999, 200},
		{"exactly at mid tier", 1000, 100},
		{"just below free tier", 1999, 100},
		{"exactly at free tier", 2000, 0},
		{"well above free tier", 10000, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cart := models.NewCart()
			if tc.subtotal > 0 {
				svc.AddItem(cart, phone(1, tc.subtotal, 100), 1)
			}
			svc.RecomputeTotals(cart)
			assert.Equal(t, tc.subtotal, cart.Subtotal)
			assert.Equal(t, tc.shipping, cart.ShippingCharge)
		})
	}
}

func TestDiscountThresholdIsStrict(t *testing.T) {
	svc := NewCartService()

	// exactly at the threshold earns nothing; one unit above does
	cart := models.NewCart()
	svc.AddItem(cart, phone(1, 5000, 100), 1)
	svc.RecomputeTotals(cart)
	assert.Equal(t, int64(0), cart.Discount)

	cart = models.NewCart()
	svc.AddItem(cart, phone(1, 5001, 100), 1)
	svc.RecomputeTotals(cart)
	assert.Equal(t, int64(500), cart.Discount) // round(500.1)
	assert.Equal(t, int64(600), cart.Tax)      // round(600.12)
	assert.Equal(t, int64(5101), cart.Total)
}

func TestTaxRoundsHalfUp(t *testing.T) {
	// a 0.5 rate makes the half-way case easy to hit
	svc := NewCartServiceWithConfig(PricingConfig{
		BaseShipping:      0,
		TaxRate:           decimal.NewFromFloat(0.5),
		DiscountRate:      decimal.NewFromFloat(0.10),
		DiscountThreshold: 1 << 40,
	})

	cart := models.NewCart()
	svc.AddItem(cart, phone(1, 5, 100), 1)
	svc.RecomputeTotals(cart)

	// 5 * 0.5 = 2.5 rounds up, not to even
	assert.Equal(t, int64(3), cart.Tax)
}

func TestWorkedExample(t *testing.T) {
	svc := NewCartService()
	cart := models.NewCart()

	svc.AddItem(cart, phone(1, 500, 3), 1)
	svc.RecomputeTotals(cart)
	assert.Equal(t, int64(500), cart.Subtotal)

	svc.AddItem(cart, phone(1, 500, 3), 1)
	svc.AddItem(cart, phone(1, 500, 3), 1)
	svc.RecomputeTotals(cart)

	assert.Equal(t, int64(1500), cart.Subtotal)
	assert.Equal(t, int64(100), cart.ShippingCharge)
	assert.Equal(t, int64(180), cart.Tax)
	assert.Equal(t, int64(0), cart.Discount)
	assert.Equal(t, int64(1780), cart.Total)
}

func TestSetShippingAddress(t *testing.T) {
	svc := NewCartService()
	cart := models.NewCart()

	addr := models.ShippingAddress{
		Address:    "221B Baker Street",
		City:       "Mumbai",
		State:      "MH",
		Country:    "India",
		PostalCode: "400001",
	}
	svc.SetShippingAddress(cart, addr)
	assert.Equal(t, addr, cart.ShippingAddress)

	// wholesale replace, no merging
	svc.SetShippingAddress(cart, models.ShippingAddress{Address: "1 New Road"})
	assert.Equal(t, "1 New Road", cart.ShippingAddress.Address)
	assert.Empty(t, cart.ShippingAddress.City)
}

func TestResetCart(t *testing.T) {
	svc := NewCartService()
	cart := models.NewCart()

	svc.AddItem(cart, phone(1, 5001, 100), 2)
	svc.SetShippingAddress(cart, models.ShippingAddress{Address: "somewhere"})
	svc.RecomputeTotals(cart)
	require.NotZero(t, cart.Total)

	svc.ResetCart(cart)

	assert.Empty(t, cart.LineItems)
	assert.Zero(t, cart.Subtotal)
	assert.Zero(t, cart.ShippingCharge)
	assert.Zero(t, cart.Tax)
	assert.Zero(t, cart.Discount)
	assert.Zero(t, cart.Total)
	assert.True(t, cart.ShippingAddress.IsEmpty())
}

func TestEmptyCartTotals(t *testing.T) {
	svc := NewCartService()
	cart := models.NewCart()

	svc.RecomputeTotals(cart)

	assert.Zero(t, cart.Subtotal)
	assert.Equal(t, int64(200), cart.ShippingCharge)
	assert.Zero(t, cart.Tax)
	assert.Zero(t, cart.Discount)
	assert.Equal(t, int64(200), cart.Total)
}

func TestTiersSortedOnConstruction(t *testing.T) {
	// config listed lowest first still resolves highest threshold first
	svc := NewCartServiceWithConfig(PricingConfig{
		ShippingTiers: []ShippingTier{
			{MinSubtotal: 1000, Charge: 100},
			{MinSubtotal: 2000, Charge: 0},
		},
		BaseShipping:      200,
		TaxRate:           decimal.NewFromFloat(0.12),
		DiscountRate:      decimal.NewFromFloat(0.10),
		DiscountThreshold: 5000,
	})

	cart := models.NewCart()
	svc.AddItem(cart, phone(1, 2500, 100), 1)
	svc.RecomputeTotals(cart)
	assert.Equal(t, int64(0), cart.ShippingCharge)
}
