package services

import (
	"mobile-shop/config"
	"mobile-shop/models"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ShippingTier maps a minimum subtotal to the shipping charge for orders at
// or above it.
type ShippingTier struct {
	MinSubtotal int64
	Charge      int64
}

// PricingConfig holds the threshold table and rates used to derive cart
// totals. Tiers are evaluated highest threshold first; a subtotal exactly at
// a threshold gets that tier's charge. Subtotals below every tier pay
// BaseShipping.
type PricingConfig struct {
	ShippingTiers     []ShippingTier
	BaseShipping      int64
	TaxRate           decimal.Decimal
	DiscountRate      decimal.Decimal
	DiscountThreshold int64
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		ShippingTiers: []ShippingTier{
			{MinSubtotal: 2000, Charge: 0},
			{MinSubtotal: 1000, Charge: 100},
		},
		BaseShipping:      200,
		TaxRate:           decimal.NewFromFloat(0.12),
		DiscountRate:      decimal.NewFromFloat(0.10),
		DiscountThreshold: 5000,
	}
}

// PricingConfigFromEnv builds the engine configuration from the loaded
// application config. Malformed rates fall back to the defaults.
func PricingConfigFromEnv() PricingConfig {
	cfg := DefaultPricingConfig()
	app := config.AppConfig
	if app == nil {
		return cfg
	}

	if rate, err := decimal.NewFromString(app.TaxRate); err == nil {
		cfg.TaxRate = rate
	}
	if rate, err := decimal.NewFromString(app.DiscountRate); err == nil {
		cfg.DiscountRate = rate
	}
	cfg.ShippingTiers = []ShippingTier{
		{MinSubtotal: app.FreeShippingMin, Charge: 0},
		{MinSubtotal: app.MidShippingMin, Charge: app.MidShippingCharge},
	}
	cfg.BaseShipping = app.BaseShipping
	cfg.DiscountThreshold = app.DiscountThreshold
	return cfg
}

// CartService mutates a caller-owned cart and derives its monetary fields.
// It performs no I/O: prices and stock levels arrive as snapshots on the
// line items, and persistence belongs to the cart repository.
type CartService struct {
	cfg PricingConfig
}

func NewCartService() *CartService {
	return NewCartServiceWithConfig(DefaultPricingConfig())
}

func NewCartServiceWithConfig(cfg PricingConfig) *CartService {
	tiers := make([]ShippingTier, len(cfg.ShippingTiers))
	copy(tiers, cfg.ShippingTiers)
	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].MinSubtotal > tiers[j].MinSubtotal
	})
	cfg.ShippingTiers = tiers
	return &CartService{cfg: cfg}
}

// CanAdd reports whether qty more units of a product fit under stockLimit
// given what the cart already holds. AddItem itself never applies this
// bound; handlers call CanAdd first with the live stock level.
func (s *CartService) CanAdd(cart *models.Cart, productID, stockLimit, qty int) bool {
	if qty < 1 {
		qty = 1
	}
	current := 0
	if item := cart.FindItem(productID); item != nil {
		current = item.Quantity
	}
	return current+qty <= stockLimit
}

// AddItem merges qty units into an existing line item or appends a new one
// at the end of the list. A qty below 1 counts as 1. UnitPrice of an
// existing line item is kept; the price was snapshotted when the product was
// first added. Totals are stale until RecomputeTotals runs.
func (s *CartService) AddItem(cart *models.Cart, item models.LineItem, qty int) {
	if qty < 1 {
		qty = 1
	}

	if existing := cart.FindItem(item.ProductID); existing != nil {
		existing.Quantity += qty
		existing.StockLimit = item.StockLimit
	} else {
		item.Quantity = qty
		cart.LineItems = append(cart.LineItems, item)
	}
	cart.UpdatedAt = time.Now()
}

// DecrementItem lowers a line item's quantity by one, never below 1.
// Removing the last unit is a separate, explicit RemoveItem call.
func (s *CartService) DecrementItem(cart *models.Cart, productID int) {
	item := cart.FindItem(productID)
	if item == nil || item.Quantity <= 1 {
		return
	}
	item.Quantity--
	cart.UpdatedAt = time.Now()
}

// RemoveItem drops the line item entirely regardless of quantity. No-op if
// the product is not in the cart.
func (s *CartService) RemoveItem(cart *models.Cart, productID int) {
	for i := range cart.LineItems {
		if cart.LineItems[i].ProductID == productID {
			cart.LineItems = append(cart.LineItems[:i], cart.LineItems[i+1:]...)
			cart.UpdatedAt = time.Now()
			return
		}
	}
}

// RecomputeTotals derives subtotal, shipping, tax, discount and total from
// the current line items. It reads nothing else and is idempotent: calling
// it twice without an intervening mutation yields identical figures.
func (s *CartService) RecomputeTotals(cart *models.Cart) {
	var subtotal int64
	for _, item := range cart.LineItems {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}

	cart.Subtotal = subtotal
	cart.ShippingCharge = s.shippingFor(subtotal)
	cart.Tax = roundRate(subtotal, s.cfg.TaxRate)

	if subtotal > s.cfg.DiscountThreshold {
		cart.Discount = roundRate(subtotal, s.cfg.DiscountRate)
	} else {
		cart.Discount = 0
	}

	cart.Total = cart.Subtotal + cart.ShippingCharge + cart.Tax - cart.Discount
}

func (s *CartService) SetShippingAddress(cart *models.Cart, addr models.ShippingAddress) {
	cart.ShippingAddress = addr
	cart.UpdatedAt = time.Now()
}

// ResetCart returns the cart to its empty initial state: no line items, zero
// totals, empty address.
func (s *CartService) ResetCart(cart *models.Cart) {
	*cart = *models.NewCart()
}

func (s *CartService) shippingFor(subtotal int64) int64 {
	for _, tier := range s.cfg.ShippingTiers {
		if subtotal >= tier.MinSubtotal {
			return tier.Charge
		}
	}
	return s.cfg.BaseShipping
}

// roundRate multiplies amount by rate and rounds half up to a whole currency
// unit. Tax and discount share this rule so the total stays reproducible.
func roundRate(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Round(0).IntPart()
}
