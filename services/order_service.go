package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mobile-shop/models"
	"mobile-shop/repositories"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrMissingAddress = errors.New("shipping address is required")
)

// StockError reports a line item whose quantity exceeds live inventory at
// checkout time.
type StockError struct {
	Title     string
	Available int
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: %d requested, %d available", e.Title, e.Requested, e.Available)
}

// OrderService turns a cart into a persisted order. Totals come from the
// same pricing engine the cart endpoints use, computed over the cart's
// snapshotted prices, so the amount charged matches what the customer saw.
type OrderService struct {
	cartRepo  *repositories.CartRepository
	orderRepo *repositories.OrderRepository
	cartSvc   *CartService
}

func NewOrderService(cartSvc *CartService) *OrderService {
	return &OrderService{
		cartRepo:  repositories.NewCartRepository(),
		orderRepo: repositories.NewOrderRepository(),
		cartSvc:   cartSvc,
	}
}

// Checkout validates the cart against live inventory, recomputes totals,
// writes the order and its items in one transaction, decrements stock, and
// resets the cart only after the commit succeeded.
func (s *OrderService) Checkout(ctx context.Context, userID int, req models.CheckoutRequest) (*models.Order, error) {
	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.ShippingAddress != nil {
		s.cartSvc.SetShippingAddress(cart, models.ShippingAddress{
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			State:      req.ShippingAddress.State,
			Country:    req.ShippingAddress.Country,
			PostalCode: req.ShippingAddress.PostalCode,
		})
	}

	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if cart.ShippingAddress.IsEmpty() {
		return nil, ErrMissingAddress
	}

	tx, err := models.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	for _, item := range cart.LineItems {
		var title string
		var stock int
		err := tx.QueryRow(ctx,
			"SELECT title, stock FROM products WHERE id=$1 AND is_active=true FOR UPDATE",
			item.ProductID).Scan(&title, &stock)
		if err != nil {
			return nil, fmt.Errorf("product %q is no longer available", item.Title)
		}
		if stock < item.Quantity {
			return nil, &StockError{Title: title, Available: stock, Requested: item.Quantity}
		}
	}

	s.cartSvc.RecomputeTotals(cart)

	orderNum := "ORD-" + strings.ToUpper(uuid.NewString()[:8])
	now := time.Now()

	var orderID int
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (order_number, user_id, status, subtotal, shipping_charge, tax, discount, total,
		 address, city, state, country, postal_code, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15) RETURNING id`,
		orderNum, userID, models.OrderStatusProcessing,
		cart.Subtotal, cart.ShippingCharge, cart.Tax, cart.Discount, cart.Total,
		cart.ShippingAddress.Address, cart.ShippingAddress.City, cart.ShippingAddress.State,
		cart.ShippingAddress.Country, cart.ShippingAddress.PostalCode,
		now, now).Scan(&orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	items := make([]models.OrderItem, 0, len(cart.LineItems))
	for _, item := range cart.LineItems {
		var itemID int
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, title, image_url, unit_price, quantity)
			 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
			orderID, item.ProductID, item.Title, item.ImageURL, item.UnitPrice, item.Quantity).Scan(&itemID)
		if err != nil {
			return nil, fmt.Errorf("failed to create order items: %w", err)
		}

		_, err = tx.Exec(ctx,
			"UPDATE products SET stock = stock - $1, updated_at = $2 WHERE id = $3",
			item.Quantity, now, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to update stock: %w", err)
		}

		items = append(items, models.OrderItem{
			ID:        itemID,
			OrderID:   orderID,
			ProductID: item.ProductID,
			Title:     item.Title,
			ImageURL:  item.ImageURL,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	order := &models.Order{
		ID:              orderID,
		OrderNumber:     orderNum,
		UserID:          userID,
		Status:          models.OrderStatusProcessing,
		Subtotal:        cart.Subtotal,
		ShippingCharge:  cart.ShippingCharge,
		Tax:             cart.Tax,
		Discount:        cart.Discount,
		Total:           cart.Total,
		ShippingAddress: cart.ShippingAddress,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// the order is committed; the cart reset must not fail the checkout
	if err := s.cartRepo.Delete(ctx, userID); err != nil {
		log.Println("Failed to clear cart after checkout:", err)
	}

	s.sendConfirmation(userID, order)

	return order, nil
}

func (s *OrderService) sendConfirmation(userID int, order *models.Order) {
	emailSvc, err := models.NewEmailService()
	if err != nil {
		log.Println("Email service not configured, skipping order confirmation")
		return
	}

	var email string
	err = models.DB.QueryRow(context.Background(),
		"SELECT email FROM users WHERE id=$1", userID).Scan(&email)
	if err != nil || email == "" {
		return
	}

	go func() {
		if err := emailSvc.SendOrderConfirmationEmail(email, order); err != nil {
			log.Println("Failed to send order confirmation:", err)
		}
	}()
}
