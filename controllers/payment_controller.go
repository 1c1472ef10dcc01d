package controllers

import (
	"context"
	"errors"
	"mobile-shop/config"
	"mobile-shop/models"
	"mobile-shop/repositories"
	"mobile-shop/services"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

type PaymentController struct {
	cartRepo *repositories.CartRepository
	cartSvc  *services.CartService
}

func NewPaymentController() *PaymentController {
	return &PaymentController{
		cartRepo: repositories.NewCartRepository(),
		cartSvc:  services.NewCartServiceWithConfig(services.PricingConfigFromEnv()),
	}
}

// GetStripeKey godoc
// @Summary Get Stripe publishable key
// @Description Get the publishable key the client needs to collect card details
// @Tags Payment
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /payment/stripe-key [get]
func (ctrl *PaymentController) GetStripeKey(c *gin.Context) {
	c.JSON(200, gin.H{
		"success": true,
		"message": "Stripe key retrieved",
		"data":    gin.H{"stripe_api_key": config.Get().StripePublishableKey},
	})
}

// CreatePaymentIntent godoc
// @Summary Create payment intent
// @Description Create a Stripe payment intent for the current cart total
// @Tags Payment
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /payment/process [post]
func (ctrl *PaymentController) CreatePaymentIntent(c *gin.Context) {
	userID := c.GetInt("user_id")

	cart, err := ctrl.cartRepo.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCartStoreUnavailable) {
			c.JSON(503, gin.H{"success": false, "message": "Cart store unavailable"})
		} else {
			c.JSON(500, gin.H{"success": false, "message": "Failed to load cart"})
		}
		return
	}

	if cart.IsEmpty() {
		c.JSON(400, gin.H{"success": false, "message": "Cart is empty"})
		return
	}

	ctrl.cartSvc.RecomputeTotals(cart)

	stripe.Key = config.Get().StripeSecretKey

	// Stripe amounts are in the smallest currency unit.
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(cart.Total * 100),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		Metadata: map[string]string{"company": "MobiCommerce"},
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Payment processing failed"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Payment intent created",
		"data":    gin.H{"client_secret": pi.ClientSecret, "amount": cart.Total},
	})
}

// ApplyCoupon godoc
// @Summary Apply coupon
// @Description Validate a coupon code and report its discount amount
// @Tags Payment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ApplyCouponRequest true "Coupon Request"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /payment/coupon/apply [post]
func (ctrl *PaymentController) ApplyCoupon(c *gin.Context) {
	var req models.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Coupon code is required"})
		return
	}

	var coupon models.Coupon
	err := models.DB.QueryRow(context.Background(),
		"SELECT id, code, amount, is_active, created_at FROM coupons WHERE code = $1 AND is_active = true",
		strings.ToUpper(strings.TrimSpace(req.Code))).
		Scan(&coupon.ID, &coupon.Code, &coupon.Amount, &coupon.IsActive, &coupon.CreatedAt)

	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Coupon is invalid or expired"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Coupon applied", "data": coupon})
}

// CreateCoupon godoc
// @Summary Create coupon
// @Description Create a new discount coupon (Admin)
// @Tags Admin - Coupons
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CouponRequest true "Coupon Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/coupons [post]
func (ctrl *PaymentController) CreateCoupon(c *gin.Context) {
	var req models.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	var exists int
	models.DB.QueryRow(context.Background(), "SELECT COUNT(*) FROM coupons WHERE code=$1", code).Scan(&exists)
	if exists > 0 {
		c.JSON(400, gin.H{"success": false, "message": "Coupon code already exists"})
		return
	}

	var coupon models.Coupon
	err := models.DB.QueryRow(context.Background(),
		"INSERT INTO coupons (code, amount, is_active, created_at) VALUES ($1, $2, true, $3) RETURNING id, code, amount, is_active, created_at",
		code, req.Amount, time.Now()).
		Scan(&coupon.ID, &coupon.Code, &coupon.Amount, &coupon.IsActive, &coupon.CreatedAt)

	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create coupon"})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Coupon created", "data": coupon})
}

// GetAllCoupons godoc
// @Summary Get all coupons
// @Description Get all coupons (Admin)
// @Tags Admin - Coupons
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/coupons [get]
func (ctrl *PaymentController) GetAllCoupons(c *gin.Context) {
	rows, err := models.DB.Query(context.Background(),
		"SELECT id, code, amount, is_active, created_at FROM coupons ORDER BY created_at DESC")
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get coupons"})
		return
	}
	defer rows.Close()

	coupons := []models.Coupon{}
	for rows.Next() {
		var coupon models.Coupon
		if err := rows.Scan(&coupon.ID, &coupon.Code, &coupon.Amount, &coupon.IsActive, &coupon.CreatedAt); err != nil {
			continue
		}
		coupons = append(coupons, coupon)
	}

	c.JSON(200, gin.H{"success": true, "message": "Coupons retrieved", "data": coupons})
}

// DeleteCoupon godoc
// @Summary Delete coupon
// @Description Delete a coupon (Admin)
// @Tags Admin - Coupons
// @Security BearerAuth
// @Produce json
// @Param id path int true "Coupon ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/coupons/{id} [delete]
func (ctrl *PaymentController) DeleteCoupon(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	tag, err := models.DB.Exec(context.Background(), "DELETE FROM coupons WHERE id=$1", id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete coupon"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Coupon not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Coupon deleted"})
}
