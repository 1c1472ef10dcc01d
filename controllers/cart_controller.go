package controllers

import (
	"errors"
	"mobile-shop/models"
	"mobile-shop/repositories"
	"mobile-shop/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartRepo    *repositories.CartRepository
	productRepo *repositories.ProductRepository
	cartSvc     *services.CartService
}

func NewCartController() *CartController {
	return &CartController{
		cartRepo:    repositories.NewCartRepository(),
		productRepo: repositories.NewProductRepository(),
		cartSvc:     services.NewCartServiceWithConfig(services.PricingConfigFromEnv()),
	}
}

func (ctrl *CartController) loadCart(c *gin.Context, userID int) (*models.Cart, bool) {
	cart, err := ctrl.cartRepo.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCartStoreUnavailable) {
			c.JSON(503, gin.H{"success": false, "message": "Cart store unavailable"})
		} else {
			c.JSON(500, gin.H{"success": false, "message": "Failed to load cart"})
		}
		return nil, false
	}
	return cart, true
}

func (ctrl *CartController) saveAndRespond(c *gin.Context, userID int, cart *models.Cart, message string) {
	ctrl.cartSvc.RecomputeTotals(cart)

	if err := ctrl.cartRepo.Save(c.Request.Context(), userID, cart); err != nil {
		c.JSON(503, gin.H{"success": false, "message": "Cart store unavailable"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": message, "data": cart})
}

// GetCart godoc
// @Summary Get cart
// @Description Get the current user's cart with computed totals
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	cart, ok := ctrl.loadCart(c, userID)
	if !ok {
		return
	}

	ctrl.cartSvc.RecomputeTotals(cart)
	c.JSON(200, gin.H{"success": true, "message": "Cart retrieved", "data": cart})
}

// AddItem godoc
// @Summary Add item to cart
// @Description Add a product to the cart, merging quantities for a product already present
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddCartItemRequest true "Add Item Request"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	product, err := ctrl.productRepo.GetByID(req.ProductID)
	if err != nil || !product.IsActive {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	cart, ok := ctrl.loadCart(c, userID)
	if !ok {
		return
	}

	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}

	if !ctrl.cartSvc.CanAdd(cart, product.ID, product.Stock, qty) {
		c.JSON(400, gin.H{"success": false, "message": "Requested quantity exceeds available stock"})
		return
	}

	imageURL := ""
	if len(product.Images) > 0 {
		imageURL = product.Images[0].URL
	}

	ctrl.cartSvc.AddItem(cart, models.LineItem{
		ProductID:  product.ID,
		Title:      product.Title,
		ImageURL:   imageURL,
		UnitPrice:  product.Price,
		StockLimit: product.Stock,
	}, qty)

	ctrl.saveAndRespond(c, userID, cart, "Item added to cart")
}

// DecrementItem godoc
// @Summary Decrement item quantity
// @Description Decrease the quantity of a cart item by one, never below one
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{id}/decrement [patch]
func (ctrl *CartController) DecrementItem(c *gin.Context) {
	userID := c.GetInt("user_id")
	productID, _ := strconv.Atoi(c.Param("id"))

	cart, ok := ctrl.loadCart(c, userID)
	if !ok {
		return
	}

	if cart.FindItem(productID) == nil {
		c.JSON(404, gin.H{"success": false, "message": "Item not in cart"})
		return
	}

	ctrl.cartSvc.DecrementItem(cart, productID)
	ctrl.saveAndRespond(c, userID, cart, "Item quantity decreased")
}

// RemoveItem godoc
// @Summary Remove item from cart
// @Description Remove a product from the cart entirely
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	userID := c.GetInt("user_id")
	productID, _ := strconv.Atoi(c.Param("id"))

	cart, ok := ctrl.loadCart(c, userID)
	if !ok {
		return
	}

	if cart.FindItem(productID) == nil {
		c.JSON(404, gin.H{"success": false, "message": "Item not in cart"})
		return
	}

	ctrl.cartSvc.RemoveItem(cart, productID)
	ctrl.saveAndRespond(c, userID, cart, "Item removed from cart")
}

// SetShippingAddress godoc
// @Summary Set shipping address
// @Description Replace the cart's shipping address
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ShippingAddressRequest true "Shipping Address"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/shipping-address [put]
func (ctrl *CartController) SetShippingAddress(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.ShippingAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "All address fields are required"})
		return
	}

	cart, ok := ctrl.loadCart(c, userID)
	if !ok {
		return
	}

	ctrl.cartSvc.SetShippingAddress(cart, models.ShippingAddress{
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	})

	ctrl.saveAndRespond(c, userID, cart, "Shipping address updated")
}

// ResetCart godoc
// @Summary Reset cart
// @Description Clear all items, totals, and the shipping address
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ResetCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	if err := ctrl.cartRepo.Delete(c.Request.Context(), userID); err != nil {
		c.JSON(503, gin.H{"success": false, "message": "Cart store unavailable"})
		return
	}

	cart := models.NewCart()
	ctrl.cartSvc.RecomputeTotals(cart)

	c.JSON(200, gin.H{"success": true, "message": "Cart reset", "data": cart})
}
