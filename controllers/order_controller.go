package controllers

import (
	"errors"
	"fmt"
	"mobile-shop/models"
	"mobile-shop/repositories"
	"mobile-shop/services"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderRepo *repositories.OrderRepository
	orderSvc  *services.OrderService
}

func NewOrderController() *OrderController {
	cartSvc := services.NewCartServiceWithConfig(services.PricingConfigFromEnv())
	return &OrderController{
		orderRepo: repositories.NewOrderRepository(),
		orderSvc:  services.NewOrderService(cartSvc),
	}
}

func (ctrl *OrderController) getPaginationParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func (ctrl *OrderController) generateLinks(c *gin.Context, page, limit, totalPages int) models.PaginationLinks {
	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}

	host := c.Request.Host
	path := c.Request.URL.Path
	queryParams := c.Request.URL.Query()

	makeURL := func(pageNum int) string {
		newParams := url.Values{}
		for key, values := range queryParams {
			if key != "page" {
				for _, value := range values {
					newParams.Add(key, value)
				}
			}
		}
		newParams.Set("page", strconv.Itoa(pageNum))
		newParams.Set("limit", strconv.Itoa(limit))
		return fmt.Sprintf("%s://%s%s?%s", scheme, host, path, newParams.Encode())
	}

	links := models.PaginationLinks{
		Self: makeURL(page),
	}

	if page > 1 {
		links.Prev = makeURL(page - 1)
	}
	if page < totalPages {
		links.Next = makeURL(page + 1)
	}

	return links
}

func (ctrl *OrderController) buildResponse(c *gin.Context, message string, data interface{}, page, limit, totalItems int) models.HATEOASResponse {
	totalPages := 0
	if totalItems > 0 {
		totalPages = (totalItems + limit - 1) / limit
	}

	if page > totalPages && totalPages > 0 {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	return models.HATEOASResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta: models.PaginationMeta{
			Page:       page,
			Limit:      limit,
			TotalItems: totalItems,
			TotalPages: totalPages,
		},
		Links: ctrl.generateLinks(c, page, limit, totalPages),
	}
}

// Checkout godoc
// @Summary Checkout
// @Description Turn the current cart into an order, validating stock and charging snapshotted prices
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CheckoutRequest false "Checkout Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /orders [post]
func (ctrl *OrderController) Checkout(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
			return
		}
	}

	order, err := ctrl.orderSvc.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		var stockErr *services.StockError
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			c.JSON(400, gin.H{"success": false, "message": "Cart is empty"})
		case errors.Is(err, services.ErrMissingAddress):
			c.JSON(400, gin.H{"success": false, "message": "Shipping address is required"})
		case errors.As(err, &stockErr):
			c.JSON(400, gin.H{"success": false, "message": stockErr.Error()})
		case errors.Is(err, repositories.ErrCartStoreUnavailable):
			c.JSON(503, gin.H{"success": false, "message": "Cart store unavailable"})
		default:
			c.JSON(500, gin.H{"success": false, "message": "Checkout failed"})
		}
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Order created successfully", "data": order})
}

// GetMyOrders godoc
// @Summary Get my orders
// @Description Get the current user's orders with optional status and date filters
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "Filter by status"
// @Param start_date query string false "Filter by start date (format: 2006-01-02)"
// @Param end_date query string false "Filter by end date (format: 2006-01-02)"
// @Success 200 {object} models.HATEOASResponse
// @Router /orders [get]
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	userID := c.GetInt("user_id")
	page, limit := ctrl.getPaginationParams(c, 10)

	filter := repositories.OrderFilter{
		UserID:    userID,
		Status:    c.Query("status"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	orders, total, err := ctrl.orderRepo.FindAll(filter, page, limit)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get orders"})
		return
	}

	c.JSON(200, ctrl.buildResponse(c, "Orders retrieved", orders, page, limit, total))
}

// GetOrderDetail godoc
// @Summary Get order detail
// @Description Get one order with its line items
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (ctrl *OrderController) GetOrderDetail(c *gin.Context) {
	userID := c.GetInt("user_id")
	role := c.GetString("user_role")
	id, _ := strconv.Atoi(c.Param("id"))

	order, err := ctrl.orderRepo.FindByID(id)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}

	if order.UserID != userID && role != "admin" {
		c.JSON(403, gin.H{"success": false, "message": "Forbidden"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Order retrieved", "data": order})
}

// GetAllOrders godoc
// @Summary Get all orders
// @Description Get all orders with pagination (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "Filter by status"
// @Param start_date query string false "Filter by start date (format: 2006-01-02)"
// @Param end_date query string false "Filter by end date (format: 2006-01-02)"
// @Success 200 {object} models.HATEOASResponse
// @Router /admin/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	page, limit := ctrl.getPaginationParams(c, 10)

	status := c.Query("status")
	if status == "All" {
		status = ""
	}

	filter := repositories.OrderFilter{
		Status:    status,
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	orders, total, err := ctrl.orderRepo.FindAll(filter, page, limit)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get orders"})
		return
	}

	c.JSON(200, ctrl.buildResponse(c, "Orders retrieved successfully", orders, page, limit, total))
}

// AdvanceOrderStatus godoc
// @Summary Advance order status
// @Description Move an order to the next fulfilment status (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/orders/{id}/status [patch]
func (ctrl *OrderController) AdvanceOrderStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	status, err := ctrl.orderRepo.AdvanceStatus(id)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Order not found"})
			return
		}
		if errors.Is(err, repositories.ErrOrderAlreadyDelivered) {
			c.JSON(400, gin.H{"success": false, "message": "Order has already been delivered"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to update order status"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Order status updated successfully",
		"data":    gin.H{"id": id, "status": status},
	})
}

// DeleteOrder godoc
// @Summary Delete order
// @Description Delete an order and its items (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Router /admin/orders/{id} [delete]
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	if err := ctrl.orderRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Order not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete order"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Order deleted successfully", "data": gin.H{"id": id}})
}
