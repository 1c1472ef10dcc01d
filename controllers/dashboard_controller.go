package controllers

import (
	"context"
	"time"

	"mobile-shop/models"

	"github.com/gin-gonic/gin"
)

type DashboardController struct{}

func NewDashboardController() *DashboardController {
	return &DashboardController{}
}

// GetStats godoc
// @Summary Get dashboard stats
// @Description Get headline counts and total revenue (Admin)
// @Tags Admin - Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/dashboard/stats [get]
func (ctrl *DashboardController) GetStats(c *gin.Context) {
	ctx := context.Background()

	var totalProducts, totalUsers, totalOrders, outOfStock int
	var totalRevenue int64

	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM products WHERE is_active=true").Scan(&totalProducts)
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE role='customer'").Scan(&totalUsers)
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&totalOrders)
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM products WHERE is_active=true AND stock=0").Scan(&outOfStock)
	models.DB.QueryRow(ctx, "SELECT COALESCE(SUM(total),0) FROM orders").Scan(&totalRevenue)

	c.JSON(200, gin.H{
		"success": true,
		"message": "Dashboard stats retrieved",
		"data": gin.H{
			"total_products": totalProducts,
			"total_users":    totalUsers,
			"total_orders":   totalOrders,
			"out_of_stock":   outOfStock,
			"total_revenue":  totalRevenue,
		},
	})
}

// GetStockChart godoc
// @Summary Get stock chart data
// @Description Get in-stock versus out-of-stock product counts (Admin)
// @Tags Admin - Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/dashboard/stock [get]
func (ctrl *DashboardController) GetStockChart(c *gin.Context) {
	ctx := context.Background()

	var inStock, outOfStock int
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM products WHERE is_active=true AND stock > 0").Scan(&inStock)
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM products WHERE is_active=true AND stock = 0").Scan(&outOfStock)

	c.JSON(200, gin.H{
		"success": true,
		"message": "Stock chart retrieved",
		"data": gin.H{
			"in_stock":     inStock,
			"out_of_stock": outOfStock,
		},
	})
}

// GetOrderStatusChart godoc
// @Summary Get order status chart data
// @Description Get order counts grouped by fulfilment status (Admin)
// @Tags Admin - Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/dashboard/order-status [get]
func (ctrl *DashboardController) GetOrderStatusChart(c *gin.Context) {
	rows, err := models.DB.Query(context.Background(),
		"SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get order status chart"})
		return
	}
	defer rows.Close()

	counts := map[string]int{
		models.OrderStatusProcessing: 0,
		models.OrderStatusShipped:    0,
		models.OrderStatusDelivered:  0,
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			continue
		}
		counts[status] = count
	}

	c.JSON(200, gin.H{"success": true, "message": "Order status chart retrieved", "data": counts})
}

// GetRevenueChart godoc
// @Summary Get revenue chart data
// @Description Get monthly revenue for the last twelve months (Admin)
// @Tags Admin - Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/dashboard/revenue [get]
func (ctrl *DashboardController) GetRevenueChart(c *gin.Context) {
	since := time.Now().AddDate(-1, 0, 0)

	rows, err := models.DB.Query(context.Background(),
		`SELECT TO_CHAR(DATE_TRUNC('month', created_at), 'Mon YYYY') AS month,
		        DATE_TRUNC('month', created_at) AS month_start,
		        COALESCE(SUM(total),0), COUNT(*)
		 FROM orders WHERE created_at >= $1
		 GROUP BY month, month_start ORDER BY month_start`, since)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get revenue chart"})
		return
	}
	defer rows.Close()

	points := []gin.H{}
	for rows.Next() {
		var month string
		var monthStart time.Time
		var revenue int64
		var orders int
		if err := rows.Scan(&month, &monthStart, &revenue, &orders); err != nil {
			continue
		}
		points = append(points, gin.H{"month": month, "revenue": revenue, "orders": orders})
	}

	c.JSON(200, gin.H{"success": true, "message": "Revenue chart retrieved", "data": points})
}
