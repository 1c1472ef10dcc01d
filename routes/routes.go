package routes

import (
	"mobile-shop/controllers"
	"mobile-shop/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine) {
	authCtrl := controllers.NewAuthController()
	userCtrl := controllers.NewUserController()
	productCtrl := controllers.NewProductController()
	cartCtrl := controllers.NewCartController()
	orderCtrl := controllers.NewOrderController()
	paymentCtrl := controllers.NewPaymentController()
	dashboardCtrl := controllers.NewDashboardController()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)

	router.GET("/products", productCtrl.SearchProducts)
	router.GET("/products/latest", productCtrl.GetLatestProducts)
	router.GET("/products/categories", productCtrl.GetCategories)
	router.GET("/products/:id", productCtrl.GetProductDetail)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
		auth.PATCH("/auth/profile", authCtrl.UpdateProfile)
		auth.POST("/auth/profile/photo", authCtrl.UpdateProfilePhoto)
		auth.POST("/auth/change-password", authCtrl.ChangePassword)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.DELETE("/cart", cartCtrl.ResetCart)
		auth.POST("/cart/items", cartCtrl.AddItem)
		auth.PATCH("/cart/items/:id/decrement", cartCtrl.DecrementItem)
		auth.DELETE("/cart/items/:id", cartCtrl.RemoveItem)
		auth.PUT("/cart/shipping-address", cartCtrl.SetShippingAddress)

		auth.POST("/orders", orderCtrl.Checkout)
		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:id", orderCtrl.GetOrderDetail)

		auth.PUT("/products/reviews", productCtrl.SubmitReview)

		auth.GET("/payment/stripe-key", paymentCtrl.GetStripeKey)
		auth.POST("/payment/process", paymentCtrl.CreatePaymentIntent)
		auth.POST("/payment/coupon/apply", paymentCtrl.ApplyCoupon)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/dashboard/stats", dashboardCtrl.GetStats)
		admin.GET("/dashboard/stock", dashboardCtrl.GetStockChart)
		admin.GET("/dashboard/order-status", dashboardCtrl.GetOrderStatusChart)
		admin.GET("/dashboard/revenue", dashboardCtrl.GetRevenueChart)

		admin.GET("/users", userCtrl.GetAllUsers)
		admin.GET("/users/:id", userCtrl.GetUserByID)
		admin.PATCH("/users/:id", userCtrl.UpdateUser)
		admin.DELETE("/users/:id", userCtrl.DeleteUser)

		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:id", productCtrl.UpdateProduct)
		admin.POST("/products/:id/images", productCtrl.UploadProductImages)
		admin.DELETE("/products/:id", productCtrl.DeleteProduct)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.PATCH("/orders/:id/status", orderCtrl.AdvanceOrderStatus)
		admin.DELETE("/orders/:id", orderCtrl.DeleteOrder)

		admin.POST("/coupons", paymentCtrl.CreateCoupon)
		admin.GET("/coupons", paymentCtrl.GetAllCoupons)
		admin.DELETE("/coupons/:id", paymentCtrl.DeleteCoupon)
	}

	router.Static("/uploads", "./uploads")
}
