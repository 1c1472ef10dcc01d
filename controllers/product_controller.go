package controllers

import (
	"context"
	"encoding/json"
	"mobile-shop/models"
	"mobile-shop/repositories"
	"mobile-shop/services"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type ProductController struct {
	productSvc  *services.ProductService
	productRepo *repositories.ProductRepository
}

func NewProductController() *ProductController {
	return &ProductController{
		productSvc:  services.NewProductService(),
		productRepo: repositories.NewProductRepository(),
	}
}

func getProductCacheKey(c *gin.Context) string {
	return "products_list_" + c.Request.URL.RawQuery
}

func invalidateProductCache() {
	if models.RedisClient == nil {
		return
	}
	ctx := context.Background()
	iter := models.RedisClient.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		models.RedisClient.Del(ctx, iter.Val())
	}
}

// GetCategories godoc
// @Summary Get categories
// @Description Get the distinct categories of active products
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Router /products/categories [get]
func (ctrl *ProductController) GetCategories(c *gin.Context) {
	categories, err := ctrl.productSvc.GetCategories()
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get categories"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Categories retrieved", "data": categories})
}

// GetLatestProducts godoc
// @Summary Get latest products
// @Description Get the most recently added products
// @Tags Products
// @Produce json
// @Param limit query int false "Number of products" default(8)
// @Success 200 {object} models.Response
// @Router /products/latest [get]
func (ctrl *ProductController) GetLatestProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))
	if limit < 1 || limit > 50 {
		limit = 8
	}

	products, err := ctrl.productSvc.GetLatestProducts(limit)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get products"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Latest products retrieved", "data": products})
}

// SearchProducts godoc
// @Summary Search products
// @Description Search the catalog by keyword, category, and price with pagination
// @Tags Products
// @Produce json
// @Param search query string false "Search by product title"
// @Param category query string false "Filter by category"
// @Param max_price query int false "Maximum price"
// @Param sort query string false "Sort by price" Enums(asc, dsc)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /products [get]
func (ctrl *ProductController) SearchProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	cacheKey := getProductCacheKey(c)
	ctx := context.Background()

	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	maxPrice, _ := strconv.ParseInt(c.Query("max_price"), 10, 64)
	filter := repositories.ProductFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Category: strings.TrimSpace(c.Query("category")),
		MaxPrice: maxPrice,
		Sort:     c.Query("sort"),
	}

	response, err := ctrl.productSvc.SearchProducts(filter, page, limit)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to search products"})
		return
	}

	if models.RedisClient != nil {
		jsonData, _ := json.Marshal(response)
		models.RedisClient.Set(ctx, cacheKey, string(jsonData), 5*time.Minute)
	}

	c.JSON(200, response)
}

// GetProductDetail godoc
// @Summary Get product detail
// @Description Get one product with its images and reviews
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	product, err := ctrl.productSvc.GetProductByID(id)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	reviews := ctrl.fetchReviews(id)

	c.JSON(200, gin.H{
		"success": true,
		"message": "Product retrieved",
		"data":    gin.H{"product": product, "reviews": reviews},
	})
}

func (ctrl *ProductController) fetchReviews(productID int) []models.Review {
	rows, err := models.DB.Query(context.Background(),
		`SELECT r.id, r.product_id, r.user_id, COALESCE(p.full_name,''), r.rating, r.comment, r.created_at, r.updated_at
		 FROM product_reviews r
		 LEFT JOIN user_profiles p ON r.user_id = p.user_id
		 WHERE r.product_id = $1 ORDER BY r.created_at DESC`, productID)
	if err != nil {
		return []models.Review{}
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.UserName,
			&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			continue
		}
		reviews = append(reviews, rv)
	}
	return reviews
}

// SubmitReview godoc
// @Summary Submit review
// @Description Create or update the current user's review for a product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.SubmitReviewRequest true "Review Request"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /products/reviews [put]
func (ctrl *ProductController) SubmitReview(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	ctx := context.Background()

	var exists int
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM products WHERE id=$1 AND is_active=true", req.ProductID).Scan(&exists)
	if exists == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	now := time.Now()
	var reviewID int
	err := models.DB.QueryRow(ctx,
		"SELECT id FROM product_reviews WHERE product_id=$1 AND user_id=$2",
		req.ProductID, userID).Scan(&reviewID)

	if err == nil {
		_, err = models.DB.Exec(ctx,
			"UPDATE product_reviews SET rating=$1, comment=$2, updated_at=$3 WHERE id=$4",
			req.Rating, req.Comment, now, reviewID)
	} else if err == pgx.ErrNoRows {
		_, err = models.DB.Exec(ctx,
			"INSERT INTO product_reviews (product_id, user_id, rating, comment, created_at, updated_at) VALUES ($1,$2,$3,$4,$5,$6)",
			req.ProductID, userID, req.Rating, req.Comment, now, now)
	}

	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to save review"})
		return
	}

	// Keep the denormalized rating aggregate in step with the reviews table.
	models.DB.Exec(ctx,
		`UPDATE products SET
			ratings = (SELECT COALESCE(AVG(rating),0) FROM product_reviews WHERE product_id=$1),
			num_of_reviews = (SELECT COUNT(*) FROM product_reviews WHERE product_id=$1),
			updated_at = $2
		 WHERE id = $1`, req.ProductID, now)

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Review saved"})
}

// CreateProduct godoc
// @Summary Create product
// @Description Create a new product (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateProductRequest true "Product Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	product, err := ctrl.productSvc.CreateProduct(req)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create product"})
		return
	}

	invalidateProductCache()

	c.JSON(201, gin.H{"success": true, "message": "Product created successfully", "data": product})
}

// UpdateProduct godoc
// @Summary Update product
// @Description Update a product (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.UpdateProductRequest true "Product Request"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req models.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	product, err := ctrl.productSvc.UpdateProduct(id, req)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Product updated successfully", "data": product})
}

// UploadProductImages godoc
// @Summary Upload product images
// @Description Upload one or more product images to Cloudinary (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Param images formData file true "Image files"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products/{id}/images [post]
func (ctrl *ProductController) UploadProductImages(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	if _, err := ctrl.productSvc.GetProductByID(id); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Image files required"})
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(400, gin.H{"success": false, "message": "Image files required"})
		return
	}

	cld, err := models.NewCloudinaryService()
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Image service unavailable"})
		return
	}

	uploaded, err := cld.UploadMultipleImages(c.Request.Context(), files, "products")
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}

	images := []models.ProductImage{}
	for i, u := range uploaded {
		img := models.ProductImage{
			ProductID:    id,
			PublicID:     u["public_id"],
			URL:          u["url"],
			DisplayOrder: i,
		}
		if err := ctrl.productRepo.AddImage(&img); err != nil {
			continue
		}
		images = append(images, img)
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Images uploaded", "data": images})
}

// DeleteProduct godoc
// @Summary Delete product
// @Description Deactivate a product so it no longer appears in the catalog (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /admin/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	if _, err := ctrl.productSvc.GetProductByID(id); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	if err := ctrl.productSvc.DeleteProduct(id); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete product"})
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Product deleted"})
}
