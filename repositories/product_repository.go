package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"mobile-shop/models"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// ProductFilter narrows catalog listings. Zero values mean "no filter".
type ProductFilter struct {
	Search   string
	Category string
	MaxPrice int64
	Sort     string // "asc" or "dsc" by price
}

func (r *ProductRepository) GetCategories() ([]string, error) {
	rows, err := models.DB.Query(context.Background(),
		`SELECT DISTINCT category FROM products WHERE is_active = true ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			continue
		}
		categories = append(categories, name)
	}
	return categories, nil
}

func (r *ProductRepository) GetLatest(limit int) ([]models.Product, error) {
	query := `SELECT id, title, description, category, price, stock, ratings, num_of_reviews,
	          COALESCE(specifications, '{}'), is_active, created_at, updated_at
	          FROM products WHERE is_active = true ORDER BY created_at DESC LIMIT $1`

	rows, err := models.DB.Query(context.Background(), query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanProducts(rows)
}

func (r *ProductRepository) Search(filter ProductFilter, page, limit int) ([]models.Product, int, error) {
	whereConditions := []string{"is_active = true"}
	args := []interface{}{}
	paramIndex := 1

	if filter.Search != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("LOWER(title) LIKE LOWER($%d)", paramIndex))
		args = append(args, "%"+filter.Search+"%")
		paramIndex++
	}

	if filter.Category != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("category = LOWER($%d)", paramIndex))
		args = append(args, filter.Category)
		paramIndex++
	}

	if filter.MaxPrice > 0 {
		whereConditions = append(whereConditions, fmt.Sprintf("price <= $%d", paramIndex))
		args = append(args, filter.MaxPrice)
		paramIndex++
	}

	whereClause := strings.Join(whereConditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM products WHERE " + whereClause
	if err := models.DB.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := " ORDER BY created_at DESC"
	if filter.Sort == "asc" {
		orderBy = " ORDER BY price ASC"
	} else if filter.Sort == "dsc" {
		orderBy = " ORDER BY price DESC"
	}

	offset := (page - 1) * limit
	query := fmt.Sprintf(`SELECT id, title, description, category, price, stock, ratings, num_of_reviews,
	          COALESCE(specifications, '{}'), is_active, created_at, updated_at
	          FROM products WHERE %s%s LIMIT $%d OFFSET $%d`,
		whereClause, orderBy, paramIndex, paramIndex+1)
	args = append(args, limit, offset)

	rows, err := models.DB.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products, err := r.scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) scanProducts(rows pgx.Rows) ([]models.Product, error) {
	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		var specs []byte
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Category, &p.Price, &p.Stock,
			&p.Ratings, &p.NumOfReviews, &specs, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		json.Unmarshal(specs, &p.Specifications)
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	query := `SELECT id, title, description, category, price, stock, ratings, num_of_reviews,
	          COALESCE(specifications, '{}'), is_active, created_at, updated_at
	          FROM products WHERE id = $1`

	var p models.Product
	var specs []byte
	err := models.DB.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Category, &p.Price, &p.Stock,
		&p.Ratings, &p.NumOfReviews, &specs, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	json.Unmarshal(specs, &p.Specifications)

	images, err := r.GetImages(id)
	if err == nil {
		p.Images = images
	}

	return &p, nil
}

func (r *ProductRepository) GetImages(productID int) ([]models.ProductImage, error) {
	rows, err := models.DB.Query(context.Background(),
		`SELECT id, product_id, COALESCE(public_id,''), url, display_order
		 FROM product_images WHERE product_id = $1 ORDER BY display_order`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []models.ProductImage{}
	for rows.Next() {
		var img models.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.PublicID, &img.URL, &img.DisplayOrder); err != nil {
			continue
		}
		images = append(images, img)
	}
	return images, nil
}

func (r *ProductRepository) Create(product *models.Product) error {
	specs, _ := json.Marshal(product.Specifications)

	query := `
		INSERT INTO products (title, description, category, price, stock, specifications, is_active, created_at, updated_at)
		VALUES ($1, $2, LOWER($3), $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return models.DB.QueryRow(context.Background(), query,
		product.Title, product.Description, product.Category, product.Price,
		product.Stock, specs, product.IsActive, now, now,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *ProductRepository) Update(product *models.Product) error {
	specs, _ := json.Marshal(product.Specifications)

	query := `UPDATE products SET title = $1, description = $2, category = LOWER($3), price = $4,
	          stock = $5, specifications = $6, is_active = $7, updated_at = $8 WHERE id = $9`
	_, err := models.DB.Exec(context.Background(), query,
		product.Title, product.Description, product.Category, product.Price,
		product.Stock, specs, product.IsActive, time.Now(), product.ID,
	)
	return err
}

func (r *ProductRepository) AddImage(img *models.ProductImage) error {
	query := `INSERT INTO product_images (product_id, public_id, url, display_order)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	return models.DB.QueryRow(context.Background(), query,
		img.ProductID, img.PublicID, img.URL, img.DisplayOrder).Scan(&img.ID)
}

func (r *ProductRepository) Delete(id int) error {
	query := `UPDATE products SET is_active = false, updated_at = $1 WHERE id = $2`
	_, err := models.DB.Exec(context.Background(), query, time.Now(), id)
	return err
}
