package models

import "time"

type Product struct {
	ID             int                    `json:"id"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	Category       string                 `json:"category"`
	Price          int64                  `json:"price"`
	Stock          int                    `json:"stock"`
	Ratings        float64                `json:"ratings"`
	NumOfReviews   int                    `json:"num_of_reviews"`
	Images         []ProductImage         `json:"images,omitempty"`
	Specifications map[string]interface{} `json:"specifications,omitempty"`
	IsActive       bool                   `json:"is_active"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

type ProductImage struct {
	ID           int    `json:"id"`
	ProductID    int    `json:"product_id"`
	PublicID     string `json:"public_id"`
	URL          string `json:"url"`
	DisplayOrder int    `json:"display_order"`
}

type Review struct {
	ID        int       `json:"id"`
	ProductID int       `json:"product_id"`
	UserID    int       `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
