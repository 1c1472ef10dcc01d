package models

import "time"

// Order statuses follow the fulfilment flow: Processing -> Shipped -> Delivered.
const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
)

type Order struct {
	ID              int             `json:"id"`
	OrderNumber     string          `json:"order_number"`
	UserID          int             `json:"user_id"`
	Status          string          `json:"status"`
	Subtotal        int64           `json:"subtotal"`
	ShippingCharge  int64           `json:"shipping_charge"`
	Tax             int64           `json:"tax"`
	Discount        int64           `json:"discount"`
	Total           int64           `json:"total"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Items           []OrderItem     `json:"items,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID        int    `json:"id"`
	OrderID   int    `json:"order_id"`
	ProductID int    `json:"product_id"`
	Title     string `json:"title"`
	ImageURL  string `json:"image_url"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}
