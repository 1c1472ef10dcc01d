package models

import "time"

// LineItem is one product entry in a cart. UnitPrice and StockLimit are
// snapshots taken when the item was added; they do not track later catalog
// changes.
type LineItem struct {
	ProductID  int    `json:"product_id"`
	Title      string `json:"title"`
	ImageURL   string `json:"image_url"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int    `json:"quantity"`
	StockLimit int    `json:"stock_limit"`
}

type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

func (a ShippingAddress) IsEmpty() bool {
	return a.Address == "" && a.City == "" && a.State == "" &&
		a.Country == "" && a.PostalCode == ""
}

// Cart holds the line items of one user session plus the derived monetary
// fields. Derived fields are only valid after a recompute; mutations leave
// them stale on purpose so a batch of changes costs a single recompute.
type Cart struct {
	LineItems       []LineItem      `json:"line_items"`
	Subtotal        int64           `json:"subtotal"`
	ShippingCharge  int64           `json:"shipping_charge"`
	Tax             int64           `json:"tax"`
	Discount        int64           `json:"discount"`
	Total           int64           `json:"total"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func NewCart() *Cart {
	return &Cart{LineItems: []LineItem{}}
}

func (c *Cart) FindItem(productID int) *LineItem {
	for i := range c.LineItems {
		if c.LineItems[i].ProductID == productID {
			return &c.LineItems[i]
		}
	}
	return nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.LineItems) == 0
}
