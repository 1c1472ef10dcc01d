package models

import "time"

type Coupon struct {
	ID        int       `json:"id"`
	Code      string    `json:"code"`
	Amount    int64     `json:"amount"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type CouponRequest struct {
	Code   string `json:"code" form:"code" binding:"required,min=4"`
	Amount int64  `json:"amount" form:"amount" binding:"required,min=1"`
}
