package models

type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	FullName string `json:"full_name" form:"full_name" binding:"required,min=3"`
	Phone    string `json:"phone" form:"phone" binding:"omitempty"`
	Gender   string `json:"gender" form:"gender" binding:"omitempty,oneof=male female"`
	DOB      string `json:"dob" form:"dob" binding:"omitempty"`
	Role     string `json:"role" form:"role" binding:"omitempty,oneof=customer admin"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" form:"full_name"`
	Phone    string `json:"phone" form:"phone"`
	Gender   string `json:"gender" form:"gender"`
	DOB      string `json:"dob" form:"dob"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" form:"old_password" binding:"required"`
	NewPassword string `json:"new_password" form:"new_password" binding:"required,min=6"`
}

type UpdateUserRequest struct {
	Email    string `json:"email" form:"email"`
	Role     string `json:"role" form:"role"`
	FullName string `json:"full_name" form:"full_name"`
	Phone    string `json:"phone" form:"phone"`
}

type CreateProductRequest struct {
	Title          string                 `json:"title" form:"title" binding:"required"`
	Description    string                 `json:"description" form:"description" binding:"required"`
	Category       string                 `json:"category" form:"category" binding:"required"`
	Price          int64                  `json:"price" form:"price" binding:"required,min=1"`
	Stock          int                    `json:"stock" form:"stock" binding:"required,min=0"`
	Specifications map[string]interface{} `json:"specifications"`
	IsActive       bool                   `json:"is_active" form:"is_active"`
}

type UpdateProductRequest struct {
	Title          string                 `json:"title" form:"title"`
	Description    string                 `json:"description" form:"description"`
	Category       string                 `json:"category" form:"category"`
	Price          int64                  `json:"price" form:"price"`
	Stock          *int                   `json:"stock" form:"stock"`
	Specifications map[string]interface{} `json:"specifications"`
	IsActive       *bool                  `json:"is_active" form:"is_active"`
}

type AddCartItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"omitempty,min=1"`
}

type ShippingAddressRequest struct {
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	Country    string `json:"country" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
}

type SubmitReviewRequest struct {
	ProductID int    `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"required"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

type CheckoutRequest struct {
	ShippingAddress *ShippingAddressRequest `json:"shipping_address"`
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type MetaData struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

type PaginationResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Meta    MetaData    `json:"meta"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

type PaginationLinks struct {
	Self string `json:"self"`
	Next string `json:"next,omitempty"`
	Prev string `json:"prev,omitempty"`
}

type HATEOASResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    interface{}     `json:"data"`
	Meta    PaginationMeta  `json:"meta"`
	Links   PaginationLinks `json:"links"`
}
