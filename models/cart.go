package models

import "github.com/shopspring/decimal"

type CartItemView struct {
	ProductID      string          `json:"product_id"`
	Name           string          `json:"name"`
	ImageURL       string          `json:"image_url,omitempty"`
	Condition      string          `json:"condition,omitempty"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	AvailableStock int             `json:"available_stock"`
	Quantity       int             `json:"quantity"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	Items []CartItemView  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// UpdateQuantityRequest uses a pointer so that an explicit 0 is accepted and clamped.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type CheckoutResponse struct {
	OrderID string          `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
	Status  OrderStatus     `json:"status"`
}
