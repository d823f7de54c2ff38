package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

const (
	CategoryPhones      = "phones"
	CategoryAccessories = "accessories"
)

const (
	ConditionNew         = "new"
	ConditionLikeNew     = "like-new"
	ConditionUsed        = "used"
	ConditionRefurbished = "refurbished"
)

// Product is a catalog record as served by the commerce API.
// Price arrives either as a JSON number or as a decimal string.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Condition   string          `json:"condition"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
}

// UnmarshalJSON accepts both "id" and the backend's "_id".
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = aux.MongoID
	}
	return nil
}

// CreateProductRequest carries the non-file fields of a multipart product upload.
type CreateProductRequest struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description" binding:"required"`
	Price       string `form:"price" binding:"required"`
	Category    string `form:"category" binding:"required,oneof=phones accessories"`
	Condition   string `form:"condition" binding:"required,oneof=new like-new used refurbished"`
	Stock       int    `form:"stock" binding:"min=0"`
}

// ProductView is a product as rendered by the storefront, with an absolute image URL.
type ProductView struct {
	Product
	ImageURL string `json:"image_url"`
}
