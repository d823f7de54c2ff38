package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusDelivered OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	return s == StatusPending || s == StatusDelivered
}

// ContactDetails are the shopper-supplied fields of the order form.
type ContactDetails struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required,phone"`
	Address        string `json:"address" validate:"required"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
}

type OrderLine struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// OrderRequest is the body of POST /orders on the commerce API.
type OrderRequest struct {
	Products []OrderLine `json:"products"`
	Total    json.Number `json:"total"`
	ContactDetails
}

// ProductRef is an order line's product: a bare id on creation, a populated
// product object in listings.
type ProductRef struct {
	ID      string
	Product *Product
}

func (r *ProductRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	r.ID = p.ID
	r.Product = &p
	return nil
}

func (r ProductRef) MarshalJSON() ([]byte, error) {
	if r.Product != nil {
		return json.Marshal(r.Product)
	}
	return json.Marshal(r.ID)
}

type OrderedProduct struct {
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity"`
}

// Order is an order record as returned by the commerce API.
type Order struct {
	ID       string           `json:"id"`
	Products []OrderedProduct `json:"products"`
	Total    decimal.Decimal  `json:"total"`
	ContactDetails
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// UnmarshalJSON accepts both "id" and the backend's "_id".
func (o *Order) UnmarshalJSON(data []byte) error {
	type alias Order
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(o)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if o.ID == "" {
		o.ID = aux.MongoID
	}
	return nil
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

// OrderPlacedEvent is published to the order events queue after a successful checkout.
type OrderPlacedEvent struct {
	EventID  string          `json:"event_id"`
	OrderID  string          `json:"order_id"`
	Items    []EventItem     `json:"items"`
	Total    decimal.Decimal `json:"total"`
	PlacedAt time.Time       `json:"placed_at"`
}

type EventItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
