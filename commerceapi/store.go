// Package commerceapi is an in-memory stand-in for the remote commerce REST API.
// It serves the same wire contract the storefront's client expects and is used
// for local development and tests.
package commerceapi

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vikas-mobiles/be/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
)

// Store keeps products and orders in insertion order.
type Store struct {
	mu         sync.RWMutex
	products   map[string]*models.Product
	productIDs []string
	orders     map[string]*models.Order
	orderIDs   []string
	now        func() time.Time
}

func NewStore() *Store {
	return &Store{
		products: make(map[string]*models.Product),
		orders:   make(map[string]*models.Order),
		now:      time.Now,
	}
}

func (s *Store) AddProduct(p models.Product) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, exists := s.products[p.ID]; !exists {
		s.productIDs = append(s.productIDs, p.ID)
	}
	s.products[p.ID] = &p
	return p
}

func (s *Store) ListProducts() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, 0, len(s.productIDs))
	for _, id := range s.productIDs {
		out = append(out, *s.products[id])
	}
	return out
}

func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return ErrProductNotFound
	}
	delete(s.products, id)
	s.productIDs = without(s.productIDs, id)
	return nil
}

// CreateOrder stores a pending order. Every referenced product must exist.
func (s *Store) CreateOrder(lines []models.OrderLine, total decimal.Decimal, contact models.ContactDetails) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]models.OrderedProduct, 0, len(lines))
	for _, line := range lines {
		if _, exists := s.products[line.Product]; !exists {
			return models.Order{}, ErrProductNotFound
		}
		products = append(products, models.OrderedProduct{
			Product:  models.ProductRef{ID: line.Product},
			Quantity: line.Quantity,
		})
	}

	order := &models.Order{
		ID:             uuid.NewString(),
		Products:       products,
		Total:          total,
		ContactDetails: contact,
		Status:         models.StatusPending,
		CreatedAt:      s.now().UTC(),
	}
	s.orders[order.ID] = order
	s.orderIDs = append(s.orderIDs, order.ID)
	return *order, nil
}

// ListOrders returns orders with their product references populated where the
// product still exists.
func (s *Store) ListOrders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.orderIDs))
	for _, id := range s.orderIDs {
		order := *s.orders[id]
		order.Products = make([]models.OrderedProduct, len(s.orders[id].Products))
		for i, line := range s.orders[id].Products {
			if p, exists := s.products[line.Product.ID]; exists {
				cp := *p
				line.Product.Product = &cp
			}
			order.Products[i] = line
		}
		out = append(out, order)
	}
	return out
}

func (s *Store) UpdateOrderStatus(id string, status models.OrderStatus) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, exists := s.orders[id]
	if !exists {
		return models.Order{}, ErrOrderNotFound
	}
	order.Status = status
	return *order, nil
}

func (s *Store) DeleteOrder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[id]; !exists {
		return ErrOrderNotFound
	}
	delete(s.orders, id)
	s.orderIDs = without(s.orderIDs, id)
	return nil
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
