// Package cart holds a shopper's line items and enforces quantity bounds.
//
// A Store is not safe for concurrent use. Its owner (a session) applies
// operations one at a time.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/vikas-mobiles/be/models"
)

// LineItem is one product in the cart together with the chosen quantity.
// Price, stock and display fields are copied when the product is added and
// are never re-fetched.
type LineItem struct {
	ProductID      string
	Name           string
	Image          string
	Category       string
	Condition      string
	UnitPrice      decimal.Decimal
	AvailableStock int
	Quantity       int
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Listener receives the cart contents after every mutation that changed them.
type Listener func(snapshot []LineItem)

type Store struct {
	items     []LineItem
	listeners map[int]Listener
	nextSubID int
}

func NewStore() *Store {
	return &Store{
		items:     []LineItem{},
		listeners: make(map[int]Listener),
	}
}

// Add puts product in the cart. A product already present gains one unit,
// capped at its stock. Products that cannot form a valid line item are
// rejected with a *models.ValidationError and leave the cart unchanged.
func (s *Store) Add(product models.Product) error {
	if i := s.indexOf(product.ID); i >= 0 {
		item := &s.items[i]
		next := clamp(item.Quantity+1, 1, item.AvailableStock)
		if next == item.Quantity {
			return nil
		}
		item.Quantity = next
		s.notify()
		return nil
	}

	if err := validateProduct(product); err != nil {
		return err
	}

	s.items = append(s.items, LineItem{
		ProductID:      product.ID,
		Name:           product.Name,
		Image:          product.Image,
		Category:       product.Category,
		Condition:      product.Condition,
		UnitPrice:      product.Price,
		AvailableStock: product.Stock,
		Quantity:       1,
	})
	s.notify()
	return nil
}

// SetQuantity sets the quantity of productID to requested, clamped to
// [1, AvailableStock]. Unknown ids are ignored.
func (s *Store) SetQuantity(productID string, requested int) {
	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	item := &s.items[i]
	next := clamp(requested, 1, item.AvailableStock)
	if next == item.Quantity {
		return
	}
	item.Quantity = next
	s.notify()
}

// Remove drops productID from the cart. Unknown ids are ignored.
func (s *Store) Remove(productID string) {
	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.notify()
}

func (s *Store) Clear() {
	if len(s.items) == 0 {
		return
	}
	s.items = []LineItem{}
	s.notify()
}

// Snapshot returns a copy of the line items in insertion order.
func (s *Store) Snapshot() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total is recomputed from the current items on every call.
func (s *Store) Total() decimal.Decimal {
	return Total(s.items)
}

func (s *Store) Len() int {
	return len(s.items)
}

// Subscribe registers l and returns a func that removes it.
func (s *Store) Subscribe(l Listener) func() {
	id := s.nextSubID
	s.nextSubID++
	s.listeners[id] = l
	return func() {
		delete(s.listeners, id)
	}
}

// Total sums UnitPrice * Quantity over items.
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (s *Store) indexOf(productID string) int {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) notify() {
	if len(s.listeners) == 0 {
		return
	}
	snapshot := s.Snapshot()
	for _, l := range s.listeners {
		l(snapshot)
	}
}

func validateProduct(p models.Product) error {
	switch {
	case p.ID == "":
		return &models.ValidationError{Field: "product_id", Message: "product id is required"}
	case p.Price.IsNegative():
		return &models.ValidationError{Field: "price", Message: "price must not be negative"}
	case p.Stock < 0:
		return &models.ValidationError{Field: "stock", Message: "stock must not be negative"}
	case p.Stock == 0:
		return &models.ValidationError{Field: "stock", Message: "product is out of stock"}
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
