// Package checkout turns a cart into an order on the commerce API.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vikas-mobiles/be/cart"
	"github.com/vikas-mobiles/be/models"
	"github.com/vikas-mobiles/be/validators"
)

// OrderAPI is the part of the commerce API checkout depends on.
type OrderAPI interface {
	CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error)
}

// Notifier announces placed orders to downstream consumers.
type Notifier interface {
	PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error
}

type Service struct {
	api      OrderAPI
	notifier Notifier
	contacts *validators.ContactValidator
	log      *logrus.Entry
	now      func() time.Time
}

// NewService builds a checkout service. notifier may be nil.
func NewService(api OrderAPI, notifier Notifier, log *logrus.Entry) *Service {
	return &Service{
		api:      api,
		notifier: notifier,
		contacts: validators.NewContactValidator(),
		log:      log,
		now:      time.Now,
	}
}

// SubmitCart places an order for everything in store. The store is cleared
// only after the commerce API accepts the order; on any error it is untouched.
func (s *Service) SubmitCart(ctx context.Context, store *cart.Store, contact models.ContactDetails) (*models.Order, error) {
	items := store.Snapshot()

	order, err := s.submit(ctx, items, contact)
	if err != nil {
		return nil, err
	}

	store.Clear()
	return order, nil
}

// PlaceSingle orders one unit of product directly, bypassing the shopper's cart.
// It goes through the same validation as SubmitCart.
func (s *Service) PlaceSingle(ctx context.Context, product models.Product, contact models.ContactDetails) (*models.Order, error) {
	scratch := cart.NewStore()
	if err := scratch.Add(product); err != nil {
		return nil, err
	}
	return s.submit(ctx, scratch.Snapshot(), contact)
}

// BuildOrderRequest validates items and total and assembles the request body.
func BuildOrderRequest(items []cart.LineItem, contact models.ContactDetails) (models.OrderRequest, decimal.Decimal, error) {
	if len(items) == 0 {
		return models.OrderRequest{}, decimal.Zero, &models.ValidationError{Field: "products", Message: "cart is empty"}
	}

	// the checked total is the one sent
	total := cart.Total(items).Round(2)
	if !total.IsPositive() {
		return models.OrderRequest{}, decimal.Zero, &models.ValidationError{Field: "total", Message: "invalid total amount"}
	}

	lines := make([]models.OrderLine, len(items))
	for i, item := range items {
		lines[i] = models.OrderLine{Product: item.ProductID, Quantity: item.Quantity}
	}

	return models.OrderRequest{
		Products:       lines,
		Total:          json.Number(total.StringFixed(2)),
		ContactDetails: contact,
	}, total, nil
}

func (s *Service) submit(ctx context.Context, items []cart.LineItem, contact models.ContactDetails) (*models.Order, error) {
	req, total, err := BuildOrderRequest(items, contact)
	if err != nil {
		return nil, err
	}
	if err := s.contacts.Validate(contact); err != nil {
		return nil, err
	}

	log := s.log.WithFields(logrus.Fields{"lines": len(items), "total": total.StringFixed(2)})
	log.Info("submitting order")

	order, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		log.WithError(err).Warn("order submission failed")
		var remoteErr *models.RemoteError
		if !errors.As(err, &remoteErr) {
			err = &models.RemoteError{Op: "create order", Err: err}
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	log.WithField("order_id", order.ID).Info("order placed")
	s.publish(ctx, order, items, total)
	return order, nil
}

func (s *Service) publish(ctx context.Context, order *models.Order, items []cart.LineItem, total decimal.Decimal) {
	if s.notifier == nil {
		return
	}

	event := models.OrderPlacedEvent{
		EventID:  uuid.NewString(),
		OrderID:  order.ID,
		Items:    make([]models.EventItem, len(items)),
		Total:    total,
		PlacedAt: s.now().UTC(),
	}
	for i, item := range items {
		event.Items[i] = models.EventItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	// the order already exists remotely, so a lost event must not fail checkout
	if err := s.notifier.PublishOrderPlaced(ctx, event); err != nil {
		s.log.WithError(err).WithField("order_id", order.ID).Error("failed to publish order event")
	}
}
