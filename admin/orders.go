package admin

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vikas-mobiles/be/models"
)

type OrderAPI interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, orderID string) error
}

type OrderBoard struct {
	mu     sync.RWMutex
	api    OrderAPI
	orders []models.Order
	log    *logrus.Entry
}

func NewOrderBoard(api OrderAPI, log *logrus.Entry) *OrderBoard {
	return &OrderBoard{api: api, log: log}
}

func (b *OrderBoard) Refresh(ctx context.Context) ([]models.Order, error) {
	orders, err := b.api.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh orders: %w", err)
	}

	b.mu.Lock()
	b.orders = orders
	b.mu.Unlock()
	return b.List(), nil
}

func (b *OrderBoard) List() []models.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]models.Order(nil), b.orders...)
}

// UpdateStatus changes an order's status remotely and mirrors it locally.
func (b *OrderBoard) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	if !status.Valid() {
		return &models.ValidationError{Field: "status", Message: fmt.Sprintf("unknown order status %q", status)}
	}

	updated, err := b.api.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if updated != nil && updated.Status != "" {
		status = updated.Status
	}

	b.mu.Lock()
	for i := range b.orders {
		if b.orders[i].ID == orderID {
			b.orders[i].Status = status
			break
		}
	}
	b.mu.Unlock()

	b.log.WithFields(logrus.Fields{"order_id": orderID, "status": status}).Info("order status updated")
	return nil
}

func (b *OrderBoard) MarkDelivered(ctx context.Context, orderID string) error {
	return b.UpdateStatus(ctx, orderID, models.StatusDelivered)
}

func (b *OrderBoard) Delete(ctx context.Context, orderID string) error {
	if err := b.api.DeleteOrder(ctx, orderID); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	b.mu.Lock()
	for i, o := range b.orders {
		if o.ID == orderID {
			b.orders = append(b.orders[:i:i], b.orders[i+1:]...)
			break
		}
	}
	b.mu.Unlock()

	b.log.WithField("order_id", orderID).Info("order deleted")
	return nil
}
