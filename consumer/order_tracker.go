package consumer

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/vikas-mobiles/be/models"
)

// OrderTracker keeps running sales totals. It is safe for concurrent use.
type OrderTracker struct {
	mu        sync.Mutex
	seen      map[string]struct{}
	orders    int64
	unitsSold map[string]int64
	revenue   decimal.Decimal
}

func NewOrderTracker() *OrderTracker {
	return &OrderTracker{
		seen:      make(map[string]struct{}),
		unitsSold: make(map[string]int64),
		revenue:   decimal.Zero,
	}
}

// RecordOrder adds event to the totals. Redelivered events (same EventID)
// are ignored and reported as false.
func (t *OrderTracker) RecordOrder(event models.OrderPlacedEvent) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if event.EventID != "" {
		if _, dup := t.seen[event.EventID]; dup {
			return false
		}
		t.seen[event.EventID] = struct{}{}
	}

	t.orders++
	for _, item := range event.Items {
		t.unitsSold[item.ProductID] += int64(item.Quantity)
	}
	t.revenue = t.revenue.Add(event.Total)
	return true
}

func (t *OrderTracker) TotalOrders() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.orders
}

func (t *OrderTracker) UnitsSold(productID string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.unitsSold[productID]
}

func (t *OrderTracker) Revenue() decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.revenue
}

// PrintSummary writes the totals, best sellers first.
func (t *OrderTracker) PrintSummary(w io.Writer) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "ORDER SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total Orders Processed: %d\n", t.orders)
	fmt.Fprintf(w, "Total Revenue: %s\n", t.revenue.StringFixed(2))

	ids := make([]string, 0, len(t.unitsSold))
	for id := range t.unitsSold {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if t.unitsSold[ids[i]] != t.unitsSold[ids[j]] {
			return t.unitsSold[ids[i]] > t.unitsSold[ids[j]]
		}
		return ids[i] < ids[j]
	})
	for _, id := range ids {
		fmt.Fprintf(w, "  %s: %d units\n", id, t.unitsSold[id])
	}
	fmt.Fprintln(w, rule)
}
