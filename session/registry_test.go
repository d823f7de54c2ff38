package session

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vikas-mobiles/be/cart"
	"github.com/vikas-mobiles/be/models"
)

func newTestRegistry(ttl time.Duration) (*Registry, *time.Time) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	r := NewRegistry(ttl, logrus.NewEntry(logger))
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }
	return r, &clock
}

func TestRegistry_SessionsHaveSeparateCarts(t *testing.T) {
	r, _ := newTestRegistry(time.Hour)
	a := r.Create()
	b := r.Create()
	require.NotEqual(t, a.ID, b.ID)

	require.NoError(t, a.Do(func(s *cart.Store) error {
		return s.Add(models.Product{ID: "p1", Price: decimal.NewFromInt(10), Stock: 3})
	}))

	_ = b.Do(func(s *cart.Store) error {
		assert.Equal(t, 0, s.Len())
		return nil
	})
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r, _ := newTestRegistry(time.Hour)
	s := r.Create()

	got, created := r.GetOrCreate(s.ID)
	assert.False(t, created)
	assert.Same(t, s, got)

	fresh, created := r.GetOrCreate("unknown")
	assert.True(t, created)
	assert.NotEqual(t, s.ID, fresh.ID)

	_, created = r.GetOrCreate("")
	assert.True(t, created)
	assert.Equal(t, 3, r.Len())
}

func TestRegistry_EndDestroysCart(t *testing.T) {
	r, _ := newTestRegistry(time.Hour)
	s := r.Create()

	r.End(s.ID)
	r.End(s.ID)

	_, ok := r.Get(s.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_SweepRemovesOnlyIdleSessions(t *testing.T) {
	r, clock := newTestRegistry(30 * time.Minute)
	idle := r.Create()
	*clock = clock.Add(20 * time.Minute)
	active := r.Create()

	*clock = clock.Add(15 * time.Minute)
	removed := r.Sweep()

	assert.Equal(t, 1, removed)
	_, ok := r.Get(idle.ID)
	assert.False(t, ok)
	_, ok = r.Get(active.ID)
	assert.True(t, ok)
}

func TestRegistry_GetRefreshesLastSeen(t *testing.T) {
	r, clock := newTestRegistry(30 * time.Minute)
	s := r.Create()

	*clock = clock.Add(25 * time.Minute)
	_, ok := r.Get(s.ID)
	require.True(t, ok)

	*clock = clock.Add(25 * time.Minute)
	assert.Equal(t, 0, r.Sweep())
}

func TestSession_DoSerializesOperations(t *testing.T) {
	r, _ := newTestRegistry(time.Hour)
	s := r.Create()
	p := models.Product{ID: "p1", Price: decimal.NewFromInt(1), Stock: 1000}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(func(store *cart.Store) error { return store.Add(p) })
		}()
	}
	wg.Wait()

	_ = s.Do(func(store *cart.Store) error {
		assert.Equal(t, 50, store.Snapshot()[0].Quantity)
		return nil
	})
}

func TestRegistry_RunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	r := NewRegistry(time.Millisecond, logrus.NewEntry(logger))
	r.Create()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
