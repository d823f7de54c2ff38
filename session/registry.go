// Package session gives every shopper their own cart and applies the
// operations of one session strictly one at a time.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vikas-mobiles/be/cart"
)

type Session struct {
	ID string

	mu       sync.Mutex
	cart     *cart.Store
	lastSeen time.Time
}

// Do runs fn with exclusive access to the session's cart.
func (s *Session) Do(fn func(store *cart.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.cart)
}

type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	log      *logrus.Entry
}

func NewRegistry(ttl time.Duration, log *logrus.Entry) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		log:      log,
	}
}

// Create starts a new session with an empty cart.
func (r *Registry) Create() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &Session{
		ID:       uuid.NewString(),
		cart:     cart.NewStore(),
		lastSeen: r.now(),
	}
	log := r.log.WithField("session_id", s.ID)
	s.cart.Subscribe(func(items []cart.LineItem) {
		log.WithFields(logrus.Fields{"lines": len(items), "total": cart.Total(items).StringFixed(2)}).Debug("cart changed")
	})
	r.sessions[s.ID] = s
	log.Debug("session started")
	return s
}

// Get returns the session and marks it as seen.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.sessions[id]
	if !exists {
		return nil, false
	}
	s.lastSeen = r.now()
	return s, true
}

// GetOrCreate returns the session for id, or a new one when id is unknown or expired.
func (r *Registry) GetOrCreate(id string) (s *Session, created bool) {
	if id != "" {
		if s, ok := r.Get(id); ok {
			return s, false
		}
	}
	return r.Create(), true
}

// End destroys the session and its cart.
func (r *Registry) End(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; exists {
		delete(r.sessions, id)
		r.log.WithField("session_id", id).Debug("session ended")
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep ends every session idle for longer than the TTL and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.log.WithFields(logrus.Fields{"expired": removed, "active": len(r.sessions)}).Info("swept idle sessions")
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
