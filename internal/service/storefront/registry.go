package storefront

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"jericho-storefront/internal/carousel"
	"jericho-storefront/internal/domain"
	"jericho-storefront/internal/metrics"
)

// Registry tracks the open sessions of the HTTP transport.
type Registry struct {
	deps        Deps
	interval    time.Duration
	idleTimeout time.Duration
	logger      *log.Logger

	mu       sync.Mutex
	sessions map[string]*Session

	now   func() time.Time
	newID func() string
}

// NewRegistry creates an empty registry. A zero interval uses the carousel
// default; a zero idle timeout disables eviction.
func NewRegistry(deps Deps, interval, idleTimeout time.Duration) *Registry {
	if interval <= 0 {
		interval = carousel.DefaultInterval
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Registry{
		deps:        deps,
		interval:    interval,
		idleTimeout: idleTimeout,
		logger:      logger,
		sessions:    make(map[string]*Session),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Create opens a new session.
func (r *Registry) Create() *Session {
	s := newSession(r.newID(), r.deps, r.interval, r.now())

	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()

	metrics.SessionOpened()
	r.logger.Printf("storefront: session opened id=%s", s.id)
	return s
}

// Get returns an open session and marks it used.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	s.touch(r.now())
	return s, nil
}

// Close removes and stops one session.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	r.closeSession(s, "closed")
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// EvictIdle closes sessions unused for longer than the idle timeout.
func (r *Registry) EvictIdle() int {
	if r.idleTimeout <= 0 {
		return 0
	}
	now := r.now()
	var idle []*Session

	r.mu.Lock()
	for id, s := range r.sessions {
		if s.idleSince(now) > r.idleTimeout {
			idle = append(idle, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		r.closeSession(s, "evicted")
	}
	return len(idle)
}

// RunJanitor evicts idle sessions every period until ctx is done.
func (r *Registry) RunJanitor(ctx context.Context, period time.Duration) {
	if r.idleTimeout <= 0 {
		return
	}
	if period <= 0 {
		period = r.idleTimeout / 2
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.EvictIdle(); n > 0 {
				r.logger.Printf("storefront: evicted idle sessions count=%d", n)
			}
		}
	}
}

// CloseAll stops every session. Used on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range all {
		r.closeSession(s, "closed")
	}
}

func (r *Registry) closeSession(s *Session, reason string) {
	s.Close()
	metrics.SessionClosed()
	r.logger.Printf("storefront: session %s id=%s", reason, s.id)
}
