package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"jericho-storefront/internal/bridge"
)

var (
	// ErrSessionClosed is returned for operations posted to a closed session.
	ErrSessionClosed = errors.New("session closed")
	// ErrNoHandler means the tapped host button is hidden or has no handler.
	ErrNoHandler = errors.New("button not available")
)

const opQueueSize = 16

// Session owns a Shop and runs every operation on it from a single
// goroutine, including the carousel auto-advance.
type Session struct {
	id   string
	shop *Shop
	host *bridge.StateHost

	ops    chan func()
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	lastUsed atomic.Int64
}

func newSession(id string, deps Deps, interval time.Duration, now time.Time) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	host := bridge.NewStateHost()
	s := &Session{
		id:     id,
		shop:   NewShop(deps, host),
		host:   host,
		ops:    make(chan func(), opQueueSize),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.shop.ctx = ctx
	s.touch(now)

	go s.loop()
	go s.shop.carousel.Run(ctx, interval, s.post)
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case op := <-s.ops:
			op()
		}
	}
}

// post queues fn without waiting for it to run. It gives up once the session closes.
func (s *Session) post(fn func()) {
	select {
	case s.ops <- func() { s.shop.syncCarousel(); fn() }:
	case <-s.ctx.Done():
	}
}

const (
	opQueued int32 = iota
	opRunning
	opAbandoned
)

// Do runs fn on the session goroutine and waits for its result. If ctx ends
// while the op is still queued, the op is dropped and never runs; once it has
// started, Do waits for it so the result always matches the shop state.
func (s *Session) Do(ctx context.Context, fn func(*Shop) error) error {
	var state atomic.Int32
	result := make(chan error, 1)
	op := func() {
		if !state.CompareAndSwap(opQueued, opRunning) {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				result <- fmt.Errorf("session %s: panic: %v", s.id, r)
			}
		}()
		result <- fn(s.shop)
	}

	select {
	case s.ops <- op:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return ErrSessionClosed
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		if state.CompareAndSwap(opQueued, opAbandoned) {
			return ctx.Err()
		}
		return s.wait(result)
	case <-s.done:
		return s.wait(result)
	}
}

// wait collects the result of an op that is already running.
func (s *Session) wait(result <-chan error) error {
	select {
	case err := <-result:
		return err
	case <-s.done:
		select {
		case err := <-result:
			return err
		default:
			return ErrSessionClosed
		}
	}
}

// Snapshot renders the shop and the host chrome.
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.Do(ctx, func(shop *Shop) error {
		snap = shop.Snapshot()
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	chrome := s.host.Chrome()
	snap.SessionID = s.id
	snap.Chrome = &chrome
	return snap, nil
}

// TapMain forwards a main button tap from a remote host and returns the
// error of the action it triggered.
func (s *Session) TapMain(ctx context.Context) error {
	return s.Do(ctx, func(shop *Shop) error {
		if !s.host.TapMain() {
			return fmt.Errorf("main button: %w", ErrNoHandler)
		}
		return shop.bridge.TapErr()
	})
}

// TapBack forwards a back button tap from a remote host.
func (s *Session) TapBack(ctx context.Context) error {
	return s.Do(ctx, func(shop *Shop) error {
		if !s.host.TapBack() {
			return fmt.Errorf("back button: %w", ErrNoHandler)
		}
		return shop.bridge.TapErr()
	})
}

// Close stops the carousel timer and the session goroutine. It is safe to call twice.
func (s *Session) Close() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

func (s *Session) touch(now time.Time) {
	s.lastUsed.Store(now.UnixNano())
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastUsed.Load()))
}
