package navigator

import (
	"fmt"

	"jericho-storefront/internal/domain"
)

// Observer is told about every transition after it happened.
type Observer interface {
	ViewChanged(prev, next View)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(prev, next View)

func (f ObserverFunc) ViewChanged(prev, next View) { f(prev, next) }

// Navigator is the storefront screen state machine. It starts on Listing and
// is not safe for concurrent use.
type Navigator struct {
	current   View
	observers []Observer
}

func New() *Navigator {
	return &Navigator{current: Listing{}}
}

// Current returns the active view.
func (n *Navigator) Current() View {
	return n.current
}

// Subscribe registers an observer. Observers run in subscription order.
func (n *Navigator) Subscribe(o Observer) {
	if o == nil {
		return
	}
	n.observers = append(n.observers, o)
}

// SelectProduct focuses an available product. It is rejected from the cart
// and for unavailable products; either way the view does not change.
func (n *Navigator) SelectProduct(p domain.Product) error {
	if n.current.Kind() == KindCart {
		return fmt.Errorf("select product %d from cart: %w", p.ID, domain.ErrTransitionRejected)
	}
	if !p.IsAvailable {
		return fmt.Errorf("select unavailable product %d: %w", p.ID, domain.ErrTransitionRejected)
	}
	n.moveTo(Detail{ProductID: p.ID})
	return nil
}

// OpenCart shows the cart from any screen.
func (n *Navigator) OpenCart() error {
	n.moveTo(Cart{})
	return nil
}

// SelectPromotion opens a promotion from the listing carousel.
func (n *Navigator) SelectPromotion(p domain.Promotion) error {
	if n.current.Kind() != KindListing {
		return fmt.Errorf("select promotion %d from %s: %w", p.ID, n.current.Kind(), domain.ErrTransitionRejected)
	}
	n.moveTo(PromotionDetail{PromotionID: p.ID})
	return nil
}

// Back returns to the listing from any other screen.
func (n *Navigator) Back() error {
	if n.current.Kind() == KindListing {
		return fmt.Errorf("back from listing: %w", domain.ErrTransitionRejected)
	}
	n.moveTo(Listing{})
	return nil
}

// ReturnToListing moves to the listing unconditionally.
func (n *Navigator) ReturnToListing() {
	n.moveTo(Listing{})
}

func (n *Navigator) moveTo(next View) {
	prev := n.current
	if prev == next {
		return
	}
	n.current = next
	for _, o := range n.observers {
		o.ViewChanged(prev, next)
	}
}
