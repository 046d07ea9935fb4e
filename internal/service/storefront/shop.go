// Package storefront composes the catalog, cart, navigator, carousel and host
// bridge into one shopper-facing state machine.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"jericho-storefront/internal/bridge"
	"jericho-storefront/internal/carousel"
	"jericho-storefront/internal/cart"
	"jericho-storefront/internal/catalog"
	"jericho-storefront/internal/domain"
	"jericho-storefront/internal/navigator"
	"jericho-storefront/internal/order"
	"jericho-storefront/internal/settings"
)

const (
	// FeaturedLimit is how many available products a promotion page lists.
	FeaturedLimit = 4

	checkoutTimeout = 10 * time.Second

	MsgOrderPlaced        = "Order placed successfully!"
	MsgOrderFailed        = "Your order could not be placed. Please try again."
	MsgCartStale          = "Some items in your cart are no longer available. Remove them to continue."
	MsgProductUnavailable = "This product is currently unavailable."
	MsgAddedToCart        = "Added to cart"
)

// NoticeKind classifies a notice for rendering.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is the last user-visible message. It is cleared by the next action.
type Notice struct {
	Kind NoticeKind `json:"kind"`
	Text string     `json:"text"`
}

// Deps are the shared collaborators of every shop.
type Deps struct {
	Catalog   *catalog.Store
	Settings  *settings.Store
	Submitter cart.OrderSubmitter
	Logger    *log.Logger
}

// Shop is one shopper's storefront. It is not safe for concurrent use; run it
// inside a Session when more than one goroutine needs it.
type Shop struct {
	catalog   *catalog.Store
	settings  *settings.Store
	submitter cart.OrderSubmitter
	logger    *log.Logger

	cart     *cart.Aggregator
	nav      *navigator.Navigator
	carousel *carousel.Carousel
	bridge   *bridge.Adapter

	ctx       context.Context
	category  string
	notice    *Notice
	lastOrder *domain.Order
}

// NewShop builds a shop starting on the listing. host may be nil. Without a
// submitter, orders go to an order.Stub.
func NewShop(deps Deps, host bridge.Host) *Shop {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	submitter := deps.Submitter
	if submitter == nil {
		submitter = order.NewStub(logger)
	}
	s := &Shop{
		catalog:   deps.Catalog,
		settings:  deps.Settings,
		submitter: submitter,
		logger:    logger,
		cart:      cart.New(deps.Catalog),
		nav:       navigator.New(),
		carousel:  carousel.New(deps.Catalog.PromotionCount()),
		ctx:       context.Background(),
		category:  domain.AllCategories,
	}
	s.bridge = bridge.Attach(host, s)
	s.nav.Subscribe(s.bridge)
	return s
}

// Current implements bridge.Controller.
func (s *Shop) Current() navigator.View {
	return s.nav.Current()
}

// ProductAvailable implements bridge.Controller.
func (s *Shop) ProductAvailable(id int) bool {
	p, err := s.catalog.Product(id)
	return err == nil && p.IsAvailable
}

// CartEmpty implements bridge.Controller.
func (s *Shop) CartEmpty() bool {
	return s.cart.IsEmpty()
}

// Products lists the catalog filtered by the selected category.
func (s *Shop) Products() []domain.Product {
	return s.catalog.FilterByCategory(s.SelectedCategory())
}

// Categories returns "All" followed by the catalog categories.
func (s *Shop) Categories() []string {
	return append([]string{domain.AllCategories}, s.catalog.Categories()...)
}

// SelectedCategory is the active filter. A category that was renamed or
// deleted since it was selected falls back to "All".
func (s *Shop) SelectedCategory() string {
	if s.category != domain.AllCategories && !s.catalog.HasCategory(s.category) {
		s.category = domain.AllCategories
	}
	return s.category
}

// SelectCategory filters the listing. Unknown categories are rejected.
func (s *Shop) SelectCategory(name string) error {
	s.clearNotice()
	if name != domain.AllCategories && !s.catalog.HasCategory(name) {
		return fmt.Errorf("category %q: %w", name, domain.ErrNotFound)
	}
	s.category = name
	return nil
}

// SelectProduct opens the detail view for an available product.
func (s *Shop) SelectProduct(id int) error {
	s.clearNotice()
	p, err := s.catalog.Product(id)
	if err != nil {
		return fmt.Errorf("select product %d: %w", id, err)
	}
	if err := s.nav.SelectProduct(*p); err != nil {
		if !p.IsAvailable {
			s.setNotice(NoticeError, MsgProductUnavailable)
		}
		return err
	}
	return nil
}

func (s *Shop) OpenCart() error {
	s.clearNotice()
	return s.nav.OpenCart()
}

func (s *Shop) Back() error {
	s.clearNotice()
	return s.nav.Back()
}

// Home returns to the listing from anywhere.
func (s *Shop) Home() {
	s.clearNotice()
	s.nav.ReturnToListing()
}

// ActivePromotion is the promotion the carousel currently displays.
func (s *Shop) ActivePromotion() (*domain.Promotion, error) {
	s.syncCarousel()
	return s.catalog.PromotionAt(s.carousel.Index())
}

// SelectActivePromotion opens the displayed promotion.
func (s *Shop) SelectActivePromotion() error {
	s.clearNotice()
	promo, err := s.ActivePromotion()
	if err != nil {
		return fmt.Errorf("select promotion: %w", err)
	}
	return s.nav.SelectPromotion(*promo)
}

func (s *Shop) NextPromotion() bool {
	s.syncCarousel()
	return s.carousel.Next()
}

func (s *Shop) PreviousPromotion() bool {
	s.syncCarousel()
	return s.carousel.Previous()
}

// SettlePromotion marks the running carousel transition finished.
func (s *Shop) SettlePromotion() {
	s.carousel.Settle()
}

// TickPromotion is the auto-advance step.
func (s *Shop) TickPromotion() bool {
	s.syncCarousel()
	return s.carousel.Tick()
}

// CheckoutOptions returns the enabled payment and delivery methods.
func (s *Shop) CheckoutOptions() ([]domain.PaymentMethod, []domain.DeliveryMethod) {
	if s.settings == nil {
		return nil, nil
	}
	return s.settings.EnabledPaymentMethods(), s.settings.EnabledDeliveryMethods()
}

// FeaturedProducts are listed on a promotion page.
func (s *Shop) FeaturedProducts() []domain.Product {
	return s.catalog.Available(FeaturedLimit)
}

// AddToCartAndReturn adds the focused product and goes back to the listing.
// It implements bridge.Controller.
func (s *Shop) AddToCartAndReturn() error {
	if err := s.addFocused(); err != nil {
		return err
	}
	s.nav.ReturnToListing()
	return nil
}

// AddToCartAndOpenCart adds the focused product and shows the cart.
func (s *Shop) AddToCartAndOpenCart() error {
	if err := s.addFocused(); err != nil {
		return err
	}
	return s.nav.OpenCart()
}

func (s *Shop) addFocused() error {
	s.clearNotice()
	id, ok := navigator.FocusedProduct(s.nav.Current())
	if !ok {
		return fmt.Errorf("add to cart from %s: %w", s.nav.Current().Kind(), domain.ErrTransitionRejected)
	}
	p, err := s.catalog.Product(id)
	if err != nil {
		return fmt.Errorf("add product %d: %w", id, err)
	}
	if !p.IsAvailable {
		s.setNotice(NoticeError, MsgProductUnavailable)
		s.bridge.Sync()
		return fmt.Errorf("add unavailable product %d: %w", id, domain.ErrTransitionRejected)
	}
	s.cart.Add(*p)
	s.setNotice(NoticeSuccess, MsgAddedToCart)
	s.bridge.Sync()
	return nil
}

// SetQuantity changes a cart line quantity. Quantities below one are rejected.
func (s *Shop) SetQuantity(index, quantity int) error {
	s.clearNotice()
	if err := s.cart.SetQuantity(index, quantity); err != nil {
		return fmt.Errorf("cart line %d: %w", index, err)
	}
	return nil
}

// RemoveLine drops a cart line.
func (s *Shop) RemoveLine(index int) error {
	s.clearNotice()
	if err := s.cart.Remove(index); err != nil {
		return fmt.Errorf("cart line %d: %w", index, err)
	}
	s.bridge.Sync()
	return nil
}

// Checkout implements bridge.Controller using the shop's own context.
func (s *Shop) Checkout() error {
	ctx, cancel := context.WithTimeout(s.ctx, checkoutTimeout)
	defer cancel()
	return s.CheckoutContext(ctx)
}

// CheckoutContext submits the cart. Success clears the cart and returns to
// the listing; an empty cart does the same without submitting. On failure
// the cart is kept and the cart view is shown with an error notice.
func (s *Shop) CheckoutContext(ctx context.Context) error {
	s.clearNotice()
	placed, err := s.cart.Checkout(ctx, s.submitter)
	if err != nil {
		if errors.Is(err, domain.ErrStaleReference) {
			s.setNotice(NoticeError, MsgCartStale)
		} else {
			s.setNotice(NoticeError, MsgOrderFailed)
		}
		s.logger.Printf("storefront: checkout failed error=%v", err)
		_ = s.nav.OpenCart()
		s.bridge.Sync()
		return err
	}
	if placed != nil {
		s.lastOrder = placed
		s.setNotice(NoticeSuccess, MsgOrderPlaced)
		s.logger.Printf("storefront: order placed id=%s total=%s", placed.ID, placed.Total.StringFixed(2))
	}
	s.nav.ReturnToListing()
	s.bridge.Sync()
	return nil
}

// LastOrder is the most recent order placed in this shop.
func (s *Shop) LastOrder() *domain.Order {
	return s.lastOrder
}

func (s *Shop) Notice() *Notice {
	return s.notice
}

func (s *Shop) setNotice(kind NoticeKind, text string) {
	s.notice = &Notice{Kind: kind, Text: text}
}

func (s *Shop) clearNotice() {
	s.notice = nil
}

func (s *Shop) syncCarousel() {
	if n := s.catalog.PromotionCount(); n != s.carousel.Count() {
		s.carousel.Resize(n)
	}
}
