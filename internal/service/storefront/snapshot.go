package storefront

import (
	"github.com/shopspring/decimal"
	"jericho-storefront/internal/bridge"
	"jericho-storefront/internal/cart"
	"jericho-storefront/internal/domain"
	"jericho-storefront/internal/navigator"
)

// ProductCard is a product with its derived display fields.
type ProductCard struct {
	domain.Product
	DiscountPercent int64 `json:"discountPercent,omitempty"`
}

func cardOf(p domain.Product) ProductCard {
	return ProductCard{Product: p, DiscountPercent: p.DiscountPercent()}
}

func cardsOf(products []domain.Product) []ProductCard {
	out := make([]ProductCard, 0, len(products))
	for _, p := range products {
		out = append(out, cardOf(p))
	}
	return out
}

type CarouselState struct {
	Index     int               `json:"index"`
	Count     int               `json:"count"`
	Direction string            `json:"direction"`
	InFlight  bool              `json:"inFlight"`
	Active    *domain.Promotion `json:"active,omitempty"`
}

type CartState struct {
	Lines    []cart.Line     `json:"lines"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
	HasStale bool            `json:"hasStale"`
}

type CheckoutOptions struct {
	PaymentMethods  []domain.PaymentMethod  `json:"paymentMethods"`
	DeliveryMethods []domain.DeliveryMethod `json:"deliveryMethods"`
}

// Snapshot is everything a renderer needs for the current screen.
type Snapshot struct {
	SessionID  string   `json:"sessionId,omitempty"`
	View       string   `json:"view"`
	Category   string   `json:"category"`
	Categories []string `json:"categories"`

	// Listing
	Products []ProductCard `json:"products,omitempty"`
	Carousel CarouselState `json:"carousel"`

	// Detail
	Product *ProductCard `json:"product,omitempty"`

	// PromotionDetail
	Promotion *domain.Promotion `json:"promotion,omitempty"`
	Featured  []ProductCard     `json:"featured,omitempty"`

	// FocusMissing is set when the focused product or promotion was removed
	// from the catalog after it was opened.
	FocusMissing bool `json:"focusMissing,omitempty"`

	Cart      CartState        `json:"cart"`
	Checkout  *CheckoutOptions `json:"checkout,omitempty"`
	Notice    *Notice          `json:"notice,omitempty"`
	LastOrder *domain.Order    `json:"lastOrder,omitempty"`
	Chrome    *bridge.Chrome   `json:"chrome,omitempty"`
}

// Snapshot renders the shop state. Host chrome is re-synced first since
// admin edits can change availability behind the shop's back.
func (s *Shop) Snapshot() Snapshot {
	s.syncCarousel()
	s.bridge.Sync()
	view := s.nav.Current()
	snap := Snapshot{
		View:       view.Kind().String(),
		Category:   s.SelectedCategory(),
		Categories: s.Categories(),
		Carousel: CarouselState{
			Index:     s.carousel.Index(),
			Count:     s.carousel.Count(),
			Direction: s.carousel.Direction().String(),
			InFlight:  s.carousel.InFlight(),
		},
		Cart: CartState{
			Lines:    s.cart.Lines(),
			Count:    s.cart.Count(),
			Total:    s.cart.Total(),
			HasStale: s.cart.HasStale(),
		},
		Notice:    s.notice,
		LastOrder: s.lastOrder,
	}
	if promo, err := s.catalog.PromotionAt(s.carousel.Index()); err == nil {
		snap.Carousel.Active = promo
	}

	switch v := view.(type) {
	case navigator.Listing:
		snap.Products = cardsOf(s.Products())
	case navigator.Detail:
		if p, err := s.catalog.Product(v.ProductID); err == nil {
			card := cardOf(*p)
			snap.Product = &card
		} else {
			snap.FocusMissing = true
		}
	case navigator.PromotionDetail:
		if promo, err := s.catalog.Promotion(v.PromotionID); err == nil {
			snap.Promotion = promo
			snap.Featured = cardsOf(s.FeaturedProducts())
		} else {
			snap.FocusMissing = true
		}
	case navigator.Cart:
		payment, delivery := s.CheckoutOptions()
		snap.Checkout = &CheckoutOptions{PaymentMethods: payment, DeliveryMethods: delivery}
	}
	return snap
}
