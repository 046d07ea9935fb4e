package bridge

import (
	"errors"
	"testing"

	"jericho-storefront/internal/domain"
	"jericho-storefront/internal/navigator"
)

type stubController struct {
	nav         *navigator.Navigator
	available   map[int]bool
	cartItems   int
	checkoutErr error
	checkouts   int
	adds        int
	backs       int
}

func newStubController() *stubController {
	return &stubController{nav: navigator.New(), available: map[int]bool{}}
}

func (s *stubController) Current() navigator.View { return s.nav.Current() }

func (s *stubController) ProductAvailable(id int) bool { return s.available[id] }

func (s *stubController) CartEmpty() bool { return s.cartItems == 0 }

func (s *stubController) AddToCartAndReturn() error {
	s.adds++
	s.cartItems++
	s.nav.ReturnToListing()
	return nil
}

func (s *stubController) Checkout() error {
	s.checkouts++
	if s.checkoutErr != nil {
		return s.checkoutErr
	}
	s.cartItems = 0
	s.nav.ReturnToListing()
	return nil
}

func (s *stubController) Back() error {
	s.backs++
	return s.nav.Back()
}

func TestAttach_ReadiesHostAndHidesChromeOnListing(t *testing.T) {
	host := NewStateHost()
	ctrl := newStubController()
	Attach(host, ctrl)

	c := host.Chrome()
	if !c.Ready || !c.Expanded {
		t.Fatalf("expected ready and expanded: %+v", c)
	}
	if c.BackVisible || c.MainVisible {
		t.Fatalf("expected no buttons on listing: %+v", c)
	}
}

func TestAdapter_DetailShowsAddToCart(t *testing.T) {
	host := NewStateHost()
	ctrl := newStubController()
	ctrl.available[1] = true
	ctrl.nav.Subscribe(Attach(host, ctrl))

	if err := ctrl.nav.SelectProduct(domain.Product{ID: 1, IsAvailable: true}); err != nil {
		t.Fatalf("SelectProduct: %v", err)
	}
	c := host.Chrome()
	if !c.BackVisible || !c.MainVisible || c.MainText != AddToCartText {
		t.Fatalf("unexpected chrome %+v", c)
	}

	if !host.TapMain() {
		t.Fatalf("expected main handler")
	}
	if ctrl.adds != 1 || ctrl.nav.Current().Kind() != navigator.KindListing {
		t.Fatalf("main tap should add and return, adds=%d", ctrl.adds)
	}
	c = host.Chrome()
	if c.BackVisible || c.MainVisible {
		t.Fatalf("expected chrome hidden after return: %+v", c)
	}
}

func TestAdapter_DetailWithUnavailableFocusHidesMain(t *testing.T) {
	host := NewStateHost()
	ctrl := newStubController()
	ctrl.available[1] = true
	adapter := Attach(host, ctrl)
	ctrl.nav.Subscribe(adapter)

	_ = ctrl.nav.SelectProduct(domain.Product{ID: 1, IsAvailable: true})
	ctrl.available[1] = false
	adapter.Sync()

	if host.Chrome().MainVisible {
		t.Fatalf("main button should hide for an unavailable product")
	}
	host.TapMain()
	if ctrl.adds != 0 {
		t.Fatalf("tap on hidden main button must be ignored")
	}
}

func TestAdapter_CartShowsCheckoutOnlyWhenNonEmpty(t *testing.T) {
	host := NewStateHost()
	ctrl := newStubController()
	adapter := Attach(host, ctrl)
	ctrl.nav.Subscribe(adapter)

	_ = ctrl.nav.OpenCart()
	c := host.Chrome()
	if !c.BackVisible || c.MainVisible {
		t.Fatalf("empty cart: unexpected chrome %+v", c)
	}

	ctrl.cartItems = 2
	adapter.Sync()
	c = host.Chrome()
	if !c.MainVisible || c.MainText != CheckoutText {
		t.Fatalf("non-empty cart: unexpected chrome %+v", c)
	}

	host.TapMain()
	if ctrl.checkouts != 1 {
		t.Fatalf("expected checkout, got %d", ctrl.checkouts)
	}
	if host.Chrome().MainVisible {
		t.Fatalf("main button should hide after checkout")
	}
}

func TestAdapter_BackTap(t *testing.T) {
	host := NewStateHost()
	ctrl := newStubController()
	ctrl.nav.Subscribe(Attach(host, ctrl))

	host.TapBack()
	if ctrl.backs != 0 {
		t.Fatalf("back tap on listing must be ignored")
	}

	_ = ctrl.nav.OpenCart()
	host.TapBack()
	if ctrl.backs != 1 || ctrl.nav.Current().Kind() != navigator.KindListing {
		t.Fatalf("expected back to listing")
	}
	if host.Chrome().BackVisible {
		t.Fatalf("back button should hide on listing")
	}
}

func TestNopHost(t *testing.T) {
	ctrl := newStubController()
	a := Attach(nil, ctrl)
	ctrl.nav.Subscribe(a)
	if err := ctrl.nav.OpenCart(); err != nil {
		t.Fatalf("OpenCart: %v", err)
	}
	if ctrl.nav.Current().Kind() != navigator.KindCart {
		t.Fatalf("navigation must work without a host")
	}
}

func TestAdapter_TapErrReportsFailedCheckout(t *testing.T) {
	host := NewStateHost()
	ctrl := newStubController()
	a := Attach(host, ctrl)
	ctrl.nav.Subscribe(a)
	ctrl.cartItems = 2
	ctrl.checkoutErr = errors.New("broker down")
	if err := ctrl.nav.OpenCart(); err != nil {
		t.Fatalf("OpenCart: %v", err)
	}

	if !host.TapMain() {
		t.Fatalf("expected checkout handler")
	}
	if err := a.TapErr(); !errors.Is(err, ctrl.checkoutErr) {
		t.Fatalf("expected checkout error, got %v", err)
	}
	if err := a.TapErr(); err != nil {
		t.Fatalf("TapErr should clear, got %v", err)
	}

	ctrl.checkoutErr = nil
	host.TapMain()
	if err := a.TapErr(); err != nil || ctrl.checkouts != 2 {
		t.Fatalf("expected clean second checkout, got %v after %d", err, ctrl.checkouts)
	}
}
