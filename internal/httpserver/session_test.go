package httpserver

import (
	"net/http"
	"testing"

	"jericho-storefront/internal/bridge"
	"jericho-storefront/internal/service/storefront"
)

func createSession(t *testing.T, env *testEnv) string {
	t.Helper()
	rec := env.expect(t, http.MethodPost, "/api/sessions", "", http.StatusCreated)
	snap := decodeSnapshot(t, rec)
	if snap.SessionID == "" {
		t.Fatalf("expected session id in body=%s", rec.Body.String())
	}
	if rec.Header().Get("Location") != "/api/sessions/"+snap.SessionID {
		t.Fatalf("unexpected location %q", rec.Header().Get("Location"))
	}
	return snap.SessionID
}

func TestSessionRoutes_PurchaseFlow(t *testing.T) {
	env := newTestEnv(t, nil)
	base := "/api/sessions/" + createSession(t, env)

	snap := decodeSnapshot(t, env.expect(t, http.MethodGet, base, "", http.StatusOK))
	if snap.View != "listing" || len(snap.Products) != 3 || snap.Chrome == nil || snap.Chrome.BackVisible {
		t.Fatalf("unexpected initial snapshot %+v", snap)
	}

	rec := env.expect(t, http.MethodPost, base+"/products/2/select", "", http.StatusConflict)
	body := decodeError(t, rec)
	if body.Snapshot == nil || body.Snapshot.View != "listing" || body.Snapshot.Notice == nil {
		t.Fatalf("expected listing snapshot with notice, got %s", rec.Body.String())
	}

	snap = decodeSnapshot(t, env.expect(t, http.MethodPost, base+"/products/1/select", "", http.StatusOK))
	if snap.View != "detail" || snap.Product == nil || snap.Product.DiscountPercent != 31 {
		t.Fatalf("unexpected detail snapshot %s", snap.View)
	}
	if !snap.Chrome.MainVisible || snap.Chrome.MainText != bridge.AddToCartText || !snap.Chrome.BackVisible {
		t.Fatalf("unexpected chrome %+v", snap.Chrome)
	}

	snap = decodeSnapshot(t, env.expect(t, http.MethodPost, base+"/host/main", "", http.StatusOK))
	if snap.View != "listing" || snap.Cart.Count != 1 {
		t.Fatalf("main button should add and return, got view=%s count=%d", snap.View, snap.Cart.Count)
	}

	env.expect(t, http.MethodPost, base+"/products/3/select", "", http.StatusOK)
	snap = decodeSnapshot(t, env.expect(t, http.MethodPost, base+"/detail/add", `{"openCart":true}`, http.StatusOK))
	if snap.View != "cart" || len(snap.Cart.Lines) != 2 || snap.Checkout == nil {
		t.Fatalf("expected cart with two lines, got %+v", snap.Cart)
	}
	if snap.Chrome.MainText != bridge.CheckoutText {
		t.Fatalf("expected checkout button, got %+v", snap.Chrome)
	}

	env.expect(t, http.MethodPatch, base+"/cart/lines/1", `{"quantity":0}`, http.StatusBadRequest)
	env.expect(t, http.MethodPatch, base+"/cart/lines/9", `{"quantity":2}`, http.StatusNotFound)
	snap = decodeSnapshot(t, env.expect(t, http.MethodPatch, base+"/cart/lines/1", `{"quantity":2}`, http.StatusOK))
	if got := cartTotal(snap); got != "209.97" {
		t.Fatalf("expected total 209.97, got %s", got)
	}

	snap = decodeSnapshot(t, env.expect(t, http.MethodPost, base+"/checkout", "", http.StatusOK))
	if snap.View != "listing" || snap.Cart.Count != 0 || snap.LastOrder == nil {
		t.Fatalf("unexpected post-checkout snapshot view=%s count=%d", snap.View, snap.Cart.Count)
	}
	if snap.Notice == nil || snap.Notice.Text != storefront.MsgOrderPlaced {
		t.Fatalf("expected success notice, got %+v", snap.Notice)
	}
	if len(env.submitter.orders) != 1 || env.submitter.orders[0].Total.StringFixed(2) != "209.97" {
		t.Fatalf("unexpected submitted orders %+v", env.submitter.orders)
	}
}

func TestSessionRoutes_CheckoutFailureKeepsCart(t *testing.T) {
	env := newTestEnv(t, nil)
	env.submitter.err = errSubmitDown
	base := "/api/sessions/" + createSession(t, env)

	env.expect(t, http.MethodPost, base+"/products/1/select", "", http.StatusOK)
	env.expect(t, http.MethodPost, base+"/detail/add", "", http.StatusOK)

	rec := env.expect(t, http.MethodPost, base+"/checkout", "", http.StatusInternalServerError)
	body := decodeError(t, rec)
	if body.Message != "internal error" || body.Snapshot == nil {
		t.Fatalf("unexpected error body %s", rec.Body.String())
	}
	if body.Snapshot.View != "cart" || body.Snapshot.Cart.Count != 1 {
		t.Fatalf("cart must be kept on failure, got view=%s count=%d", body.Snapshot.View, body.Snapshot.Cart.Count)
	}
	if body.Snapshot.Notice == nil || body.Snapshot.Notice.Text != storefront.MsgOrderFailed {
		t.Fatalf("expected failure notice, got %+v", body.Snapshot.Notice)
	}

	rec = env.expect(t, http.MethodPost, base+"/host/main", "", http.StatusInternalServerError)
	body = decodeError(t, rec)
	if body.Snapshot == nil || body.Snapshot.View != "cart" || body.Snapshot.Cart.Count != 1 {
		t.Fatalf("host checkout failure must keep the cart, got %s", rec.Body.String())
	}

	env.submitter.err = nil
	snap := decodeSnapshot(t, env.expect(t, http.MethodPost, base+"/host/main", "", http.StatusOK))
	if snap.View != "listing" || snap.Cart.Count != 0 || len(env.submitter.orders) != 1 {
		t.Fatalf("host checkout should place the order, got view=%s count=%d", snap.View, snap.Cart.Count)
	}
}

func TestSessionRoutes_NavigationAndCarousel(t *testing.T) {
	env := newTestEnv(t, nil)
	base := "/api/sessions/" + createSession(t, env)

	env.expect(t, http.MethodPost, base+"/back", "", http.StatusConflict)
	env.expect(t, http.MethodPost, base+"/host/back", "", http.StatusConflict)

	snap := decodeSnapshot(t, env.expect(t, http.MethodPost, base+"/promotions/previous", "", http.StatusOK))
	if snap.Carousel.Index != 1 || snap.Carousel.Direction != "backward" || !snap.Carousel.InFlight {
		t.Fatalf("unexpected carousel %+v", snap.Carousel)
	}
	snap = decodeSnapshot(t, env.expect(t, http.MethodPost, base+"/promotions/next", "", http.StatusOK))
	if snap.Carousel.Index != 1 {
		t.Fatalf("next during a transition should be ignored, got %d", snap.Carousel.Index)
	}
	env.expect(t, http.MethodPost, base+"/promotions/settle", "", http.StatusOK)

	snap = decodeSnapshot(t, env.expect(t, http.MethodPost, base+"/promotions/select", "", http.StatusOK))
	if snap.View != "promotion" || snap.Promotion == nil || snap.Promotion.ID != 2 || len(snap.Featured) != 2 {
		t.Fatalf("unexpected promotion snapshot %+v", snap.Promotion)
	}

	snap = decodeSnapshot(t, env.expect(t, http.MethodPost, base+"/cart/open", "", http.StatusOK))
	if snap.View != "cart" {
		t.Fatalf("expected cart, got %s", snap.View)
	}
	snap = decodeSnapshot(t, env.expect(t, http.MethodPost, base+"/back", "", http.StatusOK))
	if snap.View != "listing" {
		t.Fatalf("back from cart should reach listing, got %s", snap.View)
	}

	snap = decodeSnapshot(t, env.expect(t, http.MethodPost, base+"/category", `{"category":"Pants"}`, http.StatusOK))
	if snap.Category != "Pants" || len(snap.Products) != 1 {
		t.Fatalf("unexpected filtered listing %+v", snap.Products)
	}
	env.expect(t, http.MethodPost, base+"/category", `{"category":"Hats"}`, http.StatusNotFound)
	env.expect(t, http.MethodPost, base+"/category", `{}`, http.StatusBadRequest)

	env.expect(t, http.MethodPost, base+"/products/3/select", "", http.StatusOK)
	snap = decodeSnapshot(t, env.expect(t, http.MethodPost, base+"/home", "", http.StatusOK))
	if snap.View != "listing" {
		t.Fatalf("home should reach listing, got %s", snap.View)
	}
}

func TestSessionRoutes_RemoveLineAndEmptyCheckout(t *testing.T) {
	env := newTestEnv(t, nil)
	base := "/api/sessions/" + createSession(t, env)

	env.expect(t, http.MethodPost, base+"/products/3/select", "", http.StatusOK)
	env.expect(t, http.MethodPost, base+"/detail/add", `{"openCart":true}`, http.StatusOK)
	env.expect(t, http.MethodDelete, base+"/cart/lines/x", "", http.StatusBadRequest)
	snap := decodeSnapshot(t, env.expect(t, http.MethodDelete, base+"/cart/lines/0", "", http.StatusOK))
	if snap.Cart.Count != 0 || snap.Chrome.MainVisible {
		t.Fatalf("empty cart should hide the main button, got %+v", snap.Chrome)
	}

	snap = decodeSnapshot(t, env.expect(t, http.MethodPost, base+"/checkout", "", http.StatusOK))
	if snap.View != "listing" || len(env.submitter.orders) != 0 {
		t.Fatalf("empty checkout should return to listing without submitting")
	}
}

func TestSessionRoutes_UnknownAndClosedSessions(t *testing.T) {
	env := newTestEnv(t, nil)
	env.expect(t, http.MethodGet, "/api/sessions/does-not-exist", "", http.StatusNotFound)

	id := createSession(t, env)
	env.expect(t, http.MethodDelete, "/api/sessions/"+id, "", http.StatusNoContent)
	env.expect(t, http.MethodGet, "/api/sessions/"+id, "", http.StatusNotFound)
	if env.sessions.Len() != 0 {
		t.Fatalf("expected no live sessions, got %d", env.sessions.Len())
	}
}
