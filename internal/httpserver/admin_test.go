package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func login(t *testing.T, env *testEnv) string {
	t.Helper()
	rec := env.expect(t, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"`+testPassword+`"}`, http.StatusOK)
	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if resp.AccessToken == "" || resp.TokenType != "Bearer" || resp.ExpiresIn <= 0 {
		t.Fatalf("unexpected login response %+v", resp)
	}
	return resp.AccessToken
}

func TestAdminLogin_Rejections(t *testing.T) {
	env := newTestEnv(t, nil)

	env.expect(t, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"nope"}`, http.StatusUnauthorized)
	env.expect(t, http.MethodPost, "/api/admin/login", `{"username":"admin"}`, http.StatusBadRequest)
	env.expect(t, http.MethodGet, "/api/admin/products", "", http.StatusUnauthorized)

	rec := env.do(t, http.MethodGet, "/api/admin/products", "", "not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", rec.Code)
	}
}

func TestAdminRoutes_MissingWhenAdminDisabled(t *testing.T) {
	env := newTestEnv(t, func(d *Deps) { d.Admin = nil })
	env.expect(t, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"x"}`, http.StatusNotFound)
}

func TestAdminProducts_ChangesReachStorefront(t *testing.T) {
	env := newTestEnv(t, nil)
	token := login(t, env)

	body := `{"name":"Wool Beanie","price":"24.50","description":"Warm","category":"Outerwear","isNew":true}`
	rec := env.do(t, http.MethodPost, "/api/admin/products", body, token)
	if rec.Code != http.StatusCreated || !strings.Contains(rec.Body.String(), `"id":4`) {
		t.Fatalf("create product: %d %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/admin/products", `{"name":"No Price","description":"d","category":"Outerwear"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing price, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/admin/products/2/toggle", "", token)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"isAvailable":true`) {
		t.Fatalf("toggle product: %d %s", rec.Code, rec.Body.String())
	}

	base := "/api/sessions/" + createSession(t, env)
	env.expect(t, http.MethodPost, base+"/products/2/select", "", http.StatusOK)

	rec = env.do(t, http.MethodDelete, "/api/admin/products/2", "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete product: %d", rec.Code)
	}
	snap := decodeSnapshot(t, env.expect(t, http.MethodGet, base, "", http.StatusOK))
	if !snap.FocusMissing || snap.Chrome.MainVisible {
		t.Fatalf("deleted focus should be reported and hide the main button, got %+v", snap.Chrome)
	}
	env.expect(t, http.MethodPost, base+"/detail/add", "", http.StatusNotFound)

	rec = env.do(t, http.MethodDelete, "/api/admin/products/2", "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete should be 404, got %d", rec.Code)
	}
}

func TestAdminCategoriesAndMethods(t *testing.T) {
	env := newTestEnv(t, nil)
	token := login(t, env)

	if rec := env.do(t, http.MethodPost, "/api/admin/categories", `{"name":"Hats"}`, token); rec.Code != http.StatusCreated {
		t.Fatalf("add category: %d %s", rec.Code, rec.Body.String())
	}
	if rec := env.do(t, http.MethodPost, "/api/admin/categories", `{"name":"Hats"}`, token); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate category should conflict, got %d", rec.Code)
	}
	if rec := env.do(t, http.MethodPut, "/api/admin/categories/Pants", `{"name":"Trousers"}`, token); rec.Code != http.StatusOK {
		t.Fatalf("rename category: %d %s", rec.Code, rec.Body.String())
	}

	rec := env.expect(t, http.MethodGet, "/api/catalog/products?category=Trousers", "", http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"name":"Denim Jeans"`) {
		t.Fatalf("renamed category should keep its products: %s", rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/admin/payment-methods/1/toggle", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle payment method: %d", rec.Code)
	}
	rec = env.expect(t, http.MethodGet, "/api/checkout/options", "", http.StatusOK)
	if strings.Contains(rec.Body.String(), `"name":"Card"`) {
		t.Fatalf("disabled payment method must not be offered: %s", rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/admin/delivery-methods", `{"name":"Express","description":"1-2 days","price":12.99}`, token)
	if rec.Code != http.StatusCreated || !strings.Contains(rec.Body.String(), `"price":"12.99"`) {
		t.Fatalf("add delivery method: %d %s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, http.MethodPut, "/api/admin/delivery-methods/99", `{"name":"x","description":"y"}`, token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("update missing delivery method should be 404, got %d", rec.Code)
	}
}

func TestAdminPromotions(t *testing.T) {
	env := newTestEnv(t, nil)
	token := login(t, env)

	rec := env.do(t, http.MethodPost, "/api/admin/promotions", `{"title":"Summer","description":"Hot deals","discount":"40%"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add promotion: %d %s", rec.Code, rec.Body.String())
	}
	rec = env.expect(t, http.MethodGet, "/api/catalog/promotions", "", http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"count":3`) {
		t.Fatalf("expected three promotions: %s", rec.Body.String())
	}
	if rec := env.do(t, http.MethodDelete, "/api/admin/promotions/1", "", token); rec.Code != http.StatusNoContent {
		t.Fatalf("delete promotion: %d", rec.Code)
	}
}
