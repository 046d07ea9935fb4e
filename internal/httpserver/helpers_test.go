package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"jericho-storefront/internal/catalog"
	"jericho-storefront/internal/domain"
	"jericho-storefront/internal/service/admin"
	"jericho-storefront/internal/service/storefront"
	"jericho-storefront/internal/settings"
)

const testPassword = "s3cret"

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubSubmitter struct {
	err    error
	orders []domain.Order
}

func (s *stubSubmitter) Submit(_ context.Context, o domain.Order) error {
	if s.err != nil {
		return s.err
	}
	s.orders = append(s.orders, o)
	return nil
}

type testEnv struct {
	router    *gin.Engine
	catalog   *catalog.Store
	sessions  *storefront.Registry
	submitter *stubSubmitter
}

func newTestEnv(t *testing.T, tweak func(*Deps)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	orig := decimal.RequireFromString("129.99")
	store, err := catalog.New(catalog.Seed{
		Products: []domain.Product{
			{ID: 1, Name: "Premium Jacket", Price: decimal.RequireFromString("89.99"), OriginalPrice: &orig, Category: "Outerwear", IsAvailable: true},
			{ID: 2, Name: "Casual Tee", Price: decimal.RequireFromString("39.99"), Category: "T-Shirts", IsAvailable: false},
			{ID: 3, Name: "Denim Jeans", Price: decimal.RequireFromString("59.99"), Category: "Pants", IsAvailable: true},
		},
		Promotions: []domain.Promotion{
			{ID: 1, Title: "Unique Collection", Discount: "30%"},
			{ID: 2, Title: "Flash Sale", Discount: "24HR"},
		},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	st := settings.New(settings.Seed{
		PaymentMethods:  []domain.PaymentMethod{{ID: 1, Name: "Card", Description: "Visa", Enabled: true}},
		DeliveryMethods: []domain.DeliveryMethod{{ID: 1, Name: "Standard", Description: "3-5 days", Price: decimal.Zero, Enabled: true}},
	})
	sub := &stubSubmitter{}
	sessions := storefront.NewRegistry(storefront.Deps{Catalog: store, Settings: st, Submitter: sub}, time.Hour, 0)
	t.Cleanup(sessions.CloseAll)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	adminSvc := admin.New(store, st, nil, admin.Credentials{
		Username:     "admin",
		PasswordHash: string(hash),
		Secret:       "test-signing-key",
		TokenTTL:     time.Hour,
	}, nil)

	deps := Deps{
		Catalog:        store,
		Settings:       st,
		Sessions:       sessions,
		Admin:          adminSvc,
		AllowedOrigins: []string{"*"},
	}
	if tweak != nil {
		tweak(&deps)
	}
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return &testEnv{router: router, catalog: store, sessions: sessions, submitter: sub}
}

func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) expect(t *testing.T, method, path, body string, want int) *httptest.ResponseRecorder {
	t.Helper()
	rec := e.do(t, method, path, body, "")
	if rec.Code != want {
		t.Fatalf("%s %s: expected %d, got %d body=%s", method, path, want, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) storefront.Snapshot {
	t.Helper()
	var snap storefront.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v body=%s", err, rec.Body.String())
	}
	return snap
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error: %v body=%s", err, rec.Body.String())
	}
	return body
}

var errSubmitDown = errors.New("order service down")

// cartTotal is compared as a string so decimal formatting stays in the assertion.
func cartTotal(snap storefront.Snapshot) string {
	return snap.Cart.Total.StringFixed(2)
}
