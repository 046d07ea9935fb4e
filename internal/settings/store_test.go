package settings

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"jericho-storefront/internal/domain"
)

func TestStore_PaymentMethods(t *testing.T) {
	s := New(Seed{PaymentMethods: []domain.PaymentMethod{
		{ID: 1, Name: "Credit Card", Enabled: true},
		{ID: 3, Name: "Bank Transfer", Enabled: false},
	}})

	added := s.AddPaymentMethod(domain.PaymentMethod{Name: "Crypto", Enabled: true})
	if added.ID != 4 {
		t.Fatalf("expected id 4, got %d", added.ID)
	}
	if got := s.EnabledPaymentMethods(); len(got) != 2 {
		t.Fatalf("expected 2 enabled, got %+v", got)
	}

	toggled, err := s.TogglePaymentMethod(3)
	if err != nil || !toggled.Enabled {
		t.Fatalf("toggle: %+v %v", toggled, err)
	}
	if err := s.DeletePaymentMethod(1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.UpdatePaymentMethod(domain.PaymentMethod{ID: 1}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStore_DeliveryMethods(t *testing.T) {
	s := New(Seed{})
	first := s.AddDeliveryMethod(domain.DeliveryMethod{Name: "Standard", Price: decimal.RequireFromString("5.99"), Enabled: true})
	if first.ID != 1 {
		t.Fatalf("expected id 1 on empty store, got %d", first.ID)
	}
	first.Price = decimal.RequireFromString("6.49")
	if _, err := s.UpdateDeliveryMethod(first); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := s.DeliveryMethods(); !got[0].Price.Equal(decimal.RequireFromString("6.49")) {
		t.Fatalf("update not applied: %+v", got)
	}
	if _, err := s.ToggleDeliveryMethod(1); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := s.EnabledDeliveryMethods(); len(got) != 0 {
		t.Fatalf("expected none enabled, got %+v", got)
	}
	if err := s.DeleteDeliveryMethod(7); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStore_Restore(t *testing.T) {
	s := New(Seed{PaymentMethods: []domain.PaymentMethod{{ID: 1, Name: "Card", Enabled: true}}})
	before := s.Snapshot()
	s.AddDeliveryMethod(domain.DeliveryMethod{Name: "Express", Enabled: true})
	if _, err := s.TogglePaymentMethod(1); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	s.Restore(before)
	if len(s.DeliveryMethods()) != 0 || len(s.EnabledPaymentMethods()) != 1 {
		t.Fatalf("restore did not bring back the previous methods: %+v", s.Snapshot())
	}
}
