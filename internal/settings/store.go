// Package settings keeps the payment and delivery methods offered at checkout.
package settings

import (
	"sync"

	"jericho-storefront/internal/domain"
)

type Seed struct {
	PaymentMethods  []domain.PaymentMethod
	DeliveryMethods []domain.DeliveryMethod
}

// Store is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	payment  []domain.PaymentMethod
	delivery []domain.DeliveryMethod
}

func New(seed Seed) *Store {
	return &Store{
		payment:  append([]domain.PaymentMethod(nil), seed.PaymentMethods...),
		delivery: append([]domain.DeliveryMethod(nil), seed.DeliveryMethods...),
	}
}

func (s *Store) PaymentMethods() []domain.PaymentMethod {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.PaymentMethod(nil), s.payment...)
}

func (s *Store) DeliveryMethods() []domain.DeliveryMethod {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.DeliveryMethod(nil), s.delivery...)
}

// EnabledPaymentMethods returns the methods shoppers may choose from.
func (s *Store) EnabledPaymentMethods() []domain.PaymentMethod {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.PaymentMethod
	for _, m := range s.payment {
		if m.Enabled {
			out = append(out, m)
		}
	}
	return out
}

// EnabledDeliveryMethods returns the methods shoppers may choose from.
func (s *Store) EnabledDeliveryMethods() []domain.DeliveryMethod {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.DeliveryMethod
	for _, m := range s.delivery {
		if m.Enabled {
			out = append(out, m)
		}
	}
	return out
}

func (s *Store) AddPaymentMethod(m domain.PaymentMethod) domain.PaymentMethod {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = 1
	for _, existing := range s.payment {
		if existing.ID >= m.ID {
			m.ID = existing.ID + 1
		}
	}
	s.payment = append(s.payment, m)
	return m
}

func (s *Store) UpdatePaymentMethod(m domain.PaymentMethod) (domain.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.payment {
		if s.payment[i].ID == m.ID {
			s.payment[i] = m
			return m, nil
		}
	}
	return domain.PaymentMethod{}, domain.ErrNotFound
}

func (s *Store) DeletePaymentMethod(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.payment {
		if s.payment[i].ID == id {
			s.payment = append(s.payment[:i], s.payment[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) TogglePaymentMethod(id int) (domain.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.payment {
		if s.payment[i].ID == id {
			s.payment[i].Enabled = !s.payment[i].Enabled
			return s.payment[i], nil
		}
	}
	return domain.PaymentMethod{}, domain.ErrNotFound
}

func (s *Store) AddDeliveryMethod(m domain.DeliveryMethod) domain.DeliveryMethod {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = 1
	for _, existing := range s.delivery {
		if existing.ID >= m.ID {
			m.ID = existing.ID + 1
		}
	}
	s.delivery = append(s.delivery, m)
	return m
}

func (s *Store) UpdateDeliveryMethod(m domain.DeliveryMethod) (domain.DeliveryMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.delivery {
		if s.delivery[i].ID == m.ID {
			s.delivery[i] = m
			return m, nil
		}
	}
	return domain.DeliveryMethod{}, domain.ErrNotFound
}

func (s *Store) DeleteDeliveryMethod(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.delivery {
		if s.delivery[i].ID == id {
			s.delivery = append(s.delivery[:i], s.delivery[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) ToggleDeliveryMethod(id int) (domain.DeliveryMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.delivery {
		if s.delivery[i].ID == id {
			s.delivery[i].Enabled = !s.delivery[i].Enabled
			return s.delivery[i], nil
		}
	}
	return domain.DeliveryMethod{}, domain.ErrNotFound
}

// Snapshot returns a copy of both method lists.
func (s *Store) Snapshot() Seed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Seed{
		PaymentMethods:  append([]domain.PaymentMethod(nil), s.payment...),
		DeliveryMethods: append([]domain.DeliveryMethod(nil), s.delivery...),
	}
}

// Restore replaces both method lists with a value taken from Snapshot.
func (s *Store) Restore(seed Seed) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payment = append([]domain.PaymentMethod(nil), seed.PaymentMethods...)
	s.delivery = append([]domain.DeliveryMethod(nil), seed.DeliveryMethods...)
}
