// Package catalog holds the products, categories and promotions shown by the storefront.
package catalog

import (
	"fmt"
	"strings"
	"sync"

	"jericho-storefront/internal/domain"
)

// Seed is the initial catalog content handed to New.
type Seed struct {
	Categories []string
	Products   []domain.Product
	Promotions []domain.Promotion
}

// Store owns the catalog collections. It is shared between storefront
// sessions and the admin API, so every accessor returns copies.
type Store struct {
	mu         sync.RWMutex
	categories []string
	products   []domain.Product
	promotions []domain.Promotion
}

// New validates the seed and builds a Store. Categories referenced by products
// but missing from seed.Categories are appended in first-seen order.
func New(seed Seed) (*Store, error) {
	s := &Store{}
	for _, c := range seed.Categories {
		name := strings.TrimSpace(c)
		if name == "" {
			return nil, fmt.Errorf("seed category: %w: name required", domain.ErrInvalidInput)
		}
		if s.hasCategory(name) {
			return nil, fmt.Errorf("seed category %q: %w", name, domain.ErrAlreadyExists)
		}
		s.categories = append(s.categories, name)
	}

	seen := make(map[int]struct{}, len(seed.Products))
	for _, p := range seed.Products {
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("seed product %d: %w", p.ID, domain.ErrAlreadyExists)
		}
		seen[p.ID] = struct{}{}
		if err := ValidateProduct(p); err != nil {
			return nil, fmt.Errorf("seed product %d: %w", p.ID, err)
		}
		if !s.hasCategory(p.Category) {
			s.categories = append(s.categories, p.Category)
		}
		s.products = append(s.products, cloneProduct(p))
	}

	promoSeen := make(map[int]struct{}, len(seed.Promotions))
	for _, p := range seed.Promotions {
		if _, dup := promoSeen[p.ID]; dup {
			return nil, fmt.Errorf("seed promotion %d: %w", p.ID, domain.ErrAlreadyExists)
		}
		promoSeen[p.ID] = struct{}{}
		s.promotions = append(s.promotions, p)
	}
	return s, nil
}

// ValidateProduct checks the price and category invariants of a product.
func ValidateProduct(p domain.Product) error {
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if p.OriginalPrice != nil && p.OriginalPrice.LessThan(p.Price) {
		return fmt.Errorf("%w: original price must not be below price", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("%w: category required", domain.ErrInvalidInput)
	}
	return nil
}

// Products returns every product in catalog order.
func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, cloneProduct(p))
	}
	return out
}

// Product looks a product up by id.
func (s *Store) Product(id int) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.productIndex(id)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	p := cloneProduct(s.products[idx])
	return &p, nil
}

// FilterByCategory returns the products of one category. An empty name or
// domain.AllCategories returns everything.
func (s *Store) FilterByCategory(category string) []domain.Product {
	if category == "" || category == domain.AllCategories {
		return s.Products()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, cloneProduct(p))
		}
	}
	return out
}

// Available returns at most limit available products in catalog order.
// A non-positive limit returns all of them.
func (s *Store) Available(limit int) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.products {
		if !p.IsAvailable {
			continue
		}
		out = append(out, cloneProduct(p))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Categories returns the category names in insertion order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.categories...)
}

// HasCategory reports whether name is a known category.
func (s *Store) HasCategory(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasCategory(name)
}

// Promotions returns every promotion in carousel order.
func (s *Store) Promotions() []domain.Promotion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Promotion(nil), s.promotions...)
}

// Promotion looks a promotion up by id.
func (s *Store) Promotion(id int) (*domain.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.promotionIndex(id)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	p := s.promotions[idx]
	return &p, nil
}

// PromotionAt returns the promotion at a carousel position.
func (s *Store) PromotionAt(index int) (*domain.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.promotions) {
		return nil, domain.ErrNotFound
	}
	p := s.promotions[index]
	return &p, nil
}

// PromotionCount returns the number of promotions.
func (s *Store) PromotionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.promotions)
}

func (s *Store) hasCategory(name string) bool {
	for _, c := range s.categories {
		if c == name {
			return true
		}
	}
	return false
}

func (s *Store) productIndex(id int) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) promotionIndex(id int) int {
	for i, p := range s.promotions {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func cloneProduct(p domain.Product) domain.Product {
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		p.OriginalPrice = &op
	}
	return p
}

// Snapshot returns a copy of the whole catalog in the shape New accepts.
func (s *Store) Snapshot() Seed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := Seed{
		Categories: append([]string(nil), s.categories...),
		Products:   make([]domain.Product, 0, len(s.products)),
		Promotions: append([]domain.Promotion(nil), s.promotions...),
	}
	for _, p := range s.products {
		out.Products = append(out.Products, cloneProduct(p))
	}
	return out
}

// Restore replaces the whole catalog with a value taken from Snapshot.
func (s *Store) Restore(seed Seed) {
	products := make([]domain.Product, 0, len(seed.Products))
	for _, p := range seed.Products {
		products = append(products, cloneProduct(p))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append([]string(nil), seed.Categories...)
	s.products = products
	s.promotions = append([]domain.Promotion(nil), seed.Promotions...)
}
