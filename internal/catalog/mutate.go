package catalog

import (
	"fmt"
	"strings"

	"jericho-storefront/internal/domain"
)

// AddProduct appends p with the next free id and returns the stored copy.
func (s *Store) AddProduct(p domain.Product) (*domain.Product, error) {
	if err := ValidateProduct(p); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasCategory(p.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, p.Category)
	}
	p.ID = 1
	for _, existing := range s.products {
		if existing.ID >= p.ID {
			p.ID = existing.ID + 1
		}
	}
	s.products = append(s.products, cloneProduct(p))
	out := cloneProduct(p)
	return &out, nil
}

// UpdateProduct replaces the product with the same id.
func (s *Store) UpdateProduct(p domain.Product) (*domain.Product, error) {
	if err := ValidateProduct(p); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.productIndex(p.ID)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	if !s.hasCategory(p.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, p.Category)
	}
	s.products[idx] = cloneProduct(p)
	out := cloneProduct(p)
	return &out, nil
}

// DeleteProduct removes a product. Cart lines that still reference it become stale.
func (s *Store) DeleteProduct(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.productIndex(id)
	if idx < 0 {
		return domain.ErrNotFound
	}
	s.products = append(s.products[:idx], s.products[idx+1:]...)
	return nil
}

// ToggleAvailability flips the availability flag and returns the updated product.
func (s *Store) ToggleAvailability(id int) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.productIndex(id)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	s.products[idx].IsAvailable = !s.products[idx].IsAvailable
	out := cloneProduct(s.products[idx])
	return &out, nil
}

// AddPromotion appends p with the next free id.
func (s *Store) AddPromotion(p domain.Promotion) *domain.Promotion {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = 1
	for _, existing := range s.promotions {
		if existing.ID >= p.ID {
			p.ID = existing.ID + 1
		}
	}
	s.promotions = append(s.promotions, p)
	return &p
}

func (s *Store) UpdatePromotion(p domain.Promotion) (*domain.Promotion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.promotionIndex(p.ID)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	s.promotions[idx] = p
	return &p, nil
}

func (s *Store) DeletePromotion(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.promotionIndex(id)
	if idx < 0 {
		return domain.ErrNotFound
	}
	s.promotions = append(s.promotions[:idx], s.promotions[idx+1:]...)
	return nil
}

// AddCategory registers a new category name.
func (s *Store) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if err := checkCategoryName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasCategory(name) {
		return domain.ErrAlreadyExists
	}
	s.categories = append(s.categories, name)
	return nil
}

// RenameCategory renames a category and moves its products along.
func (s *Store) RenameCategory(from, to string) error {
	to = strings.TrimSpace(to)
	if err := checkCategoryName(to); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, c := range s.categories {
		if c == from {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	if to != from && s.hasCategory(to) {
		return domain.ErrAlreadyExists
	}
	s.categories[idx] = to
	for i := range s.products {
		if s.products[i].Category == from {
			s.products[i].Category = to
		}
	}
	return nil
}

// DeleteCategory removes a category. Its products move to the first remaining
// category, or to domain.UncategorizedCategory when none is left.
func (s *Store) DeleteCategory(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, c := range s.categories {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	s.categories = append(s.categories[:idx], s.categories[idx+1:]...)

	fallback := domain.UncategorizedCategory
	if len(s.categories) > 0 {
		fallback = s.categories[0]
	}
	moved := false
	for i := range s.products {
		if s.products[i].Category == name {
			s.products[i].Category = fallback
			moved = true
		}
	}
	if moved && !s.hasCategory(fallback) {
		s.categories = append(s.categories, fallback)
	}
	return nil
}

// checkCategoryName rejects empty names and the "All" filter.
func checkCategoryName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: category name required", domain.ErrInvalidInput)
	}
	if strings.EqualFold(name, domain.AllCategories) {
		return fmt.Errorf("%w: %q is reserved", domain.ErrInvalidInput, name)
	}
	return nil
}
