package admin

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"jericho-storefront/internal/domain"
)

// ProductInput is the editable part of a product.
type ProductInput struct {
	Name          string           `json:"name"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Image         string           `json:"image"`
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	IsNew         bool             `json:"isNew"`
	IsAvailable   *bool            `json:"isAvailable"`
}

func (in ProductInput) product() (domain.Product, error) {
	p := domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Image:       strings.TrimSpace(in.Image),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		IsNew:       in.IsNew,
		IsAvailable: true,
	}
	if p.Name == "" {
		return p, required("name")
	}
	price, err := decimalRequired(in.Price, "price")
	if err != nil {
		return p, err
	}
	p.Price = price.Round(2)
	if p.Description == "" {
		return p, required("description")
	}
	if p.Category == "" {
		return p, required("category")
	}
	if in.OriginalPrice != nil && !in.OriginalPrice.IsZero() {
		orig := in.OriginalPrice.Round(2)
		p.OriginalPrice = &orig
	}
	if p.Image == "" {
		p.Image = domain.DefaultProductImage
	}
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}
	return p, nil
}

func (s *Service) Products() []domain.Product {
	return s.catalog.Products()
}

// AddProduct creates a product with the next free id.
func (s *Service) AddProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	p, err := in.product()
	if err != nil {
		return nil, err
	}
	var created *domain.Product
	err = s.change(ctx, "add product", func() (err error) {
		created, err = s.catalog.AddProduct(p)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("admin: product added id=%d name=%q", created.ID, created.Name)
	return created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int, in ProductInput) (*domain.Product, error) {
	p, err := in.product()
	if err != nil {
		return nil, err
	}
	p.ID = id
	var updated *domain.Product
	err = s.change(ctx, "update product", func() (err error) {
		updated, err = s.catalog.UpdateProduct(p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int) error {
	err := s.change(ctx, "delete product", func() error {
		return s.catalog.DeleteProduct(id)
	})
	if err != nil {
		return err
	}
	s.logger.Printf("admin: product deleted id=%d", id)
	return nil
}

// ToggleProduct flips product availability.
func (s *Service) ToggleProduct(ctx context.Context, id int) (*domain.Product, error) {
	var toggled *domain.Product
	err := s.change(ctx, "toggle product", func() (err error) {
		toggled, err = s.catalog.ToggleAvailability(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toggled, nil
}

// PromotionInput is the editable part of a promotion.
type PromotionInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Discount    string `json:"discount"`
	EndDate     string `json:"endDate"`
}

func (in PromotionInput) promotion() (domain.Promotion, error) {
	p := domain.Promotion{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Image:       strings.TrimSpace(in.Image),
		Discount:    strings.TrimSpace(in.Discount),
		EndDate:     strings.TrimSpace(in.EndDate),
	}
	switch {
	case p.Title == "":
		return p, required("title")
	case p.Description == "":
		return p, required("description")
	case p.Discount == "":
		return p, required("discount")
	}
	if p.Image == "" {
		p.Image = domain.DefaultPromotionImage
	}
	return p, nil
}

func (s *Service) Promotions() []domain.Promotion {
	return s.catalog.Promotions()
}

func (s *Service) AddPromotion(ctx context.Context, in PromotionInput) (*domain.Promotion, error) {
	p, err := in.promotion()
	if err != nil {
		return nil, err
	}
	var created *domain.Promotion
	err = s.change(ctx, "add promotion", func() error {
		created = s.catalog.AddPromotion(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) UpdatePromotion(ctx context.Context, id int, in PromotionInput) (*domain.Promotion, error) {
	p, err := in.promotion()
	if err != nil {
		return nil, err
	}
	p.ID = id
	var updated *domain.Promotion
	err = s.change(ctx, "update promotion", func() (err error) {
		updated, err = s.catalog.UpdatePromotion(p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) DeletePromotion(ctx context.Context, id int) error {
	return s.change(ctx, "delete promotion", func() error {
		return s.catalog.DeletePromotion(id)
	})
}

func (s *Service) Categories() []string {
	return s.catalog.Categories()
}

func (s *Service) AddCategory(ctx context.Context, name string) error {
	return s.change(ctx, "add category", func() error {
		return s.catalog.AddCategory(name)
	})
}

// RenameCategory renames a category; its products follow.
func (s *Service) RenameCategory(ctx context.Context, from, to string) error {
	err := s.change(ctx, "rename category", func() error {
		return s.catalog.RenameCategory(from, to)
	})
	if err != nil {
		return err
	}
	s.logger.Printf("admin: category renamed from=%q to=%q", from, to)
	return nil
}

func (s *Service) DeleteCategory(ctx context.Context, name string) error {
	return s.change(ctx, "delete category", func() error {
		return s.catalog.DeleteCategory(name)
	})
}
