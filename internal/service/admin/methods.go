package admin

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"jericho-storefront/internal/domain"
)

type PaymentMethodInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     *bool  `json:"enabled"`
}

func (in PaymentMethodInput) method() (domain.PaymentMethod, error) {
	m := domain.PaymentMethod{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Enabled:     true,
	}
	if m.Name == "" {
		return m, required("name")
	}
	if m.Description == "" {
		return m, required("description")
	}
	if in.Enabled != nil {
		m.Enabled = *in.Enabled
	}
	return m, nil
}

type DeliveryMethodInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Enabled     *bool            `json:"enabled"`
}

func (in DeliveryMethodInput) method() (domain.DeliveryMethod, error) {
	m := domain.DeliveryMethod{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       decimal.Zero,
		Enabled:     true,
	}
	if m.Name == "" {
		return m, required("name")
	}
	if m.Description == "" {
		return m, required("description")
	}
	if in.Price != nil {
		price, err := decimalRequired(in.Price, "price")
		if err != nil {
			return m, err
		}
		m.Price = price.Round(2)
	}
	if in.Enabled != nil {
		m.Enabled = *in.Enabled
	}
	return m, nil
}

func (s *Service) PaymentMethods() []domain.PaymentMethod {
	return s.settings.PaymentMethods()
}

func (s *Service) AddPaymentMethod(ctx context.Context, in PaymentMethodInput) (domain.PaymentMethod, error) {
	m, err := in.method()
	if err != nil {
		return m, err
	}
	var created domain.PaymentMethod
	err = s.change(ctx, "add payment method", func() error {
		created = s.settings.AddPaymentMethod(m)
		return nil
	})
	return created, err
}

func (s *Service) UpdatePaymentMethod(ctx context.Context, id int, in PaymentMethodInput) (domain.PaymentMethod, error) {
	m, err := in.method()
	if err != nil {
		return m, err
	}
	m.ID = id
	var updated domain.PaymentMethod
	err = s.change(ctx, "update payment method", func() (err error) {
		updated, err = s.settings.UpdatePaymentMethod(m)
		return err
	})
	return updated, err
}

func (s *Service) DeletePaymentMethod(ctx context.Context, id int) error {
	return s.change(ctx, "delete payment method", func() error {
		return s.settings.DeletePaymentMethod(id)
	})
}

func (s *Service) TogglePaymentMethod(ctx context.Context, id int) (domain.PaymentMethod, error) {
	var toggled domain.PaymentMethod
	err := s.change(ctx, "toggle payment method", func() (err error) {
		toggled, err = s.settings.TogglePaymentMethod(id)
		return err
	})
	return toggled, err
}

func (s *Service) DeliveryMethods() []domain.DeliveryMethod {
	return s.settings.DeliveryMethods()
}

func (s *Service) AddDeliveryMethod(ctx context.Context, in DeliveryMethodInput) (domain.DeliveryMethod, error) {
	m, err := in.method()
	if err != nil {
		return m, err
	}
	var created domain.DeliveryMethod
	err = s.change(ctx, "add delivery method", func() error {
		created = s.settings.AddDeliveryMethod(m)
		return nil
	})
	return created, err
}

func (s *Service) UpdateDeliveryMethod(ctx context.Context, id int, in DeliveryMethodInput) (domain.DeliveryMethod, error) {
	m, err := in.method()
	if err != nil {
		return m, err
	}
	m.ID = id
	var updated domain.DeliveryMethod
	err = s.change(ctx, "update delivery method", func() (err error) {
		updated, err = s.settings.UpdateDeliveryMethod(m)
		return err
	})
	return updated, err
}

func (s *Service) DeleteDeliveryMethod(ctx context.Context, id int) error {
	return s.change(ctx, "delete delivery method", func() error {
		return s.settings.DeleteDeliveryMethod(id)
	})
}

func (s *Service) ToggleDeliveryMethod(ctx context.Context, id int) (domain.DeliveryMethod, error) {
	var toggled domain.DeliveryMethod
	err := s.change(ctx, "toggle delivery method", func() (err error) {
		toggled, err = s.settings.ToggleDeliveryMethod(id)
		return err
	})
	return toggled, err
}
