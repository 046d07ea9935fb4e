// Package checkout persists the payment and delivery methods offered at checkout.
package checkout

import (
	"context"

	"github.com/jackc/pgx/v5"
	"jericho-storefront/internal/domain"
)

type Repository interface {
	ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
	ListDeliveryMethods(ctx context.Context) ([]domain.DeliveryMethod, error)
	ReplaceAll(ctx context.Context, tx pgx.Tx, payment []domain.PaymentMethod, delivery []domain.DeliveryMethod) error
}
