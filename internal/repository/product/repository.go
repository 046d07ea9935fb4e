package product

import (
	"context"

	"github.com/jackc/pgx/v5"
	"jericho-storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int) (*domain.Product, error)
	// ReplaceAll swaps the stored products for the given list inside tx.
	ReplaceAll(ctx context.Context, tx pgx.Tx, products []domain.Product) error
}
