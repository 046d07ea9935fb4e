package promotion

import (
	"context"

	"github.com/jackc/pgx/v5"
	"jericho-storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Promotion, error)
	ReplaceAll(ctx context.Context, tx pgx.Tx, promotions []domain.Promotion) error
}
