package category

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository stores the ordered list of category names.
type Repository interface {
	List(ctx context.Context) ([]string, error)
	ReplaceAll(ctx context.Context, tx pgx.Tx, names []string) error
}
