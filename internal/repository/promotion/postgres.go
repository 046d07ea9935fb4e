package promotion

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"jericho-storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Promotion, error) {
	const q = `
SELECT id, title, description, image, discount, end_date
FROM promotions
ORDER BY position ASC, id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Promotion
	for rows.Next() {
		var p domain.Promotion
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Image, &p.Discount, &p.EndDate); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) ReplaceAll(ctx context.Context, tx pgx.Tx, promotions []domain.Promotion) error {
	if _, err := tx.Exec(ctx, `DELETE FROM promotions`); err != nil {
		return fmt.Errorf("clear promotions: %w", err)
	}
	rows := make([][]any, 0, len(promotions))
	for i, p := range promotions {
		rows = append(rows, []any{p.ID, p.Title, p.Description, p.Image, p.Discount, p.EndDate, i})
	}
	columns := []string{"id", "title", "description", "image", "discount", "end_date", "position"}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"promotions"}, columns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy promotions: %w", err)
	}
	return nil
}
