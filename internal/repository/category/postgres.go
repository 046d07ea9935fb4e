package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context) ([]string, error) {
	const q = `SELECT name FROM categories ORDER BY position ASC, name ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		result = append(result, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) ReplaceAll(ctx context.Context, tx pgx.Tx, names []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	rows := make([][]any, 0, len(names))
	for i, name := range names {
		rows = append(rows, []any{name, i})
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"categories"}, []string{"name", "position"}, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy categories: %w", err)
	}
	return nil
}
