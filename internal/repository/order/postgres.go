package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"jericho-storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertOrder = `INSERT INTO orders (id, total, placed_at) VALUES ($1::uuid, $2::numeric, $3)`
	if _, err := tx.Exec(ctx, insertOrder, o.ID, o.Total.String(), o.PlacedAt); err != nil {
		r.logger.Printf("order repo: create id=%s error=%v", o.ID, err)
		return err
	}

	const insertLine = `
INSERT INTO order_lines (order_id, line_no, product_id, name, unit_price, quantity, subtotal)
VALUES ($1::uuid, $2, $3, $4, $5::numeric, $6, $7::numeric)
`
	batch := &pgx.Batch{}
	for i, l := range o.Lines {
		batch.Queue(insertLine, o.ID, i, l.ProductID, l.Name, l.UnitPrice.String(), l.Quantity, l.Subtotal.String())
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		r.logger.Printf("order repo: create lines id=%s error=%v", o.ID, err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Printf("order repo: created id=%s lines=%d total=%s", o.ID, len(o.Lines), o.Total.StringFixed(2))
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `SELECT id::text, total::text, placed_at FROM orders WHERE id = $1::uuid`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if o.Lines, err = r.lines(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `SELECT id::text, total::text, placed_at FROM orders ORDER BY placed_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		result = append(result, *o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		if result[i].Lines, err = r.lines(ctx, result[i].ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *postgresRepo) lines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	const q = `
SELECT product_id, name, unit_price::text, quantity, subtotal::text
FROM order_lines
WHERE order_id = $1::uuid
ORDER BY line_no ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.OrderLine
	for rows.Next() {
		var (
			l                 domain.OrderLine
			unitText, subText string
		)
		if err := rows.Scan(&l.ProductID, &l.Name, &unitText, &l.Quantity, &subText); err != nil {
			return nil, err
		}
		if l.UnitPrice, err = decimal.NewFromString(unitText); err != nil {
			return nil, fmt.Errorf("order %s unit price: %w", orderID, err)
		}
		if l.Subtotal, err = decimal.NewFromString(subText); err != nil {
			return nil, fmt.Errorf("order %s subtotal: %w", orderID, err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o         domain.Order
		totalText string
	)
	if err := row.Scan(&o.ID, &totalText, &o.PlacedAt); err != nil {
		return nil, err
	}
	total, err := decimal.NewFromString(totalText)
	if err != nil {
		return nil, fmt.Errorf("order %s total: %w", o.ID, err)
	}
	o.Total = total
	return &o, nil
}
