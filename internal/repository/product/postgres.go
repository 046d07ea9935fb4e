package product

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

const selectColumns = `id, name, price::text, COALESCE(original_price::text, ''), image, description, category, is_new, is_available`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	q := `SELECT ` + selectColumns + ` FROM products ORDER BY position ASC, id ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("product repo: list count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	q := `SELECT ` + selectColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%d not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) ReplaceAll(ctx context.Context, tx pgx.Tx, products []domain.Product) error {
	if _, err := tx.Exec(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}
	const q = `
INSERT INTO products (id, name, price, original_price, image, description, category, is_new, is_available, position)
VALUES ($1, $2, $3::numeric, NULLIF($4, '')::numeric, $5, $6, $7, $8, $9, $10)
`
	batch := &pgx.Batch{}
	for i, p := range products {
		original := ""
		if p.OriginalPrice != nil {
			original = p.OriginalPrice.String()
		}
		batch.Queue(q, p.ID, p.Name, p.Price.String(), original, p.Image, p.Description, p.Category, p.IsNew, p.IsAvailable, i)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		r.logger.Printf("product repo: replace count=%d error=%v", len(products), err)
		return fmt.Errorf("insert products: %w", err)
	}
	r.logger.Printf("product repo: replaced count=%d", len(products))
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p                   domain.Product
		priceText, origText string
	)
	if err := row.Scan(&p.ID, &p.Name, &priceText, &origText, &p.Image, &p.Description, &p.Category, &p.IsNew, &p.IsAvailable); err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return nil, fmt.Errorf("product %d price: %w", p.ID, err)
	}
	p.Price = price
	if origText != "" {
		orig, err := decimal.NewFromString(origText)
		if err != nil {
			return nil, fmt.Errorf("product %d original price: %w", p.ID, err)
		}
		p.OriginalPrice = &orig
	}
	return &p, nil
}
