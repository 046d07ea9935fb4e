package checkout

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"jericho-storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	const q = `SELECT id, name, description, enabled FROM payment_methods ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PaymentMethod
	for rows.Next() {
		var m domain.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Enabled); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *postgresRepo) ListDeliveryMethods(ctx context.Context) ([]domain.DeliveryMethod, error) {
	const q = `SELECT id, name, description, price::text, enabled FROM delivery_methods ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DeliveryMethod
	for rows.Next() {
		var (
			m         domain.DeliveryMethod
			priceText string
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &priceText, &m.Enabled); err != nil {
			return nil, err
		}
		if m.Price, err = decimal.NewFromString(priceText); err != nil {
			return nil, fmt.Errorf("delivery method %d price: %w", m.ID, err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *postgresRepo) ReplaceAll(ctx context.Context, tx pgx.Tx, payment []domain.PaymentMethod, delivery []domain.DeliveryMethod) error {
	if _, err := tx.Exec(ctx, `DELETE FROM payment_methods`); err != nil {
		return fmt.Errorf("clear payment methods: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM delivery_methods`); err != nil {
		return fmt.Errorf("clear delivery methods: %w", err)
	}

	batch := &pgx.Batch{}
	for _, m := range payment {
		batch.Queue(`INSERT INTO payment_methods (id, name, description, enabled) VALUES ($1, $2, $3, $4)`,
			m.ID, m.Name, m.Description, m.Enabled)
	}
	for _, m := range delivery {
		batch.Queue(`INSERT INTO delivery_methods (id, name, description, price, enabled) VALUES ($1, $2, $3, $4::numeric, $5)`,
			m.ID, m.Name, m.Description, m.Price.String(), m.Enabled)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert checkout methods: %w", err)
	}
	return nil
}
