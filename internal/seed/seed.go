// Package seed loads and stores the whole storefront catalog in Postgres and
// provides the demo content.
package seed

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"jericho-storefront/internal/catalog"
	categoryrepo "jericho-storefront/internal/repository/category"
	checkoutrepo "jericho-storefront/internal/repository/checkout"
	productrepo "jericho-storefront/internal/repository/product"
	promotionrepo "jericho-storefront/internal/repository/promotion"
	"jericho-storefront/internal/settings"
)

// Snapshots reads and writes complete catalog snapshots. Admin edits are
// small and rare, so every save rewrites all tables in one transaction.
type Snapshots struct {
	pool       *pgxpool.Pool
	products   productrepo.Repository
	categories categoryrepo.Repository
	promotions promotionrepo.Repository
	checkout   checkoutrepo.Repository
	logger     *log.Logger
}

func NewSnapshots(pool *pgxpool.Pool, logger *log.Logger) *Snapshots {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Snapshots{
		pool:       pool,
		products:   productrepo.NewPostgres(pool, logger),
		categories: categoryrepo.NewPostgres(pool),
		promotions: promotionrepo.NewPostgres(pool),
		checkout:   checkoutrepo.NewPostgres(pool),
		logger:     logger,
	}
}

// Load reads the stored catalog and checkout settings.
func (s *Snapshots) Load(ctx context.Context) (catalog.Seed, settings.Seed, error) {
	var (
		c   catalog.Seed
		st  settings.Seed
		err error
	)
	if c.Categories, err = s.categories.List(ctx); err != nil {
		return c, st, fmt.Errorf("load categories: %w", err)
	}
	if c.Products, err = s.products.List(ctx); err != nil {
		return c, st, fmt.Errorf("load products: %w", err)
	}
	if c.Promotions, err = s.promotions.List(ctx); err != nil {
		return c, st, fmt.Errorf("load promotions: %w", err)
	}
	if st.PaymentMethods, err = s.checkout.ListPaymentMethods(ctx); err != nil {
		return c, st, fmt.Errorf("load payment methods: %w", err)
	}
	if st.DeliveryMethods, err = s.checkout.ListDeliveryMethods(ctx); err != nil {
		return c, st, fmt.Errorf("load delivery methods: %w", err)
	}
	s.logger.Printf("seed: loaded products=%d promotions=%d categories=%d", len(c.Products), len(c.Promotions), len(c.Categories))
	return c, st, nil
}

// Save replaces the stored catalog and settings.
func (s *Snapshots) Save(ctx context.Context, c catalog.Seed, st settings.Seed) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.categories.ReplaceAll(ctx, tx, c.Categories); err != nil {
			return err
		}
		if err := s.products.ReplaceAll(ctx, tx, c.Products); err != nil {
			return err
		}
		if err := s.promotions.ReplaceAll(ctx, tx, c.Promotions); err != nil {
			return err
		}
		return s.checkout.ReplaceAll(ctx, tx, st.PaymentMethods, st.DeliveryMethods)
	})
	if err != nil {
		s.logger.Printf("seed: save error=%v", err)
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Empty reports whether no products or promotions are stored.
func (s *Snapshots) Empty(ctx context.Context) (bool, error) {
	var n int
	const q = `SELECT (SELECT COUNT(*) FROM products) + (SELECT COUNT(*) FROM promotions)`
	if err := s.pool.QueryRow(ctx, q).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

// Apply writes the demo content. Existing content is kept unless force is set.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger *log.Logger, force bool) error {
	snaps := NewSnapshots(pool, logger)
	if !force {
		empty, err := snaps.Empty(ctx)
		if err != nil {
			return fmt.Errorf("check existing catalog: %w", err)
		}
		if !empty {
			snaps.logger.Printf("seed: catalog already present, skipping")
			return nil
		}
	}

	// Round-trip through the store so the stored categories include derived ones.
	store, err := catalog.New(SampleCatalog())
	if err != nil {
		return fmt.Errorf("build sample catalog: %w", err)
	}
	return snaps.Save(ctx, store.Snapshot(), SampleSettings())
}
