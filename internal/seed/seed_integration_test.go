package seed

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"jericho-storefront/internal/migrate"
	productrepo "jericho-storefront/internal/repository/product"
)

func TestSnapshots_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	if err := Apply(ctx, pool, nil, false); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	snaps := NewSnapshots(pool, nil)
	c, st, err := snaps.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sample := SampleCatalog()
	if len(c.Products) != len(sample.Products) || len(c.Promotions) != len(sample.Promotions) {
		t.Fatalf("unexpected counts products=%d promotions=%d", len(c.Products), len(c.Promotions))
	}
	if c.Categories[0] != "Outerwear" || len(c.Categories) != 5 {
		t.Fatalf("unexpected categories %v", c.Categories)
	}
	first := c.Products[0]
	if first.OriginalPrice == nil || first.OriginalPrice.StringFixed(2) != "129.99" || first.Price.StringFixed(2) != "89.99" {
		t.Fatalf("unexpected first product %+v", first)
	}
	if len(st.DeliveryMethods) != 4 || st.DeliveryMethods[1].Price.StringFixed(2) != "12.99" {
		t.Fatalf("unexpected delivery methods %+v", st.DeliveryMethods)
	}

	c.Products = c.Products[:2]
	if err := snaps.Save(ctx, c, st); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := productrepo.NewPostgres(pool, nil).GetByID(ctx, 2)
	if err != nil || got.Name != "Hand-painted T-Shirt" {
		t.Fatalf("GetByID: %+v %v", got, err)
	}

	if err := Apply(ctx, pool, nil, false); err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	c, _, err = snaps.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Products) != 2 {
		t.Fatalf("Apply without force must keep existing catalog, got %d products", len(c.Products))
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	const q = `TRUNCATE categories, products, promotions, payment_methods, delivery_methods, order_lines, orders CASCADE`
	if _, err := pool.Exec(ctx, q); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
