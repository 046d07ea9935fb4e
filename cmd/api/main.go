package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"jericho-storefront/internal/catalog"
	"jericho-storefront/internal/config"
	"jericho-storefront/internal/db"
	"jericho-storefront/internal/httpserver"
	"jericho-storefront/internal/migrate"
	"jericho-storefront/internal/order"
	"jericho-storefront/internal/seed"
	"jericho-storefront/internal/service/admin"
	"jericho-storefront/internal/service/storefront"
	"jericho-storefront/internal/settings"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	var dbpool *pgxpool.Pool
	if cfg.DBConnString != "" {
		pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns, logger)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()
		if err := migrate.Apply(ctx, pool); err != nil {
			logger.Fatalf("apply migrations: %v", err)
		}
		dbpool = pool
	}

	catalogSeed, settingsSeed, persister, err := loadContent(ctx, cfg, dbpool, logger)
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}
	catalogStore, err := catalog.New(catalogSeed)
	if err != nil {
		logger.Fatalf("build catalog: %v", err)
	}
	settingsStore := settings.New(settingsSeed)

	submitter, closeSubmitter, err := order.FromConfig(cfg, dbpool, logger)
	if err != nil {
		logger.Fatalf("order submitter: %v", err)
	}
	defer func() {
		if err := closeSubmitter(); err != nil {
			logger.Printf("close order submitter: %v", err)
		}
	}()

	sessions := storefront.NewRegistry(storefront.Deps{
		Catalog:   catalogStore,
		Settings:  settingsStore,
		Submitter: submitter,
		Logger:    logger,
	}, cfg.CarouselInterval, cfg.SessionIdleTimeout)
	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go sessions.RunJanitor(janitorCtx, janitorPeriod(cfg.SessionIdleTimeout))

	var adminService *admin.Service
	if cfg.AdminEnabled() {
		adminService = admin.New(catalogStore, settingsStore, persister, admin.Credentials{
			Username:     cfg.AdminUsername,
			PasswordHash: cfg.AdminPasswordHash,
			Secret:       cfg.JWTSecret,
			TokenTTL:     cfg.AdminTokenTTL,
		}, logger)
	} else {
		logger.Printf("admin console disabled: ADMIN_PASSWORD_HASH and JWT_SECRET not set")
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:        catalogStore,
		Settings:       settingsStore,
		Sessions:       sessions,
		Admin:          adminService,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s catalog=%s submitter=%s", cfg.HTTPAddr, cfg.CatalogSource, cfg.OrderSubmitter)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
	stopJanitor()
	sessions.CloseAll()
}

// loadContent picks the catalog source. The postgres source seeds the demo
// content into an empty database and persists admin changes back to it.
func loadContent(ctx context.Context, cfg config.Config, pool *pgxpool.Pool, logger *log.Logger) (catalog.Seed, settings.Seed, admin.Persister, error) {
	switch cfg.CatalogSource {
	case "", config.CatalogSample:
		logger.Printf("catalog: using in-memory sample content")
		return seed.SampleCatalog(), seed.SampleSettings(), nil, nil
	case config.CatalogPostgres:
		if pool == nil {
			return catalog.Seed{}, settings.Seed{}, nil, errors.New("CATALOG_SOURCE=postgres requires DB_DSN")
		}
		if err := seed.Apply(ctx, pool, logger, false); err != nil {
			return catalog.Seed{}, settings.Seed{}, nil, err
		}
		snaps := seed.NewSnapshots(pool, logger)
		c, st, err := snaps.Load(ctx)
		if err != nil {
			return catalog.Seed{}, settings.Seed{}, nil, err
		}
		return c, st, snaps, nil
	default:
		return catalog.Seed{}, settings.Seed{}, nil, fmt.Errorf("unknown CATALOG_SOURCE %q", cfg.CatalogSource)
	}
}

func janitorPeriod(idle time.Duration) time.Duration {
	if idle <= 0 {
		return time.Minute
	}
	if p := idle / 2; p < time.Minute {
		return p
	}
	return time.Minute
}
