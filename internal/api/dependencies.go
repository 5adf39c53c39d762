package api

import (
	"context"
	"fmt"
	"time"

	"acme-ice-cream/flavors/internal/config"
	"acme-ice-cream/flavors/internal/db"
	"acme-ice-cream/flavors/internal/db/repositories"
	"acme-ice-cream/flavors/internal/logging"
	"acme-ice-cream/flavors/internal/metrics"
	"acme-ice-cream/flavors/internal/services"
)

type Repositories struct {
	Flavors repositories.FlavorStore
}

type Services struct {
	Flavors *services.FlavorService
}

type Dependencies struct {
	Config   *config.Config
	Metrics  *metrics.MetricsRegistry
	Repo     *Repositories
	Services *Services
	UpSince  time.Time

	closeFn func() error
}

// InitDependencies opens the database handle selected by cfg.DBClient and
// wires the repository and service on top of it.
func InitDependencies(ctx context.Context, cfg *config.Config, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	opts := db.Options{
		DSN:          cfg.DatabaseURL,
		Attempts:     cfg.DBConnectAttempts,
		MaxOpenConns: cfg.DBMaxOpenConns,
		QueryTimeout: cfg.DBQueryTimeout,
	}

	var (
		store   repositories.FlavorStore
		closeFn func() error
	)
	switch cfg.DBClient {
	case config.DBClientGORM:
		gdb, err := db.InitPostgresORM(ctx, opts, metricsReg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sql.DB: %w", err)
		}
		store = repositories.NewFlavorRepositoryGORM(gdb, cfg.DBQueryTimeout)
		closeFn = sqlDB.Close
		logging.Info("Connected to database (GORM)")
	default:
		gw, err := db.InitPostgres(ctx, opts, metricsReg)
		if err != nil {
			return nil, err
		}
		store = repositories.NewFlavorRepository(gw)
		closeFn = gw.Close
		logging.Info("Connected to Postgres (sqlx)")
	}

	return NewDependencies(cfg, metricsReg, store, closeFn), nil
}

// NewDependencies wires an already opened store.
func NewDependencies(cfg *config.Config, metricsReg *metrics.MetricsRegistry, store repositories.FlavorStore, closeFn func() error) *Dependencies {
	return &Dependencies{
		Config:  cfg,
		Metrics: metricsReg,
		Repo: &Repositories{
			Flavors: store,
		},
		Services: &Services{
			Flavors: services.NewFlavorService(store, cfg.StrictMode, metricsReg),
		},
		UpSince: time.Now(),
		closeFn: closeFn,
	}
}

func (d *Dependencies) Close() error {
	if d.closeFn == nil {
		return nil
	}
	return d.closeFn()
}
