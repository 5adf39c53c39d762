package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"acme-ice-cream/flavors/internal/logging"
	"acme-ice-cream/flavors/internal/metrics"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const startedAtKey = "flavors:query_started_at"

// Dialector picks the GORM dialector for dsn. Postgres URLs and key/value
// DSNs use the pgx-backed postgres driver; "sqlite://path", "file:..." and
// ":memory:" use SQLite.
func Dialector(dsn string) (gorm.Dialector, error) {
	switch {
	case IsPostgresDSN(dsn):
		return postgres.Open(dsn), nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(dsn, "sqlite://")), nil
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database url for gorm client")
	}
}

// InitPostgresORM opens the GORM handle, retrying like InitPostgres, and
// instruments every statement with the query metrics.
func InitPostgresORM(ctx context.Context, opts Options, m *metrics.MetricsRegistry) (*gorm.DB, error) {
	opts = opts.withDefaults()
	dialector, err := Dialector(opts.DSN)
	if err != nil {
		return nil, err
	}

	var gdb *gorm.DB
	for i := 0; i < opts.Attempts; i++ {
		gdb, err = openORM(ctx, dialector)
		if err == nil {
			break
		}
		logging.Warn("GORM connection attempt failed",
			"attempt", i+1,
			"max_attempts", opts.Attempts,
			"error", err.Error(),
		)
		if i == opts.Attempts-1 {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.RetryDelay):
		}
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxOpenConns)

	if err := RegisterMetricsCallbacks(gdb, m); err != nil {
		return nil, err
	}
	return gdb, nil
}

func openORM(ctx context.Context, dialector gorm.Dialector) (*gorm.DB, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return gdb, nil
}

// RegisterMetricsCallbacks times create/query/update/delete/row/raw
// statements issued through gdb.
func RegisterMetricsCallbacks(gdb *gorm.DB, m *metrics.MetricsRegistry) error {
	if m == nil {
		return nil
	}

	before := func(tx *gorm.DB) {
		tx.InstanceSet(startedAtKey, time.Now())
	}
	after := func(queryType string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			v, ok := tx.InstanceGet(startedAtKey)
			if !ok {
				return
			}
			started, ok := v.(time.Time)
			if !ok {
				return
			}
			m.ObserveQuery(queryType, time.Since(started).Seconds(), tx.Error)
		}
	}

	cb := gdb.Callback()
	steps := []struct {
		name string
		err  error
	}{
		{"create", cb.Create().Before("gorm:create").Register("metrics:before_create", before)},
		{"create", cb.Create().After("gorm:create").Register("metrics:after_create", after("gorm_create"))},
		{"query", cb.Query().Before("gorm:query").Register("metrics:before_query", before)},
		{"query", cb.Query().After("gorm:query").Register("metrics:after_query", after("gorm_query"))},
		{"update", cb.Update().Before("gorm:update").Register("metrics:before_update", before)},
		{"update", cb.Update().After("gorm:update").Register("metrics:after_update", after("gorm_update"))},
		{"delete", cb.Delete().Before("gorm:delete").Register("metrics:before_delete", before)},
		{"delete", cb.Delete().After("gorm:delete").Register("metrics:after_delete", after("gorm_delete"))},
		{"row", cb.Row().Before("gorm:row").Register("metrics:before_row", before)},
		{"row", cb.Row().After("gorm:row").Register("metrics:after_row", after("gorm_row"))},
		{"raw", cb.Raw().Before("gorm:raw").Register("metrics:before_raw", before)},
		{"raw", cb.Raw().After("gorm:raw").Register("metrics:after_raw", after("gorm_raw"))},
	}
	for _, s := range steps {
		if s.err != nil {
			return fmt.Errorf("failed to register %s metrics callback: %w", s.name, s.err)
		}
	}
	return nil
}
