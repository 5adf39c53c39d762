package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"acme-ice-cream/flavors/internal/logging"
	"acme-ice-cream/flavors/internal/metrics"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Options controls how the database handle is opened.
type Options struct {
	DSN          string
	Attempts     int
	RetryDelay   time.Duration
	MaxOpenConns int
	QueryTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Attempts < 1 {
		o.Attempts = 1
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = 500 * time.Millisecond
	}
	if o.MaxOpenConns < 1 {
		o.MaxOpenConns = 1
	}
	return o
}

// Gateway owns the database handle shared by every request. It executes
// statements with positional parameters, records their timings and wraps
// failures in *DatabaseError.
type Gateway struct {
	db           *sqlx.DB
	metrics      *metrics.MetricsRegistry
	queryTimeout time.Duration
}

func NewGateway(db *sqlx.DB, m *metrics.MetricsRegistry, queryTimeout time.Duration) *Gateway {
	return &Gateway{db: db, metrics: m, queryTimeout: queryTimeout}
}

// InitPostgres connects to Postgres, retrying until opts.Attempts is
// exhausted. The caller must not serve traffic if this fails.
func InitPostgres(ctx context.Context, opts Options, m *metrics.MetricsRegistry) (*Gateway, error) {
	opts = opts.withDefaults()
	if !IsPostgresDSN(opts.DSN) {
		return nil, fmt.Errorf("sqlx client supports postgres DSNs only")
	}

	var (
		conn *sqlx.DB
		err  error
	)
	for i := 0; i < opts.Attempts; i++ {
		conn, err = sqlx.ConnectContext(ctx, "postgres", opts.DSN)
		if err == nil {
			break
		}
		logging.Warn("Postgres connection attempt failed",
			"attempt", i+1,
			"max_attempts", opts.Attempts,
			"error", err.Error(),
		)
		if i == opts.Attempts-1 {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.RetryDelay):
		}
	}

	conn.SetMaxOpenConns(opts.MaxOpenConns)
	conn.SetMaxIdleConns(opts.MaxOpenConns)

	return NewGateway(conn, m, opts.QueryTimeout), nil
}

// IsPostgresDSN reports whether dsn addresses a Postgres server.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// Select runs a query returning any number of rows into dest (a slice).
func (g *Gateway) Select(ctx context.Context, op string, dest interface{}, query string, args ...interface{}) error {
	ctx, cancel := WithQueryTimeout(ctx, g.queryTimeout)
	defer cancel()

	start := time.Now()
	err := g.db.SelectContext(ctx, dest, query, args...)
	g.metrics.ObserveQuery(op, time.Since(start).Seconds(), err)
	return Wrap(op, err)
}

// Get runs a query expected to return at most one row. found is false when
// the statement matched nothing.
func (g *Gateway) Get(ctx context.Context, op string, dest interface{}, query string, args ...interface{}) (found bool, err error) {
	ctx, cancel := WithQueryTimeout(ctx, g.queryTimeout)
	defer cancel()

	start := time.Now()
	err = g.db.GetContext(ctx, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		g.metrics.ObserveQuery(op, time.Since(start).Seconds(), nil)
		return false, nil
	}
	g.metrics.ObserveQuery(op, time.Since(start).Seconds(), err)
	if err != nil {
		return false, Wrap(op, err)
	}
	return true, nil
}

// Exec runs a statement that returns no rows and reports the affected count.
func (g *Gateway) Exec(ctx context.Context, op string, query string, args ...interface{}) (int64, error) {
	ctx, cancel := WithQueryTimeout(ctx, g.queryTimeout)
	defer cancel()

	start := time.Now()
	res, err := g.db.ExecContext(ctx, query, args...)
	g.metrics.ObserveQuery(op, time.Since(start).Seconds(), err)
	if err != nil {
		return 0, Wrap(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, Wrap(op, err)
	}
	return n, nil
}

// Rows runs a query and returns every row as a column name to value map.
func (g *Gateway) Rows(ctx context.Context, op string, query string, args ...interface{}) ([]map[string]interface{}, error) {
	ctx, cancel := WithQueryTimeout(ctx, g.queryTimeout)
	defer cancel()

	start := time.Now()
	out, err := g.rows(ctx, query, args...)
	g.metrics.ObserveQuery(op, time.Since(start).Seconds(), err)
	if err != nil {
		return nil, Wrap(op, err)
	}
	return out, nil
}

func (g *Gateway) rows(ctx context.Context, query string, args ...interface{}) ([]map[string]interface{}, error) {
	rows, err := g.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]map[string]interface{}, 0)
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (g *Gateway) Ping(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

func (g *Gateway) Close() error {
	return g.db.Close()
}

// WithQueryTimeout bounds ctx by d; d <= 0 leaves ctx without a deadline.
func WithQueryTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
