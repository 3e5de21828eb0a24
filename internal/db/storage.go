// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
)

const (
	defaultPage      uint64 = 1
	defaultPageSize  uint64 = 50
	maxPageSize      uint64 = 500
	defaultTxTimeout        = 30 * time.Second
)

type lazyTxContextKey struct{}

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
}

// Offset returns the row offset of a 1-based page
func Offset(page int64, pageSize uint64) uint64 {
	if page <= 0 {
		return (defaultPage - 1) * pageSize
	}
	return uint64(page-1) * pageSize
}

// PageSize clamps the requested size to (0, maxPageSize]
func PageSize(size int64) uint64 {
	switch {
	case size <= 0:
		return defaultPageSize
	case uint64(size) > maxPageSize:
		return maxPageSize
	default:
		return uint64(size)
	}
}

// lazyTx opens the transaction on the first statement run through it, so
// handlers that never touch the database never pay for one
type lazyTx struct {
	db     *sql.DB
	tx     TxInterface
	cancel context.CancelFunc
	done   bool
}

func (lt *lazyTx) get() (TxInterface, error) {
	if lt.tx != nil {
		return lt.tx, nil
	}

	// detached from the request context, a cancelled request must not
	// roll back behind the commit logic
	ctx, cancel := context.WithTimeout(context.Background(), defaultTxTimeout)

	tx, err := lt.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		cancel()
		return nil, err
	}

	lt.tx = tx
	lt.cancel = cancel

	return tx, nil
}

func (lt *lazyTx) finish(commit bool) error {
	defer func() {
		if lt.cancel != nil {
			lt.cancel()
		}
	}()

	if lt.tx == nil || lt.done {
		return nil
	}

	lt.done = true

	if commit {
		return lt.tx.Commit()
	}

	if err := lt.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}

	return nil
}

type DBClient struct {
	pool *pgxpool.Pool
	db   *sql.DB

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Statement returns a builder running on the transaction attached to ctx
// by WithTx, or on the pool when there is none
func (d *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	lt, ok := ctx.Value(lazyTxContextKey{}).(*lazyTx)
	if !ok || lt.done {
		return builder.RunWith(d.db)
	}

	tx, err := lt.get()
	if err != nil {
		d.logger.Errorf("failed to begin transaction, running outside of it: %v", err)
		return builder.RunWith(d.db)
	}

	return builder.RunWith(tx)
}

// WithTx runs fn with a lazily started transaction attached to the context.
// The transaction commits when fn returns nil and rolls back otherwise.
func (d *DBClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	ctx, span := d.tracer.Start(ctx, "db.DBClient.WithTx")
	defer span.End()

	// nested calls join the transaction already attached to ctx
	if lt, ok := ctx.Value(lazyTxContextKey{}).(*lazyTx); ok && !lt.done {
		return fn(ctx)
	}

	lt := &lazyTx{db: d.db}

	if err := fn(context.WithValue(ctx, lazyTxContextKey{}, lt)); err != nil {
		if rbErr := lt.finish(false); rbErr != nil {
			d.logger.Errorf("failed to rollback transaction: %v", rbErr)
		}

		return err
	}

	if err := lt.finish(true); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Ping checks the database and reports its availability to the monitor
func (d *DBClient) Ping(ctx context.Context) error {
	err := d.pool.Ping(ctx)

	available := 1.0
	if err != nil {
		available = 0
	}

	if mErr := d.monitor.SetDependencyAvailability(map[string]string{"component": "database"}, available); mErr != nil {
		d.logger.Debugf("failed to set database availability: %v", mErr)
	}

	return err
}

func (d *DBClient) Close() {
	if d.db != nil {
		_ = d.db.Close()
	}

	if d.pool != nil {
		d.pool.Close()
	}
}

// NewDBClient opens a pgx pool on cfg.DSN and exposes it through database/sql
// so squirrel can run statements on it
func NewDBClient(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	config, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid DSN: %w", err)
	}

	if cfg.TracingEnabled {
		config.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	config.MaxConns = cfg.MaxConns
	config.MinConns = cfg.MinConns
	config.MaxConnLifetime = cfg.MaxConnLifetime
	config.MaxConnLifetimeJitter = cfg.MaxConnLifetime / 10
	config.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %w", err)
	}

	if cfg.TracingEnabled {
		if err := otelpgx.RecordStats(pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to record database stats: %w", err)
		}
	}

	db := stdlib.OpenDBFromPool(pool)
	if err := db.Ping(); err != nil {
		db.Close()
		pool.Close()
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	d := new(DBClient)
	d.pool = pool
	d.db = db

	d.tracer = tracer
	d.monitor = monitor
	d.logger = logger

	return d, nil
}
