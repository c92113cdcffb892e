package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pinger is the minimal surface the health check needs from the pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TimeoutPool wraps pgxpool so every statement carries a per-query
// deadline. Detection history writes happen on the request path; a slow
// database must never hold a request past QueryTimeout.
type TimeoutPool struct {
	*pgxpool.Pool
	QueryTimeout time.Duration
}

func (p *TimeoutPool) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, p.QueryTimeout)
}

func (p *TimeoutPool) Ping(ctx context.Context) error {
	ctx, cancel := p.bound(ctx)
	defer cancel()
	return p.Pool.Ping(ctx)
}

func (p *TimeoutPool) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	ctx, cancel := p.bound(ctx)
	defer cancel()
	return p.Pool.Exec(ctx, sql, args...)
}

func (p *TimeoutPool) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	ctx, cancel := p.bound(ctx)
	defer cancel()
	return p.Pool.Query(ctx, sql, args...)
}

func (p *TimeoutPool) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	ctx, cancel := p.bound(ctx)
	defer cancel()
	return p.Pool.QueryRow(ctx, sql, args...)
}
