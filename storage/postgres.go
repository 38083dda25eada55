package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGConn is the subset of a pgx pool used by Postgres.
type PGConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres stores records in a PostgreSQL records table.
type Postgres struct {
	conn  PGConn
	close func()
}

// OpenPostgres connects a pool to dsn and creates the records table.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	p := &Postgres{conn: pool, close: pool.Close}
	if err := p.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

// NewPostgresWithConn creates a Postgres store over an existing connection.
func NewPostgresWithConn(conn PGConn) *Postgres {
	return &Postgres{conn: conn}
}

// EnsureSchema creates the records table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.conn.Exec(ctx, `CREATE TABLE IF NOT EXISTS records (
		key    TEXT PRIMARY KEY,
		record TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

func (p *Postgres) Name() string { return "PostgreSQL" }

func (p *Postgres) Save(ctx context.Context, key, record string) error {
	_, err := p.conn.Exec(ctx,
		`INSERT INTO records (key, record) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET record = EXCLUDED.record`, key, record)
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context, key string) (string, error) {
	var record string
	err := p.conn.QueryRow(ctx, `SELECT record FROM records WHERE key = $1`, key).Scan(&record)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load %q: %w", key, err)
	}
	return record, nil
}

// Close releases the pool when the store opened one.
func (p *Postgres) Close() error {
	if p.close != nil {
		p.close()
	}
	return nil
}
