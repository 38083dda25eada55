package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQL stores records in a records table through database/sql.
type SQL struct {
	db *sql.DB
}

// OpenSQLite opens the SQLite database at dsn and creates the records table.
// An empty dsn opens a private in-memory database.
func OpenSQLite(dsn string) (*SQL, error) {
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	s, err := NewSQLFromDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLFromDB wraps an open database and creates the records table.
func NewSQLFromDB(db *sql.DB) (*SQL, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS records (
		key    TEXT PRIMARY KEY,
		record TEXT NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}
	return &SQL{db: db}, nil
}

func (s *SQL) Name() string { return "SQLite" }

func (s *SQL) Save(ctx context.Context, key, record string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (key, record) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET record = excluded.record`, key, record)
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

func (s *SQL) Load(ctx context.Context, key string) (string, error) {
	var record string
	err := s.db.QueryRowContext(ctx, `SELECT record FROM records WHERE key = ?`, key).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load %q: %w", key, err)
	}
	return record, nil
}

// Close closes the underlying database connection.
func (s *SQL) Close() error {
	return s.db.Close()
}
