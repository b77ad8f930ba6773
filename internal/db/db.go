// Package db provides PostgreSQL access for job postings and companies.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// DB wraps a PostgreSQL connection pool. Statements run through the
// database/sql adapter so every call is a single parameterized query.
type DB struct {
	pool *pgxpool.Pool
	conn *sql.DB
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool, conn: stdlib.OpenDBFromPool(pool)}, nil
}

// NewWithConn wraps an already opened *sql.DB. The caller keeps ownership
// of any pool behind it.
func NewWithConn(conn *sql.DB) *DB {
	return &DB{conn: conn}
}

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.conn != nil {
		_ = db.conn.Close()
	}
	if db.pool != nil {
		db.pool.Close()
	}
}

// Query is a complete SQL statement and its positional arguments.
type Query struct {
	SQL  string
	Args []any
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
