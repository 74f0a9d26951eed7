package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stafftrack/skills-backend/internal/config"
)

// Querier defines the query operations shared by a connection and a
// transaction, so repositories can be bound to either
type Querier interface {
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// DB interface defines database operations
type DB interface {
	Querier
	Begin() (Tx, error)
	Ping() error
	Close() error
}

// Tx is an in-flight database transaction
type Tx interface {
	Querier
	Commit() error
	Rollback() error
}

// PostgresDB implements the DB interface using sqlx
type PostgresDB struct {
	*sqlx.DB
}

// PostgresTx implements the Tx interface using sqlx
type PostgresTx struct {
	*sqlx.Tx
}

// NewConnection creates a new database connection
func NewConnection(cfg config.DatabaseConfig) (DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sqlx.Connect("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxLifetime / 2)

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresDB{DB: db}, nil
}

// NewPostgresDB wraps an existing sqlx connection. Used by tests to plug in
// a sqlmock-backed connection.
func NewPostgresDB(db *sqlx.DB) *PostgresDB {
	return &PostgresDB{DB: db}
}

// Begin starts a transaction
func (db *PostgresDB) Begin() (Tx, error) {
	tx, err := db.DB.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &PostgresTx{Tx: tx}, nil
}

// Get wraps sqlx.Get
func (db *PostgresDB) Get(dest interface{}, query string, args ...interface{}) error {
	return db.DB.Get(dest, query, args...)
}

// Select wraps sqlx.Select
func (db *PostgresDB) Select(dest interface{}, query string, args ...interface{}) error {
	return db.DB.Select(dest, query, args...)
}

// Exec wraps sqlx.Exec
func (db *PostgresDB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.DB.Exec(query, args...)
}

// QueryRow wraps sqlx.QueryRow
func (db *PostgresDB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.DB.QueryRow(query, args...)
}

// Query wraps sqlx.Query
func (db *PostgresDB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.DB.Query(query, args...)
}

// Ping wraps sqlx.Ping
func (db *PostgresDB) Ping() error {
	return db.DB.Ping()
}

// Close wraps sqlx.Close
func (db *PostgresDB) Close() error {
	return db.DB.Close()
}

// Get wraps sqlx.Tx.Get
func (tx *PostgresTx) Get(dest interface{}, query string, args ...interface{}) error {
	return tx.Tx.Get(dest, query, args...)
}

// Select wraps sqlx.Tx.Select
func (tx *PostgresTx) Select(dest interface{}, query string, args ...interface{}) error {
	return tx.Tx.Select(dest, query, args...)
}

// Exec wraps sqlx.Tx.Exec
func (tx *PostgresTx) Exec(query string, args ...interface{}) (sql.Result, error) {
	return tx.Tx.Exec(query, args...)
}

// QueryRow wraps sqlx.Tx.QueryRow
func (tx *PostgresTx) QueryRow(query string, args ...interface{}) *sql.Row {
	return tx.Tx.QueryRow(query, args...)
}

// Query wraps sqlx.Tx.Query
func (tx *PostgresTx) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return tx.Tx.Query(query, args...)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (error code 23505)
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
