package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver (pgx)
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver (cgo)
	"github.com/skbsalatiga/signage-backend/internal/config"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// DB is the subset of *sqlx.DB the SQL store needs
type DB interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
	PingContext(ctx context.Context) error
	Close() error
}

// NewConnection opens and verifies a database connection for cfg.Driver
func NewConnection(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	driver := cfg.Driver
	if driver == "" {
		driver = config.DriverFromURL(cfg.URL)
	}

	dsn := cfg.URL
	switch driver {
	case config.DriverPgx:
		// Simple protocol keeps pgx working behind transaction-mode poolers
		if !strings.Contains(dsn, "default_query_exec_mode") {
			separator := "?"
			if strings.Contains(dsn, "?") {
				separator = "&"
			}
			dsn = dsn + separator + "default_query_exec_mode=simple_protocol"
		}
	case config.DriverSQLite3, config.DriverSQLite:
		dsn = strings.TrimPrefix(dsn, "sqlite://")
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if dialectFor(driver) == dialectSQLite {
		// SQLite allows a single writer; one connection also keeps :memory: databases shared
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxConnections)
		db.SetMaxIdleConns(cfg.MaxIdleConnections)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		db.SetConnMaxIdleTime(cfg.ConnMaxLifetime / 2)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite"
)

// dialectFor maps a database/sql driver name to the SQL dialect it speaks
func dialectFor(driverName string) string {
	switch driverName {
	case config.DriverSQLite3, config.DriverSQLite:
		return dialectSQLite
	default:
		return dialectPostgres
	}
}
