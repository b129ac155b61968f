package database

import (
	"fmt"

	"github.com/GuiaBolso/darwin"
	"github.com/jmoiron/sqlx"
)

// Timestamps are Unix milliseconds in BIGINT columns.
var postgresMigrations = []darwin.Migration{
	{
		Version:     1,
		Description: "Create users table",
		Script: `CREATE TABLE users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		)`,
	},
	{
		Version:     2,
		Description: "Create staff_status table",
		Script: `CREATE TABLE staff_status (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			is_available BOOLEAN NOT NULL DEFAULT FALSE,
			position INTEGER NOT NULL DEFAULT 0
		)`,
	},
	{
		Version:     3,
		Description: "Create announcements table",
		Script: `CREATE TABLE announcements (
			id SERIAL PRIMARY KEY,
			text TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			priority INTEGER NOT NULL DEFAULT 0,
			created_at BIGINT NOT NULL
		)`,
	},
	{
		Version:     4,
		Description: "Create video_config table",
		Script: `CREATE TABLE video_config (
			id SERIAL PRIMARY KEY,
			video_id TEXT NOT NULL,
			title TEXT,
			updated_at BIGINT NOT NULL
		)`,
	},
	{
		Version:     5,
		Description: "Create video_playlist table",
		Script: `CREATE TABLE video_playlist (
			id SERIAL PRIMARY KEY,
			video_id TEXT NOT NULL,
			title TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			priority INTEGER NOT NULL DEFAULT 0,
			updated_at BIGINT NOT NULL
		)`,
	},
	{
		Version:     6,
		Description: "Index active announcements by priority",
		Script:      `CREATE INDEX idx_announcements_active_priority ON announcements (is_active, priority, id)`,
	},
	{
		Version:     7,
		Description: "Index active playlist entries by priority",
		Script:      `CREATE INDEX idx_video_playlist_active_priority ON video_playlist (is_active, priority, id)`,
	},
}

var sqliteMigrations = []darwin.Migration{
	{
		Version:     1,
		Description: "Create users table",
		Script: `CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		)`,
	},
	{
		Version:     2,
		Description: "Create staff_status table",
		Script: `CREATE TABLE staff_status (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			is_available BOOLEAN NOT NULL DEFAULT 0,
			position INTEGER NOT NULL DEFAULT 0
		)`,
	},
	{
		Version:     3,
		Description: "Create announcements table",
		Script: `CREATE TABLE announcements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			text TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			priority INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		)`,
	},
	{
		Version:     4,
		Description: "Create video_config table",
		Script: `CREATE TABLE video_config (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			video_id TEXT NOT NULL,
			title TEXT,
			updated_at INTEGER NOT NULL
		)`,
	},
	{
		Version:     5,
		Description: "Create video_playlist table",
		Script: `CREATE TABLE video_playlist (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			video_id TEXT NOT NULL,
			title TEXT,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			priority INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL
		)`,
	},
	{
		Version:     6,
		Description: "Index active announcements by priority",
		Script:      `CREATE INDEX idx_announcements_active_priority ON announcements (is_active, priority, id)`,
	},
	{
		Version:     7,
		Description: "Index active playlist entries by priority",
		Script:      `CREATE INDEX idx_video_playlist_active_priority ON video_playlist (is_active, priority, id)`,
	},
}

// Migrate brings the schema up to date for the connection's dialect
func Migrate(db *sqlx.DB) error {
	var (
		dialect    darwin.Dialect
		migrations []darwin.Migration
	)

	switch dialectFor(db.DriverName()) {
	case dialectSQLite:
		dialect, migrations = darwin.SqliteDialect{}, sqliteMigrations
	default:
		dialect, migrations = darwin.PostgresDialect{}, postgresMigrations
	}

	driver := darwin.NewGenericDriver(db.DB, dialect)
	if err := darwin.New(driver, migrations, nil).Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
