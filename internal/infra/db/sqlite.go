package db

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/config"
)

const sqliteScheme = "sqlite://"

// NewSQLiteConnection opens a SQLite database for local development.
// Foreign keys are switched on so deleting a user cascades to its expenses.
func NewSQLiteConnection(cfg *config.DatabaseConfig) (*Database, error) {
	path := strings.TrimPrefix(cfg.URL, sqliteScheme)
	if path == "" {
		return nil, fmt.Errorf("sqlite database path is empty")
	}

	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}

	slog.Info("Database connection established", "dialect", db.Dialector.Name(), "path", path)

	return &Database{
		db:  db,
		cfg: cfg,
	}, nil
}

// OpenSQLite opens a GORM handle on a SQLite file, or ":memory:" for a
// private in-memory database. A single connection is kept so every query
// sees the same database.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path == ":memory:" {
		dsn = "file::memory:?_pragma=foreign_keys(1)"
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}
