package database

import (
	"context"
	"database/sql"

	"job-tracker-backend/pkg/logger"

	_ "modernc.org/sqlite"
)

// NewSQLiteConnection opens a SQLite database. ":memory:" gives a private
// database per connection, so the pool is pinned to a single connection.
func NewSQLiteConnection(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Log.Info("Database connection established", "driver", "sqlite", "path", path)
	return db, nil
}
