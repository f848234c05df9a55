// Package store opens the job repository selected by STORE_DRIVER.
package store

import (
	"context"
	"fmt"

	"job-tracker-backend/config"
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/internal/repository/mongodb"
	"job-tracker-backend/internal/repository/postgres"
	"job-tracker-backend/internal/repository/sqlite"
	"job-tracker-backend/pkg/database"
)

// Open connects to the configured store, applies its schema and returns the
// repository with a func that releases the connection.
func Open(ctx context.Context, cfg *config.Config) (domain.JobRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres migrate: %w", err)
		}
		return postgres.NewJobRepository(pool), pool.Close, nil

	case config.DriverSQLite:
		db, err := database.NewSQLiteConnection(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("sqlite migrate: %w", err)
		}
		return sqlite.NewJobRepository(db), func() { _ = db.Close() }, nil

	case config.DriverMongo:
		client, err := database.NewMongoConnection(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongodb.Migrate(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("mongo migrate: %w", err)
		}
		return mongodb.NewJobRepository(db), func() { _ = client.Disconnect(context.Background()) }, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
