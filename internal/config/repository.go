package config

import (
	"context"
	"fmt"
	"os"

	"momentum/internal/repository"
	"momentum/internal/repository/postgres"
	"momentum/internal/repository/sqlite"
)

// CreateStore opens the store selected by the configured driver and brings
// its schema up to date
func CreateStore(ctx context.Context, config *Config) (repository.Store, error) {
	switch config.Database.Driver {
	case DriverPostgres:
		store, err := postgres.Open(ctx, config.Database.PostgresURL, postgres.Options{
			StatementTimeout: config.Database.QueryTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return store, nil

	case DriverSQLite:
		if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		store, err := sqlite.Open(ctx, config.GetDatabasePath(), sqlite.Options{
			BusyTimeout: config.Database.QueryTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return store, nil

	default:
		return nil, &ConfigError{Field: "database.driver", Message: "driver must be sqlite or postgres"}
	}
}

// CreateTestStore creates an in-memory store for testing
func CreateTestStore(ctx context.Context) (repository.Store, error) {
	store, err := sqlite.NewWithContext(ctx, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return store, nil
}
