package core

import (
	"context"
	"fmt"
	"os"

	"mecore/internal/infra/persistence/memory"
	"mecore/internal/infra/persistence/postgres"
	"mecore/internal/infra/persistence/sqlite"
	"mecore/pkg/domain"
)

// StorageDriver identifies a concrete snapshot storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// Storage environment variables.
const (
	EnvStorageDriver = "MECORE_STORAGE_DRIVER"
	EnvSQLitePath    = "MECORE_SQLITE_PATH"
	EnvPostgresDSN   = "MECORE_POSTGRES_DSN"
)

// OpenSnapshotStore selects a backend using environment variables.
// Defaults to sqlite when unset.
//
//	MECORE_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	MECORE_SQLITE_PATH: path to sqlite file (default ./mecore.db)
//	MECORE_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenSnapshotStore(ctx context.Context) (domain.SnapshotStore, error) {
	driver := os.Getenv(EnvStorageDriver)
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		return sqlite.NewStore(os.Getenv(EnvSQLitePath))
	case StoragePostgres:
		return postgres.NewStore(ctx, os.Getenv(EnvPostgresDSN))
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
