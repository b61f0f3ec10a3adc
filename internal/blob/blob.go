// Package blob is the entry point for artifact storage. Callers depend on
// Store and obtain an implementation through Open or one of the constructors;
// the backends under internal/infra/blob stay private to this package.
package blob

import (
	"context"
	"fmt"
	"os"

	"mecore/internal/blob/core"
	"mecore/internal/infra/blob/fs"
	memorystore "mecore/internal/infra/blob/memory"
	s3store "mecore/internal/infra/blob/s3"
)

type (
	Driver     = core.Driver
	Info       = core.Info
	PutOptions = core.PutOptions
	Store      = core.Store
	S3Config   = s3store.Config
)

const (
	DriverFilesystem = core.DriverFilesystem
	DriverS3         = core.DriverS3
	DriverMemory     = core.DriverMemory
)

var (
	ErrExists   = core.ErrExists
	ErrNotFound = core.ErrNotFound
)

// Environment variables read by Open. The S3 backend reads its own
// MECORE_BLOB_S3_* variables.
const (
	EnvDriver = "MECORE_BLOB_DRIVER"
	EnvFSRoot = "MECORE_BLOB_FS_ROOT"
)

// Open selects a Store from the environment:
//
//	MECORE_BLOB_DRIVER: fs|s3|memory (default fs)
//	MECORE_BLOB_FS_ROOT: directory root when driver=fs (default ./artifacts)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv(EnvDriver)
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		return NewFilesystem(os.Getenv(EnvFSRoot))
	case DriverS3:
		return s3store.OpenFromEnv(ctx)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}

// NewFilesystem returns a Store rooted at root.
func NewFilesystem(root string) (Store, error) { return fs.New(root) }

// NewMemory returns an in-memory Store.
func NewMemory() Store { return memorystore.New() }

// NewS3 returns an S3-backed Store.
func NewS3(ctx context.Context, cfg S3Config) (Store, error) { return s3store.New(ctx, cfg) }
