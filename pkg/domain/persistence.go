package domain

import (
	"context"
	"errors"
)

// Driver identifies a concrete document backend.
type Driver string

const (
	DriverMemory   Driver = "memory"   // in-process (tests / ephemeral)
	DriverSQLite   Driver = "sqlite"   // embedded sqlite file
	DriverPostgres Driver = "postgres" // PostgreSQL server
	DriverRedis    Driver = "redis"    // Redis string per key
	DriverFS       Driver = "fs"       // one file per key
	DriverS3       Driver = "s3"       // S3 / MinIO compatible
)

// ErrDocumentNotFound is returned by DocumentStore.Load when no document has
// been saved under the key yet.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore persists whole serialized documents under a stable key. Saves
// replace the previous document entirely; there are no partial writes.
type DocumentStore interface {
	// Load returns the document stored at key or an error wrapping
	// ErrDocumentNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the document stored at key.
	Save(ctx context.Context, key string, doc []byte) error
	// Driver reports the backend kind.
	Driver() Driver
}
