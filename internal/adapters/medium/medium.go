// Package medium defines the byte-oriented key-value medium the
// collection stores persist into, and its drivers.
//
// The medium is shared mutable state with no transactions: writers are
// expected to perform a full read-modify-write per logical change, and
// a concurrent writer from another process is last-write-wins. If true
// multi-writer safety is ever needed, the extension point is a revision
// counter compared on Put.
package medium

import "context"

// Driver identifies a medium backend driver.
type Driver string

// Supported drivers.
const (
	// DriverMemory is the in-memory driver, used in tests and as the
	// quota-capped stand-in for constrained storage.
	DriverMemory Driver = "memory"
	// DriverFile stores one file per key under a root directory.
	DriverFile Driver = "file"
	// DriverSQLite stores payloads as blobs in a single SQLite table.
	DriverSQLite Driver = "sqlite"
)

// Medium provides synchronous read/write access to opaque byte values
// under fixed string keys.
type Medium interface {
	// Get returns the bytes stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the bytes stored under key. A failed Put leaves the
	// previous value intact.
	Put(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the driver.
	Close() error
}
