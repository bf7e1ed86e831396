package medium

import (
	"context"
	"fmt"
)

// Open constructs the medium named by driver. path is the sqlite file
// for DriverSQLite, the root directory for DriverFile, and ignored for
// DriverMemory.
func Open(_ context.Context, driver Driver, path string) (Medium, error) {
	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		return NewFile(path)
	case DriverSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
