// Package storage defines the Storage interface, a contract that any
// record store must satisfy to work with this application.
//
// The store is a snapshot store: Load returns every record, and Save
// replaces every record. There is no per-record API and no locking;
// callers build the full desired mapping and serialize their own
// read-modify-write cycles (see package records).
package storage

import (
	"fmt"

	"github.com/aanand-mishra/student-records/internal/types"
)

// Storage is the record store contract.
type Storage interface {
	// Load returns the full mapping of roll_no to record. A store that
	// has never been saved returns an empty, non-nil mapping.
	Load() (types.Records, error)

	// Save overwrites the whole store with records. Readers see either
	// the previous mapping or the new one, never a mix.
	Save(records types.Records) error
}

// Driver names accepted in the storage_driver config key.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// UnknownDriverError is returned when the configured driver has no backend.
type UnknownDriverError struct {
	Driver string
}

func (e *UnknownDriverError) Error() string {
	return fmt.Sprintf("unknown storage driver %q (want %q or %q)", e.Driver, DriverFile, DriverSQLite)
}
