package storage

import (
	"github.com/aanand-mishra/student-records/internal/config"
	"github.com/aanand-mishra/student-records/internal/storage/file"
	"github.com/aanand-mishra/student-records/internal/storage/sqlite"
)

// Open returns the backend selected by cfg.StorageDriver, rooted at
// cfg.StoragePath. Backends holding resources also implement io.Closer.
func Open(cfg *config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case DriverFile, "":
		s, err := file.New(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverSQLite:
		s, err := sqlite.New(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, &UnknownDriverError{Driver: cfg.StorageDriver}
	}
}
