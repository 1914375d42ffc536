package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aanand-mishra/student-records/internal/config"
	"github.com/aanand-mishra/student-records/internal/records"
	"github.com/aanand-mishra/student-records/internal/storage"
)

var errInvalidRecords = errors.New("store contains invalid records")

// runCheck audits the configured store, e.g. after the file was edited by
// hand. Every invalid record is logged; the command fails if any exist.
func runCheck(configPath string) error {
	cfg := config.MustLoad(configPath)
	log := setupLogger(cfg.Env)

	store, err := storage.Open(cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	violations, err := records.New(store).Audit()
	if err != nil {
		return err
	}

	for _, v := range violations {
		log.Warn("invalid student record",
			slog.String("id", v.RollNo),
			slog.String("error", v.Err.Error()))
	}

	if len(violations) > 0 {
		return fmt.Errorf("%w: %d", errInvalidRecords, len(violations))
	}

	log.Info("all student records are valid", slog.String("path", cfg.StoragePath))
	return nil
}
