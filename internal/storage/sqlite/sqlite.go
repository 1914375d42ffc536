// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The whole record mapping lives in one table, one row per roll_no, with
// the record itself stored as a JSON document. Save rewrites the table
// inside a single transaction, so readers never observe a half-written
// snapshot.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aanand-mishra/student-records/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at path, creates the students table if it
// does not already exist, and returns a ready-to-use *SQLite.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// Schema:
	//   roll_no: the record key
	//   record: the record (without roll_no) as JSON
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			roll_no TEXT PRIMARY KEY,
			record  TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// Load reads every row into a records mapping.
//
// rows.Next() advances the cursor; rows.Err() reports any error that
// ended iteration early. Always defer rows.Close() to release the
// connection.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Load() (types.Records, error) {
	rows, err := s.Db.Query("SELECT roll_no, record FROM students")
	if err != nil {
		return nil, fmt.Errorf("Load: query: %w", err)
	}
	defer rows.Close()

	records := make(types.Records)

	for rows.Next() {
		var (
			rollNo string
			doc    string
		)
		if err := rows.Scan(&rollNo, &doc); err != nil {
			return nil, fmt.Errorf("Load: scan row: %w", err)
		}

		var rec types.Record
		if err := json.Unmarshal([]byte(doc), &rec); err != nil {
			return nil, fmt.Errorf("Load: decode record %s: %w", rollNo, err)
		}
		records[rollNo] = rec
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Load: rows iteration: %w", err)
	}

	return records, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Save replaces the table contents with records.
//
// The DELETE and every INSERT share one transaction: if anything fails the
// deferred Rollback restores the previous snapshot. Rollback after a
// successful Commit is a no-op.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Save(records types.Records) error {
	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("Save: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM students"); err != nil {
		return fmt.Errorf("Save: clear: %w", err)
	}

	// Prepared statements send the values separately from the SQL, so a
	// roll_no can never be interpreted as SQL syntax.
	stmt, err := tx.Prepare("INSERT INTO students (roll_no, record) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("Save: prepare: %w", err)
	}
	defer stmt.Close()

	for rollNo, rec := range records {
		doc, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("Save: encode record %s: %w", rollNo, err)
		}
		if _, err := stmt.Exec(rollNo, string(doc)); err != nil {
			return fmt.Errorf("Save: insert %s: %w", rollNo, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Save: commit: %w", err)
	}

	return nil
}
