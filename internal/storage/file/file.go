// Package file stores the record mapping in a single flat file.
//
// The format follows the file extension: .json for JSON, .yaml or .yml for
// YAML. Every Save rewrites the whole file through a temporary file in the
// same directory followed by a rename, so a crash mid-write leaves the
// previous file intact.
package file

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aanand-mishra/student-records/internal/types"
	"gopkg.in/yaml.v3"
)

type codec struct {
	marshal   func(types.Records) ([]byte, error)
	unmarshal func([]byte, *types.Records) error
}

var jsonCodec = codec{
	marshal: func(r types.Records) ([]byte, error) {
		return json.MarshalIndent(r, "", "  ")
	},
	unmarshal: func(data []byte, r *types.Records) error {
		return json.Unmarshal(data, r)
	},
}

var yamlCodec = codec{
	marshal: func(r types.Records) ([]byte, error) {
		return yaml.Marshal(r)
	},
	unmarshal: func(data []byte, r *types.Records) error {
		return yaml.Unmarshal(data, r)
	},
}

// Store is a flat-file implementation of storage.Storage.
type Store struct {
	path  string
	codec codec
}

// New returns a Store for path. The file itself is created on first Save.
func New(path string) (*Store, error) {
	var c codec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		c = jsonCodec
	case ".yaml", ".yml":
		c = yamlCodec
	default:
		return nil, fmt.Errorf("file.New: unsupported extension %q: want .json, .yaml or .yml", filepath.Ext(path))
	}

	return &Store{path: path, codec: c}, nil
}

// Load reads and decodes the whole file. A missing or blank file is an
// empty store.
func (s *Store) Load() (types.Records, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(types.Records), nil
	}
	if err != nil {
		return nil, fmt.Errorf("Load: read %s: %w", s.path, err)
	}

	records := make(types.Records)
	if len(bytes.TrimSpace(data)) == 0 {
		return records, nil
	}
	if err := s.codec.unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("Load: decode %s: %w", s.path, err)
	}
	if records == nil {
		records = make(types.Records)
	}

	return records, nil
}

// Save encodes records and atomically replaces the file.
func (s *Store) Save(records types.Records) error {
	if records == nil {
		records = make(types.Records)
	}

	data, err := s.codec.marshal(records)
	if err != nil {
		return fmt.Errorf("Save: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("Save: create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("Save: create temp file: %w", err)
	}
	// Removing after a successful rename fails harmlessly.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("Save: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("Save: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("Save: close: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("Save: replace %s: %w", s.path, err)
	}

	return nil
}
