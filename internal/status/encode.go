// internal/status/encode.go
package status

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/solar-logbook/internal/dailylog"
)

// Encode converts a Snapshot into its YAML document.
// No IO. No side effects.
func Encode(s Snapshot) ([]byte, error) {
	return yaml.Marshal(s)
}

// Decode parses a document produced by Encode.
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("status: decode: %w", err)
	}
	return s, nil
}

// ReadFile loads the snapshot at path.
// A missing file yields a zero Snapshot (HealthUnknown) and no error.
func ReadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: read %s: %w", dailylog.ErrIO, path, err)
	}
	return Decode(data)
}

// WriteFile replaces the snapshot at path atomically.
func WriteFile(path string, s Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return fmt.Errorf("status: encode: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %w", dailylog.ErrIO, filepath.Dir(path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %w", dailylog.ErrIO, tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: rename %s: %w", dailylog.ErrIO, path, err)
	}
	return nil
}
