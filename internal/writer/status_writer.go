// internal/writer/status_writer.go
package writer

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/tamzrod/solar-logbook/internal/status"
)

// StatusWriter is the delivery-only contract for run status.
// It receives a snapshot and writes it verbatim.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// fileStatusWriter persists snapshots to the status file.
type fileStatusWriter struct {
	path string
	last status.Snapshot
}

// NewStatusWriter returns a writer for path, seeded with the snapshot
// already on disk so failure streaks survive between runs.
func NewStatusWriter(path string) (*fileStatusWriter, error) {
	if path == "" {
		return nil, errors.New("status writer: path required")
	}
	prev, err := status.ReadFile(path)
	if err != nil {
		// an unreadable file is replaced on the next write
		log.WithError(err).Warn("previous status unreadable")
		prev = status.Snapshot{}
	}
	return &fileStatusWriter{path: path, last: prev}, nil
}

// Previous returns the last snapshot written or loaded.
func (sw *fileStatusWriter) Previous() status.Snapshot {
	return sw.last
}

// WriteStatus delivers a snapshot into the status file.
func (sw *fileStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil {
		return errors.New("status writer: disabled")
	}
	if err := status.WriteFile(sw.path, s); err != nil {
		return err
	}
	sw.last = s
	return nil
}
