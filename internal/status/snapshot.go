// internal/status/snapshot.go
package status

import "time"

// Snapshot is the state written after every run.
type Snapshot struct {
	Device        string    `yaml:"device" json:"device"`
	Health        uint16    `yaml:"health" json:"health"`
	LastErrorCode uint16    `yaml:"last_error_code" json:"last_error_code"`
	LastError     string    `yaml:"last_error,omitempty" json:"last_error,omitempty"`
	At            time.Time `yaml:"at" json:"at"`

	// ErrorSince is the start of the current failure streak, zero when healthy.
	ErrorSince time.Time `yaml:"error_since,omitempty" json:"error_since,omitempty"`

	// Records is the number of log records handled by the run.
	Records int `yaml:"records" json:"records"`
}

// Next derives the snapshot for a run that ended at `at` with err.
// A failure streak keeps the ErrorSince of its first failure.
func Next(prev Snapshot, device string, at time.Time, records int, err error) Snapshot {
	s := Snapshot{
		Device:  device,
		At:      at,
		Records: records,
	}

	if err == nil {
		s.Health = HealthOK
		s.LastErrorCode = CodeOK
		return s
	}

	s.Health = HealthError
	s.LastErrorCode = CodeOf(err)
	s.LastError = err.Error()
	s.ErrorSince = at
	if prev.Health == HealthError && !prev.ErrorSince.IsZero() {
		s.ErrorSince = prev.ErrorSince
	}
	return s
}
