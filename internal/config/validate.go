// internal/config/validate.go
package config

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/solar-logbook/internal/dailylog"
	"github.com/tamzrod/solar-logbook/internal/device"
)

// ErrInvalid marks a configuration that cannot be loaded or fails validation.
var ErrInvalid = errors.New("config: invalid")

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero values mean "use the default" and pass.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalid)
	}

	// ------------------------------------------------------------
	// SERIAL LINE
	// ------------------------------------------------------------

	s := cfg.Serial
	if s.Path == "" {
		return invalid("serial.path is required")
	}
	switch s.Parity {
	case "", "N", "E", "O":
	default:
		return invalid("serial.parity %q: must be N, E or O", s.Parity)
	}
	if s.StopBits != 0 && s.StopBits != 1 && s.StopBits != 2 {
		return invalid("serial.stop_bits %d: must be 1 or 2", s.StopBits)
	}
	if s.DataBits != 0 && (s.DataBits < 5 || s.DataBits > 8) {
		return invalid("serial.data_bits %d: must be 5..8", s.DataBits)
	}
	if s.BaudRate < 0 || s.TimeoutMs < 0 || s.ReadDelayUs < 0 || s.Retries < 0 {
		return invalid("serial: baud_rate, timeout_ms, read_delay_us and retries must be >= 0")
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	d := cfg.Device
	model, ok := device.Lookup(d.Model)
	if d.Model != "" && !ok {
		return invalid("device.model %q: unknown (known: %v)", d.Model, device.Names())
	}
	if d.SlaveID > 247 {
		return invalid("device.slave_id %d: must be 1..247", d.SlaveID)
	}
	if d.LogCapacity != 0 {
		if d.LogCapacity < 1 || d.LogCapacity > 256 {
			return invalid("device.log_capacity %d: must be 1..256", d.LogCapacity)
		}
		if ok && !model.HasLog() {
			return invalid("device.log_capacity set but model %q keeps no daily log", d.Model)
		}
	}

	// ------------------------------------------------------------
	// OUTPUT
	// ------------------------------------------------------------

	if cfg.Paths.LogDir == "" {
		return invalid("paths.log_dir is required")
	}

	switch dailylog.AppendPolicy(cfg.DailyLog.AppendPolicy) {
	case "", dailylog.PolicyLiteral, dailylog.PolicySkipExistingDate:
	default:
		return invalid("dailylog.append_policy %q: must be %s or %s",
			cfg.DailyLog.AppendPolicy, dailylog.PolicyLiteral, dailylog.PolicySkipExistingDate)
	}

	if cfg.Log.Level != "" {
		if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
			return invalid("log.level: %v", err)
		}
	}
	switch cfg.Log.Format {
	case "", "text", "json":
	default:
		return invalid("log.format %q: must be text or json", cfg.Log.Format)
	}

	if cfg.Graph.VoltageScale < 0 {
		return invalid("graph.voltage_scale must be > 0")
	}

	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
