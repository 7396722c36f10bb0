// internal/status/constants.go
package status

// Run status codes.
// These values are read by monitoring scripts and MUST NOT be renumbered.

// ---- HEALTH CODES ----

// HealthUnknown represents a device that has not been read yet.
const HealthUnknown uint16 = 0

// HealthOK represents a successful last run.
const HealthOK uint16 = 1

// HealthError represents a failed last run.
const HealthError uint16 = 2

// ---- ERROR CODES ----

// CodeOK means the run succeeded.
const CodeOK uint16 = 0

// CodeGeneric is any failure without a more specific kind.
const CodeGeneric uint16 = 1

// CodeTransport is a serial or Modbus failure.
const CodeTransport uint16 = 2

// CodeIO is a failure reading or writing local files.
const CodeIO uint16 = 3

// CodeInvariant is a device log ring that cannot be ordered.
const CodeInvariant uint16 = 4

// CodeConfig is an unreadable or invalid configuration.
const CodeConfig uint16 = 5

// HealthName returns a short label for h.
func HealthName(h uint16) string {
	switch h {
	case HealthOK:
		return "ok"
	case HealthError:
		return "error"
	default:
		return "unknown"
	}
}
