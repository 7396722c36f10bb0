// internal/status/codes.go
package status

import (
	"errors"

	"github.com/tamzrod/solar-logbook/internal/config"
	"github.com/tamzrod/solar-logbook/internal/dailylog"
	"github.com/tamzrod/solar-logbook/internal/poller"
)

// CodeOf maps err to a stable error code.
// Errors that match no known kind return CodeGeneric.
func CodeOf(err error) uint16 {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, config.ErrInvalid):
		return CodeConfig
	case errors.Is(err, poller.ErrTransport):
		return CodeTransport
	case errors.Is(err, dailylog.ErrInvariantViolation):
		return CodeInvariant
	case errors.Is(err, dailylog.ErrIO):
		return CodeIO
	}

	// a device-supplied code, when the error carries one
	type coder interface{ Code() uint16 }
	var c coder
	if errors.As(err, &c) && c.Code() != CodeOK {
		return c.Code()
	}

	return CodeGeneric
}

// ExitCode is the process exit status for err.
func ExitCode(err error) int {
	return int(CodeOf(err))
}
