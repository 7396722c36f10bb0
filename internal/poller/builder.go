// internal/poller/builder.go
package poller

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/solar-logbook/internal/config"
	pmodbus "github.com/tamzrod/solar-logbook/internal/poller/modbus"
)

// Build opens the serial port described by c and returns a Poller for reads.
// The returned closer releases the port.
func Build(c cfg.Config, reads []ReadBlock) (*Poller, func() error, error) {
	client, err := pmodbus.New(pmodbus.Config{
		Path:     c.Serial.Path,
		BaudRate: c.Serial.BaudRate,
		DataBits: c.Serial.DataBits,
		Parity:   c.Serial.Parity,
		StopBits: c.Serial.StopBits,
		SlaveID:  c.Device.SlaveID,
		Timeout:  time.Duration(c.Serial.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: open %s: %w", ErrTransport, c.Serial.Path, err)
	}

	p, err := New(
		Config{
			Device:  c.Device.Model,
			Reads:   reads,
			Delay:   time.Duration(c.Serial.ReadDelayUs) * time.Microsecond,
			Retries: c.Serial.Retries,
		},
		client,
	)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	return p, client.Close, nil
}
