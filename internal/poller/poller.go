// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"time"
)

// Client abstracts Modbus operations needed by the poller.
// The poller depends on geometry only.
type Client interface {
	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) // FC 3
	ReadInputRegisters(addr, qty uint16) ([]uint16, error)   // FC 4
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Device string
	Reads  []ReadBlock

	// Delay is slept before every read. Morningstar controllers drop
	// requests that arrive back to back.
	Delay time.Duration

	// Retries is the number of extra attempts per block.
	Retries int
}

// Poller reads a fixed plan of blocks from one device.
type Poller struct {
	cfg    Config
	client Client
	sleep  func(time.Duration)
}

// New creates a poller with immutable config.
func New(cfg Config, client Client) (*Poller, error) {
	if cfg.Device == "" {
		return nil, errors.New("poller: device required")
	}
	if client == nil {
		return nil, errors.New("poller: client required")
	}
	if len(cfg.Reads) == 0 {
		return nil, errors.New("poller: at least one read block required")
	}
	if cfg.Delay < 0 {
		return nil, errors.New("poller: delay must be >= 0")
	}
	if cfg.Retries < 0 {
		return nil, errors.New("poller: retries must be >= 0")
	}
	for _, rb := range cfg.Reads {
		if rb.FC != 3 && rb.FC != 4 {
			return nil, fmt.Errorf("poller: unsupported function code %d", rb.FC)
		}
		if rb.Quantity == 0 || rb.Quantity > 125 {
			return nil, fmt.Errorf("poller: read at 0x%04X: quantity %d out of range 1..125", rb.Address, rb.Quantity)
		}
	}
	return &Poller{cfg: cfg, client: client, sleep: time.Sleep}, nil
}

// PollOnce performs exactly one poll cycle.
// All-or-nothing: any failure aborts the cycle.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{
		Device: p.cfg.Device,
		At:     time.Now(),
	}

	blocks := make([]BlockResult, 0, len(p.cfg.Reads))

	for _, rb := range p.cfg.Reads {
		regs, err := p.read(rb)
		if err != nil {
			res.Err = err
			return res
		}
		blocks = append(blocks, BlockResult{
			FC: rb.FC, Address: rb.Address, Quantity: rb.Quantity, Registers: regs,
		})
	}

	// Commit only if all reads succeeded
	res.Blocks = blocks
	return res
}

func (p *Poller) read(rb ReadBlock) ([]uint16, error) {
	var lastErr error

	for attempt := 0; attempt <= p.cfg.Retries; attempt++ {
		if p.cfg.Delay > 0 {
			p.sleep(p.cfg.Delay)
		}

		var (
			regs []uint16
			err  error
		)
		switch rb.FC {
		case 3:
			regs, err = p.client.ReadHoldingRegisters(rb.Address, rb.Quantity)
		case 4:
			regs, err = p.client.ReadInputRegisters(rb.Address, rb.Quantity)
		}

		if err == nil && len(regs) != int(rb.Quantity) {
			err = fmt.Errorf("short response: got %d registers", len(regs))
		}
		if err == nil {
			return regs, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: fc=%d addr=0x%04X qty=%d: %w",
		ErrTransport, rb.FC, rb.Address, rb.Quantity, lastErr)
}
