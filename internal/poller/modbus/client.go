// internal/poller/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// Client implements poller.Client over Modbus RTU on a serial line.
// This adapter is geometry-only: it issues reads and unpacks raw responses.
type Client struct {
	mu      sync.Mutex
	handler *modbus.RTUClientHandler
	client  modbus.Client
}

// Config is minimal transport config.
type Config struct {
	Path     string
	BaudRate int
	DataBits int
	Parity   string // "N", "E" or "O"
	StopBits int
	SlaveID  uint8
	Timeout  time.Duration
}

// New opens the serial port and returns a connected client.
func New(cfg Config) (*Client, error) {
	if cfg.Path == "" {
		return nil, errors.New("modbus client: serial path required")
	}
	if cfg.SlaveID == 0 {
		return nil, errors.New("modbus client: slave id required")
	}

	h := modbus.NewRTUClientHandler(cfg.Path)
	h.BaudRate = cfg.BaudRate
	h.DataBits = cfg.DataBits
	h.Parity = cfg.Parity
	h.StopBits = cfg.StopBits
	h.SlaveId = cfg.SlaveID
	h.Timeout = cfg.Timeout

	if err := h.Connect(); err != nil {
		return nil, err
	}

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

// Close releases the serial port.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// ---- poller.Client interface ----

func (c *Client) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := c.client.ReadHoldingRegisters(addr, qty)
	if err != nil {
		return nil, err
	}
	return checkedRegisters(data, qty)
}

func (c *Client) ReadInputRegisters(addr, qty uint16) ([]uint16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := c.client.ReadInputRegisters(addr, qty)
	if err != nil {
		return nil, err
	}
	return checkedRegisters(data, qty)
}

// ---- helpers (pure geometry) ----

func checkedRegisters(data []byte, qty uint16) ([]uint16, error) {
	if len(data) != 2*int(qty) {
		return nil, fmt.Errorf("modbus: register payload %d bytes, want %d", len(data), 2*int(qty))
	}
	return unpackRegisters(data), nil
}

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
