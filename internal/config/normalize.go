// internal/config/normalize.go
package config

import (
	"path/filepath"

	"github.com/tamzrod/solar-logbook/internal/dailylog"
	"github.com/tamzrod/solar-logbook/internal/device"
)

// Line settings of every Morningstar controller.
const (
	DefaultBaudRate    = 9600
	DefaultDataBits    = 8
	DefaultParity      = "N"
	DefaultStopBits    = 2
	DefaultTimeoutMs   = 1000
	DefaultReadDelayUs = 2500

	DefaultModel  = device.SunSaverMPPT
	DefaultListen = ":8080"

	statusFileName = "status.yaml"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	s := &cfg.Serial
	if s.BaudRate == 0 {
		s.BaudRate = DefaultBaudRate
	}
	if s.DataBits == 0 {
		s.DataBits = DefaultDataBits
	}
	if s.Parity == "" {
		s.Parity = DefaultParity
	}
	if s.StopBits == 0 {
		s.StopBits = DefaultStopBits
	}
	if s.TimeoutMs == 0 {
		s.TimeoutMs = DefaultTimeoutMs
	}
	if s.ReadDelayUs == 0 {
		s.ReadDelayUs = DefaultReadDelayUs
	}

	d := &cfg.Device
	if d.Model == "" {
		d.Model = DefaultModel
	}
	m, _ := device.Lookup(d.Model)
	if d.SlaveID == 0 {
		d.SlaveID = m.DefaultSlave
	}
	if d.LogCapacity == 0 && m.Log != nil {
		d.LogCapacity = m.Log.Capacity
	}

	p := &cfg.Paths
	if p.StatusFile == "" {
		dir := p.WebDir
		if dir == "" {
			dir = p.LogDir
		}
		p.StatusFile = filepath.Join(dir, statusFileName)
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	if cfg.DailyLog.AppendPolicy == "" {
		cfg.DailyLog.AppendPolicy = string(dailylog.PolicySkipExistingDate)
	}
	if cfg.DailyLog.ExcludeToday == nil {
		t := true
		cfg.DailyLog.ExcludeToday = &t
	}

	if cfg.Web.Listen == "" {
		cfg.Web.Listen = DefaultListen
	}
	if cfg.Graph.VoltageScale == 0 {
		cfg.Graph.VoltageScale = 1
	}
}
