// internal/dailylog/types.go
package dailylog

import (
	"errors"
	"time"
)

// Hour meter values the device writes into slots that hold no record.
const (
	HourMeterEmpty  uint32 = 0x000000
	HourMeterErased uint32 = 0xFFFFFF
)

var (
	// ErrInvariantViolation means the ring buffer layout cannot be explained
	// by a single wrap point.
	ErrInvariantViolation = errors.New("dailylog: invariant violation")

	// ErrIO wraps failures to open, read or write the persisted log.
	ErrIO = errors.New("dailylog: io error")
)

// Slot is one daily record read from the device log ring, in physical units.
type Slot struct {
	HourMeter uint32 `json:"hour_meter"` // 24-bit runtime counter, sort key
	Alarms    uint32 `json:"alarms"`     // 24-bit alarm mask

	BatteryVoltageMin float64 `json:"vb_min"`
	BatteryVoltageMax float64 `json:"vb_max"`
	ChargeAmpHours    float64 `json:"ah_charge"`
	LoadAmpHours      float64 `json:"ah_load"`

	ArrayFaults uint16 `json:"array_faults"`
	LoadFaults  uint16 `json:"load_faults"`

	ArrayVoltageMax float64 `json:"va_max"`

	// Minutes spent in each charge stage.
	TimeAbsorb   uint16 `json:"time_ab"`
	TimeEqualize uint16 `json:"time_eq"`
	TimeFloat    uint16 `json:"time_fl"`
}

// IsSentinel reports whether the slot is an empty or erased ring position.
func (s Slot) IsSentinel() bool {
	return s.HourMeter == HourMeterEmpty || s.HourMeter == HourMeterErased
}

// Entry is a Slot stamped with the calendar day it summarizes.
// One Entry is one line of the persisted log.
type Entry struct {
	Date time.Time `json:"date"`
	Slot
}

// Mode selects how ordered slots are merged into the log file.
type Mode int

const (
	// AppendNewest appends the newest record stamped with today's date.
	AppendNewest Mode = iota
	// RewriteFromDeviceSnapshot replaces the whole file with the device history.
	RewriteFromDeviceSnapshot
)

func (m Mode) String() string {
	switch m {
	case AppendNewest:
		return "append-newest"
	case RewriteFromDeviceSnapshot:
		return "rewrite-from-device-snapshot"
	default:
		return "unknown"
	}
}

// AppendPolicy controls duplicate handling in AppendNewest mode.
type AppendPolicy string

const (
	// PolicyLiteral appends unconditionally, even if today already has a line.
	PolicyLiteral AppendPolicy = "literal"
	// PolicySkipExistingDate leaves the file untouched when today is present.
	PolicySkipExistingDate AppendPolicy = "skip-existing-date"
)

// MergeOptions parameterizes LogFile.Merge.
type MergeOptions struct {
	Mode Mode
	Now  time.Time

	// NewestFromToday shifts every date forward by one day in rewrite mode.
	NewestFromToday bool

	// ExcludeToday drops the newest record from a rewrite when it is today's,
	// leaving it for the nightly append.
	ExcludeToday bool

	Policy AppendPolicy
}
