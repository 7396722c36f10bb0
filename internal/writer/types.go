// internal/writer/types.go
package writer

import (
	"time"

	"github.com/tamzrod/solar-logbook/internal/dailylog"
)

// Result is what one run hands to the writer.
type Result struct {
	Device string
	At     time.Time
	Year   int

	Written []dailylog.Entry // entries the merge added or rewrote
	Log     []dailylog.Entry // the year's log file after the merge
}

// Sink is one output a Result is delivered to.
type Sink interface {
	Deliver(res Result) error
}

// Target is one named sink inside a plan.
type Target struct {
	Name string
	Sink Sink
}

// Plan is the fully-built delivery plan for one device.
type Plan struct {
	Device  string
	Targets []Target
}

// Writer delivers run results into targets.
type Writer interface {
	Write(res Result) error
}
