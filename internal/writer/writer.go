// internal/writer/writer.go
package writer

import (
	"fmt"
	"strings"

	"github.com/tamzrod/solar-logbook/internal/dailylog"
)

type writerImpl struct {
	plan Plan
}

func New(plan Plan) Writer {
	return &writerImpl{plan: plan}
}

// Write delivers res to every target. A failing target does not stop the
// others; all failures are reported together.
func (w *writerImpl) Write(res Result) error {
	var errs []string

	for _, tgt := range w.plan.Targets {
		if tgt.Sink == nil {
			errs = append(errs, fmt.Sprintf(
				"writer: missing sink for target %s",
				tgt.Name,
			))
			continue
		}

		if err := tgt.Sink.Deliver(res); err != nil {
			errs = append(errs, fmt.Sprintf(
				"writer: device=%s target=%s err=%v",
				w.plan.Device, tgt.Name, err,
			))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", dailylog.ErrIO, strings.Join(errs, " | "))
	}

	return nil
}
