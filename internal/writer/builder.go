// internal/writer/builder.go
package writer

import (
	"errors"

	cfg "github.com/tamzrod/solar-logbook/internal/config"
	"github.com/tamzrod/solar-logbook/internal/device"
	"github.com/tamzrod/solar-logbook/internal/store"
)

// BuildPlan converts a normalized config into a Writer Plan.
// The sqlite mirror is added when store.sqlite_path is set, the HTML pages
// when paths.web_dir is set. The returned closer releases the database.
func BuildPlan(c cfg.Config, m device.Model) (Plan, func() error, error) {
	if c.Device.Model == "" {
		return Plan{}, nil, errors.New("writer: device.model required")
	}

	plan := Plan{Device: c.Device.Model}
	var closers []func() error

	if c.Store.SQLitePath != "" {
		st, err := store.Open(c.Store.SQLitePath)
		if err != nil {
			return Plan{}, nil, err
		}
		closers = append(closers, st.Close)
		plan.Targets = append(plan.Targets, Target{Name: "sqlite", Sink: storeSink{st: st}})
	}

	if c.Paths.WebDir != "" {
		plan.Targets = append(plan.Targets,
			Target{Name: "table", Sink: tableSink{dir: c.Paths.WebDir, model: m}},
			Target{Name: "chart", Sink: chartSink{dir: c.Paths.WebDir, model: m, voltageScale: c.Graph.VoltageScale}},
		)
	}

	closeAll := func() error {
		var last error
		for _, fn := range closers {
			if err := fn(); err != nil {
				last = err
			}
		}
		return last
	}

	return plan, closeAll, nil
}
