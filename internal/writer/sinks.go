// internal/writer/sinks.go
package writer

import (
	"io"
	"strconv"

	"github.com/tamzrod/solar-logbook/internal/dailylog"
	"github.com/tamzrod/solar-logbook/internal/device"
	"github.com/tamzrod/solar-logbook/internal/report"
)

// entryStore is the part of store.Store the writer uses.
type entryStore interface {
	Upsert(entries []dailylog.Entry) error
}

// storeSink mirrors written entries into the database.
type storeSink struct {
	st entryStore
}

func (s storeSink) Deliver(res Result) error {
	return s.st.Upsert(res.Written)
}

// tableSink regenerates <web_dir>/<YYYY>/<YYYY>dailylog.html.
type tableSink struct {
	dir   string
	model device.Model
}

func (s tableSink) Deliver(res Result) error {
	path := dailylog.YearFile(s.dir, res.Year, report.TableFileName)
	title := s.model.Title + " Daily Log"
	return report.WriteFile(path, func(w io.Writer) error {
		return report.WriteTable(w, title, res.Log, s.model)
	})
}

// chartSink regenerates <web_dir>/<YYYY>/<YYYY>dailychart.html.
type chartSink struct {
	dir          string
	model        device.Model
	voltageScale float64
}

func (s chartSink) Deliver(res Result) error {
	path := dailylog.YearFile(s.dir, res.Year, report.ChartFileName)
	title := strconv.Itoa(res.Year) + " " + s.model.Title
	return report.WriteFile(path, func(w io.Writer) error {
		return report.WriteChart(w, title, res.Log, s.voltageScale)
	})
}
