// internal/report/chart.go
package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/tamzrod/solar-logbook/internal/dailylog"
)

// 12 V system voltage axis; multiplied by the configured voltage scale.
const (
	voltAxisMin = 10.0
	voltAxisMax = 16.0
)

// WriteChart renders voltage and amp-hour line charts for entries.
// voltageScale is 1 for 12 V, 2 for 24 V and 4 for 48 V banks.
func WriteChart(w io.Writer, title string, entries []dailylog.Entry, voltageScale float64) error {
	if voltageScale <= 0 {
		voltageScale = 1
	}

	days := make([]string, 0, len(entries))
	vbMin := make([]opts.LineData, 0, len(entries))
	vbMax := make([]opts.LineData, 0, len(entries))
	vaMax := make([]opts.LineData, 0, len(entries))
	ahc := make([]opts.LineData, 0, len(entries))
	ahl := make([]opts.LineData, 0, len(entries))

	for _, e := range entries {
		days = append(days, e.Date.Format(dailylog.DateLayout))
		vbMin = append(vbMin, opts.LineData{Value: round2(e.BatteryVoltageMin)})
		vbMax = append(vbMax, opts.LineData{Value: round2(e.BatteryVoltageMax)})
		vaMax = append(vaMax, opts.LineData{Value: round2(e.ArrayVoltageMax)})
		ahc = append(ahc, opts.LineData{Value: round2(e.ChargeAmpHours)})
		ahl = append(ahl, opts.LineData{Value: round2(e.LoadAmpHours)})
	}

	subtitle := fmt.Sprintf("%d days", len(entries))

	volts := charts.NewLine()
	volts.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{
			Title:    title + " Battery Voltage",
			Subtitle: subtitle,
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Volts",
			Type: "value",
			Min:  voltAxisMin * voltageScale,
			Max:  voltAxisMax * voltageScale,
		}),
	)
	volts.SetXAxis(days).
		AddSeries("Min Vb", vbMin).
		AddSeries("Max Vb", vbMax)

	array := charts.NewLine()
	array.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: title + " Array Voltage"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Volts", Type: "value"}),
	)
	array.SetXAxis(days).AddSeries("Max Va", vaMax)
	array.SetSeriesOptions(charts.WithMarkLineNameTypeItemOpts(opts.MarkLineNameTypeItem{Name: "Maximum", Type: "max"}))

	amps := charts.NewLine()
	amps.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: title + " Amp Hours"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Ah", Type: "value"}),
	)
	amps.SetXAxis(days).
		AddSeries("Charge Ah", ahc).
		AddSeries("Load Ah", ahl)

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(volts, array, amps)
	return page.Render(w)
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
