// internal/report/table.go
package report

import (
	"html/template"
	"io"

	"github.com/tamzrod/solar-logbook/internal/dailylog"
	"github.com/tamzrod/solar-logbook/internal/device"
)

var tableTmpl = template.Must(template.New("table").Parse(`<html>
<head>
	<title>{{.Title}}</title>
</head>
<body bgcolor="#6699FF" text="#000000" link="#330099" vlink="#336633" alink="#FFCC00">
<h3 style="font-family:Comic Sans MS;color:#663300">{{.Title}}</h3>
<table border="1" style="font-family:arial;color:black;font-size:12px;background-color:white;text-align:center;">
	<tr>
		<th>Date</th>
		<th>Hour Meter</th>
		<th>Min Vb</th>
		<th>Max Vb</th>
		<th>Charge Ah</th>
		<th>Load Ah</th>
		<th>Max Va</th>
		<th>Ab Time</th>
		<th>Eq Time</th>
		<th>Fl Time</th>
		<th>Controller Alarms</th>
		<th>Solar Input Faults</th>
		<th>Load Output Faults</th>
	</tr>
{{- range .Rows}}
	<tr>
		<td>{{.Date}}</td>
		<td>{{.HourMeter}}</td>
		<td>{{printf "%.2f" .VbMin}}</td>
		<td>{{printf "%.2f" .VbMax}}</td>
		<td>{{printf "%.2f" .AhCharge}}</td>
		<td>{{printf "%.2f" .AhLoad}}</td>
		<td>{{printf "%.2f" .VaMax}}</td>
		<td>{{.TimeAbsorb}}</td>
		<td>{{.TimeEqualize}}</td>
		<td>{{.TimeFloat}}</td>
		<td>{{template "flags" .Alarms}}</td>
		<td>{{template "flags" .ArrayFaults}}</td>
		<td>{{template "flags" .LoadFaults}}</td>
	</tr>
{{- end}}
</table>
</body>
</html>
{{define "flags"}}{{range $i, $n := .}}{{if $i}}<br>{{end}}{{$n}}{{end}}{{end}}`))

type tableRow struct {
	Date         string
	HourMeter    uint32
	VbMin, VbMax float64
	AhCharge     float64
	AhLoad       float64
	VaMax        float64
	TimeAbsorb   uint16
	TimeEqualize uint16
	TimeFloat    uint16
	Alarms       []string
	ArrayFaults  []string
	LoadFaults   []string
}

func flagsOr(names []string, none string) []string {
	if len(names) == 0 {
		return []string{none}
	}
	return names
}

// WriteTable renders the year's daily log as an HTML table, one row per entry.
func WriteTable(w io.Writer, title string, entries []dailylog.Entry, m device.Model) error {
	rows := make([]tableRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, tableRow{
			Date:         e.Date.Format(dailylog.DateLayout),
			HourMeter:    e.HourMeter,
			VbMin:        e.BatteryVoltageMin,
			VbMax:        e.BatteryVoltageMax,
			AhCharge:     e.ChargeAmpHours,
			AhLoad:       e.LoadAmpHours,
			VaMax:        e.ArrayVoltageMax,
			TimeAbsorb:   e.TimeAbsorb,
			TimeEqualize: e.TimeEqualize,
			TimeFloat:    e.TimeFloat,
			Alarms:       flagsOr(device.BitNames(e.Alarms, m.AlarmNames), "No alarms"),
			ArrayFaults:  flagsOr(device.BitNames(uint32(e.ArrayFaults), m.ArrayFaultNames), "No faults"),
			LoadFaults:   flagsOr(device.BitNames(uint32(e.LoadFaults), m.LoadFaultNames), "No faults"),
		})
	}

	return tableTmpl.Execute(w, struct {
		Title string
		Rows  []tableRow
	}{Title: title, Rows: rows})
}
