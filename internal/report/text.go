// internal/report/text.go
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tamzrod/solar-logbook/internal/dailylog"
	"github.com/tamzrod/solar-logbook/internal/device"
)

const recordSeparator = "-------------------------------------------------------------"

// WriteLogText prints every entry with decoded alarm and fault names,
// oldest first.
func WriteLogText(w io.Writer, entries []dailylog.Entry, m device.Model) error {
	bw := bufio.NewWriter(w)

	for i, e := range entries {
		if i != 0 {
			fmt.Fprintf(bw, "%s\n\n", recordSeparator)
		}
		fmt.Fprintf(bw, "Date = %s\n", e.Date.Format(dailylog.DateLayout))
		fmt.Fprintf(bw, "hourmeter = %d h\n", e.HourMeter)

		fmt.Fprintf(bw, "alarm_daily = Daily controller self-diagnostic alarms:\n")
		writeFlags(bw, device.BitNames(e.Alarms, m.AlarmNames), "No alarms")

		fmt.Fprintf(bw, "Vb_min_daily = %.2f V\n", e.BatteryVoltageMin)
		fmt.Fprintf(bw, "Vb_max_daily = %.2f V\n", e.BatteryVoltageMax)
		fmt.Fprintf(bw, "Ahc_daily = %.2f Ah\n", e.ChargeAmpHours)
		fmt.Fprintf(bw, "Ahl_daily = %.2f Ah\n", e.LoadAmpHours)

		fmt.Fprintf(bw, "array_fault_daily = Daily solar input self-diagnostic faults:\n")
		writeFlags(bw, device.BitNames(uint32(e.ArrayFaults), m.ArrayFaultNames), "No faults")
		fmt.Fprintf(bw, "load_fault_daily = Daily load output self-diagnostic faults:\n")
		writeFlags(bw, device.BitNames(uint32(e.LoadFaults), m.LoadFaultNames), "No faults")

		fmt.Fprintf(bw, "Va_max_daily = %.2f V\n", e.ArrayVoltageMax)
		fmt.Fprintf(bw, "time_ab_daily = %d min\n", e.TimeAbsorb)
		fmt.Fprintf(bw, "time_eq_daily = %d min\n", e.TimeEqualize)
		fmt.Fprintf(bw, "time_fl_daily = %d min\n\n", e.TimeFloat)
	}

	return bw.Flush()
}

func writeFlags(w io.Writer, names []string, none string) {
	if len(names) == 0 {
		fmt.Fprintf(w, "\t%s\n", none)
		return
	}
	for _, n := range names {
		fmt.Fprintf(w, "\t%s\n", n)
	}
}

// WriteReadings prints one register section as "name = value unit" lines.
func WriteReadings(w io.Writer, title string, rs []device.Reading) error {
	bw := bufio.NewWriter(w)
	if title != "" {
		fmt.Fprintf(bw, "%s\n\n", title)
	}
	for _, r := range rs {
		fmt.Fprintln(bw, r.String())
	}
	fmt.Fprintln(bw)
	return bw.Flush()
}
