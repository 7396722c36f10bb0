// internal/report/report_test.go
package report

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tamzrod/solar-logbook/internal/dailylog"
	"github.com/tamzrod/solar-logbook/internal/device"
)

func sunsaver(t *testing.T) device.Model {
	t.Helper()
	m, ok := device.Lookup(device.SunSaverMPPT)
	if !ok {
		t.Fatalf("sunsaver-mppt not registered")
	}
	return m
}

func entries() []dailylog.Entry {
	return []dailylog.Entry{
		{
			Date: time.Date(2024, 3, 9, 23, 59, 0, 0, time.Local),
			Slot: dailylog.Slot{HourMeter: 100, BatteryVoltageMin: 12.1, BatteryVoltageMax: 14.4,
				ChargeAmpHours: 30.5, LoadAmpHours: 10.2, ArrayVoltageMax: 38.2, TimeAbsorb: 90, TimeFloat: 200},
		},
		{
			Date: time.Date(2024, 3, 10, 23, 59, 0, 0, time.Local),
			Slot: dailylog.Slot{HourMeter: 124, Alarms: 1 | 1<<5, ArrayFaults: 1 << 4, LoadFaults: 1,
				BatteryVoltageMin: 11.9, BatteryVoltageMax: 14.6, ChargeAmpHours: 28, LoadAmpHours: 9.5,
				ArrayVoltageMax: 40, TimeEqualize: 60},
		},
	}
}

func TestWriteLogText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteLogText(&buf, entries(), sunsaver(t)); err != nil {
		t.Fatalf("WriteLogText err=%v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Date = 03/09/2024\nhourmeter = 100 h\n",
		"alarm_daily = Daily controller self-diagnostic alarms:\n\tNo alarms\n",
		"Vb_min_daily = 12.10 V\n",
		recordSeparator + "\n\nDate = 03/10/2024\n",
		"\tRTS open\n\tSSMPPT hot\n",
		"array_fault_daily = Daily solar input self-diagnostic faults:\n\tArray HVD\n",
		"load_fault_daily = Daily load output self-diagnostic faults:\n\tExternal short circuit\n",
		"time_eq_daily = 60 min\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Count(out, recordSeparator) != 1 {
		t.Fatalf("separator count got=%d want=1", strings.Count(out, recordSeparator))
	}
}

func TestWriteReadings(t *testing.T) {
	m, _ := device.Lookup(device.RelayDriver)
	rs, err := m.Basic.Decode([]uint16{16384, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("decode err=%v", err)
	}

	var buf bytes.Buffer
	if err := WriteReadings(&buf, m.Title, rs); err != nil {
		t.Fatalf("WriteReadings err=%v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Relay Driver\n\n") || !strings.Contains(out, "adc_vb = 39.21 V\n") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, "SunSaver MPPT Daily Log", entries(), sunsaver(t)); err != nil {
		t.Fatalf("WriteTable err=%v", err)
	}
	out := buf.String()

	if strings.Count(out, "<tr>") != 3 {
		t.Fatalf("rows got=%d want=3 (header + 2)", strings.Count(out, "<tr>"))
	}
	for _, want := range []string{
		"<title>SunSaver MPPT Daily Log</title>",
		"<th>Load Output Faults</th>",
		"<td>03/10/2024</td>",
		"<td>14.60</td>",
		"<td>No alarms</td>",
		"<td>RTS open<br>SSMPPT hot</td>",
		"<td>Array HVD</td>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestWriteChart(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteChart(&buf, "2024 Daily", entries(), 2); err != nil {
		t.Fatalf("WriteChart err=%v", err)
	}
	out := buf.String()
	for _, want := range []string{"2024 Daily Battery Voltage", "Charge Ah", "03/10/2024", "echarts"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in chart page", want)
		}
	}
}

func TestWriteFile_ReplacesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2024", "2024dailylog.html")

	write := func(body string) error {
		return WriteFile(path, func(w io.Writer) error {
			_, err := io.WriteString(w, body)
			return err
		})
	}
	if err := write("first"); err != nil {
		t.Fatalf("WriteFile err=%v", err)
	}
	if err := write("second"); err != nil {
		t.Fatalf("WriteFile err=%v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil || string(got) != "second" {
		t.Fatalf("got=%q err=%v", got, err)
	}
	left, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	if len(left) != 0 {
		t.Fatalf("temp files left: %v", left)
	}
}

func TestWriteFile_RenderErrorKeepsOld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := WriteFile(path, func(w io.Writer) error { return errors.New("boom") })
	if !errors.Is(err, dailylog.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "old" {
		t.Fatalf("page replaced on failure: %q", got)
	}
}
