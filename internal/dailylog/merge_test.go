// internal/dailylog/merge_test.go
package dailylog

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 23, 59, 0, 0, time.Local)
}

func sample(hm uint32) Slot {
	return Slot{
		HourMeter:         hm,
		Alarms:            1<<18 | 1,
		BatteryVoltageMin: 12.34,
		BatteryVoltageMax: 14.4,
		ChargeAmpHours:    31.7,
		LoadAmpHours:      8.2,
		ArrayFaults:       2,
		LoadFaults:        0,
		ArrayVoltageMax:   19.99,
		TimeAbsorb:        120,
		TimeEqualize:      0,
		TimeFloat:         95,
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	s := strings.TrimRight(string(b), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// ---- format ----

func TestFormatParse_RoundTrip(t *testing.T) {
	in := Entry{Date: day(2024, time.March, 10), Slot: sample(4242)}

	line := FormatLine(in)
	if !strings.HasPrefix(line, "03/10/2024\t4242\t") {
		t.Fatalf("unexpected line prefix: %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Fatalf("line must end with newline: %q", line)
	}

	out, err := ParseLine(line, time.Local)
	if err != nil {
		t.Fatalf("ParseLine err=%v", err)
	}

	if !sameDay(out.Date, in.Date) {
		t.Fatalf("date mismatch: got=%v want=%v", out.Date, in.Date)
	}
	if out.HourMeter != in.HourMeter || out.Alarms != in.Alarms {
		t.Fatalf("integer mismatch: got=%+v want=%+v", out.Slot, in.Slot)
	}
	if out.ArrayFaults != in.ArrayFaults || out.TimeAbsorb != in.TimeAbsorb || out.TimeFloat != in.TimeFloat {
		t.Fatalf("integer mismatch: got=%+v want=%+v", out.Slot, in.Slot)
	}

	floats := []struct {
		name      string
		got, want float64
	}{
		{"vb_min", out.BatteryVoltageMin, in.BatteryVoltageMin},
		{"vb_max", out.BatteryVoltageMax, in.BatteryVoltageMax},
		{"ah_charge", out.ChargeAmpHours, in.ChargeAmpHours},
		{"ah_load", out.LoadAmpHours, in.LoadAmpHours},
		{"va_max", out.ArrayVoltageMax, in.ArrayVoltageMax},
	}
	for _, f := range floats {
		if math.Abs(f.got-f.want) > 0.005 {
			t.Fatalf("%s: got=%.4f want=%.4f", f.name, f.got, f.want)
		}
	}
}

func TestParseLine_Rejects(t *testing.T) {
	cases := []string{
		"",
		"03/10/2024\t1\t2",
		"2024-03-10\t1\t0\t1\t1\t1\t1\t0\t0\t1\t0\t0\t0",
		"03/10/2024\tx\t0\t1\t1\t1\t1\t0\t0\t1\t0\t0\t0",
		"03/10/2024\t16777216\t0\t1\t1\t1\t1\t0\t0\t1\t0\t0\t0",
		"03/10/2024\t1\t0\t1\t1\t1\t1\t70000\t0\t1\t0\t0\t0",
	}
	for _, c := range cases {
		if _, err := ParseLine(c, time.Local); err == nil {
			t.Fatalf("expected error for %q", c)
		}
	}
}

func TestReadFile_MissingIsEmpty(t *testing.T) {
	entries, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"), time.Local)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

// ---- rewrite ----

func TestMerge_RewriteDatesNewestFromToday(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2024", "2024dailylog.txt")
	lf := LogFile{Path: path}

	written, err := lf.Merge(
		[]Slot{sample(100), sample(124), sample(148)},
		MergeOptions{
			Mode:            RewriteFromDeviceSnapshot,
			Now:             day(2024, time.March, 10),
			NewestFromToday: true,
		},
	)
	if err != nil {
		t.Fatalf("Merge err=%v", err)
	}
	if len(written) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(written))
	}

	want := []string{"03/08/2024", "03/09/2024", "03/10/2024"}
	lines := readLines(t, path)
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, w := range want {
		if !strings.HasPrefix(lines[i], w+"\t") {
			t.Fatalf("line %d: got=%q want prefix %q", i, lines[i], w)
		}
	}
}

func TestMerge_RewriteDatesNewestFromYesterday(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")

	_, err := LogFile{Path: path}.Merge(
		[]Slot{sample(100), sample(124), sample(148)},
		MergeOptions{Mode: RewriteFromDeviceSnapshot, Now: day(2024, time.March, 1)},
	)
	if err != nil {
		t.Fatalf("Merge err=%v", err)
	}

	// across the leap day
	want := []string{"02/27/2024", "02/28/2024", "02/29/2024"}
	lines := readLines(t, path)
	for i, w := range want {
		if !strings.HasPrefix(lines[i], w+"\t") {
			t.Fatalf("line %d: got=%q want prefix %q", i, lines[i], w)
		}
	}
}

func TestMerge_RewriteExcludeToday(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	lf := LogFile{Path: path}
	ordered := []Slot{sample(100), sample(124), sample(148)}

	written, err := lf.Merge(ordered, MergeOptions{
		Mode:            RewriteFromDeviceSnapshot,
		Now:             day(2024, time.March, 10),
		NewestFromToday: true,
		ExcludeToday:    true,
	})
	if err != nil {
		t.Fatalf("Merge err=%v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(written))
	}
	lines := readLines(t, path)
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "03/09/2024\t124\t") {
		t.Fatalf("unexpected lines: %q", lines)
	}

	// newest from yesterday: nothing of today to exclude
	written, err = lf.Merge(ordered, MergeOptions{
		Mode:         RewriteFromDeviceSnapshot,
		Now:          day(2024, time.March, 10),
		ExcludeToday: true,
	})
	if err != nil {
		t.Fatalf("Merge err=%v", err)
	}
	if len(written) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(written))
	}
}

func TestMerge_RewriteReplacesContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	if err := os.WriteFile(path, []byte("old line\nanother\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LogFile{Path: path}.Merge([]Slot{sample(7)}, MergeOptions{
		Mode: RewriteFromDeviceSnapshot,
		Now:  day(2024, time.March, 10),
	})
	if err != nil {
		t.Fatalf("Merge err=%v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "03/09/2024\t7\t") {
		t.Fatalf("unexpected lines: %q", lines)
	}
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("temporary file left behind: %v", err)
	}
}

// ---- append ----

func TestMerge_AppendNewestLeavesPriorLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	prior := FormatLine(Entry{Date: day(2024, time.March, 8), Slot: sample(50)}) +
		FormatLine(Entry{Date: day(2024, time.March, 9), Slot: sample(74)})
	if err := os.WriteFile(path, []byte(prior), 0o644); err != nil {
		t.Fatal(err)
	}

	written, err := LogFile{Path: path}.Merge(
		[]Slot{sample(50), sample(74), sample(98)},
		MergeOptions{Mode: AppendNewest, Now: day(2024, time.March, 10), Policy: PolicyLiteral},
	)
	if err != nil {
		t.Fatalf("Merge err=%v", err)
	}
	if len(written) != 1 || written[0].HourMeter != 98 {
		t.Fatalf("expected newest record written, got %+v", written)
	}

	lines := readLines(t, path)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0]+"\n"+lines[1]+"\n" != prior {
		t.Fatalf("prior lines changed: %q", lines[:2])
	}
	if !strings.HasPrefix(lines[2], "03/10/2024\t98\t") {
		t.Fatalf("unexpected appended line: %q", lines[2])
	}
}

func TestMerge_AppendLiteralDuplicatesSameDay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	lf := LogFile{Path: path}
	opts := MergeOptions{Mode: AppendNewest, Now: day(2024, time.March, 10), Policy: PolicyLiteral}

	for i := 0; i < 2; i++ {
		if _, err := lf.Merge([]Slot{sample(98)}, opts); err != nil {
			t.Fatalf("Merge err=%v", err)
		}
	}
	if n := len(readLines(t, path)); n != 2 {
		t.Fatalf("literal policy should append twice, got %d lines", n)
	}
}

func TestMerge_AppendSkipExistingDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2024", "log.txt")
	lf := LogFile{Path: path}
	opts := MergeOptions{Mode: AppendNewest, Now: day(2024, time.March, 10), Policy: PolicySkipExistingDate}

	written, err := lf.Merge([]Slot{sample(98)}, opts)
	if err != nil || len(written) != 1 {
		t.Fatalf("first append: written=%d err=%v", len(written), err)
	}

	written, err = lf.Merge([]Slot{sample(99)}, opts)
	if err != nil {
		t.Fatalf("second append err=%v", err)
	}
	if len(written) != 0 {
		t.Fatalf("second append should be skipped, wrote %d", len(written))
	}
	if n := len(readLines(t, path)); n != 1 {
		t.Fatalf("expected 1 line, got %d", n)
	}

	opts.Now = day(2024, time.March, 11)
	if written, err = lf.Merge([]Slot{sample(122)}, opts); err != nil || len(written) != 1 {
		t.Fatalf("next day append: written=%d err=%v", len(written), err)
	}
}

func TestMerge_AppendEmptyIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")

	written, err := LogFile{Path: path}.Merge(nil, MergeOptions{Mode: AppendNewest, Now: day(2024, time.March, 10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(written) != 0 {
		t.Fatalf("expected nothing written, got %d", len(written))
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("log file should not be created: %v", err)
	}
}

func TestMerge_AppendOpenFailureIsIOError(t *testing.T) {
	// the log path is a directory
	path := t.TempDir()

	_, err := LogFile{Path: path}.Merge([]Slot{sample(1)}, MergeOptions{
		Mode:   AppendNewest,
		Now:    day(2024, time.March, 10),
		Policy: PolicyLiteral,
	})
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestYearFile(t *testing.T) {
	got := YearFile("/var/log/solar", 2024, LogFileName)
	want := filepath.Join("/var/log/solar", "2024", "2024dailylog.txt")
	if got != want {
		t.Fatalf("got=%s want=%s", got, want)
	}
}
