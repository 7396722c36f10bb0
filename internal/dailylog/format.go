// internal/dailylog/format.go
package dailylog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the date stamp at the start of every log line.
const DateLayout = "01/02/2006"

const fieldsPerLine = 13

// FormatLine renders one entry as a tab separated log line, newline included.
func FormatLine(e Entry) string {
	return fmt.Sprintf(
		"%s\t%d\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%d\t%d\t%.2f\t%d\t%d\t%d\n",
		e.Date.Format(DateLayout),
		e.HourMeter,
		e.Alarms,
		e.BatteryVoltageMin,
		e.BatteryVoltageMax,
		e.ChargeAmpHours,
		e.LoadAmpHours,
		e.ArrayFaults,
		e.LoadFaults,
		e.ArrayVoltageMax,
		e.TimeAbsorb,
		e.TimeEqualize,
		e.TimeFloat,
	)
}

// ParseLine is the inverse of FormatLine. The trailing newline is optional.
// Dates are interpreted in loc.
func ParseLine(line string, loc *time.Location) (Entry, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(fields) != fieldsPerLine {
		return Entry{}, fmt.Errorf("dailylog: expected %d fields, got %d", fieldsPerLine, len(fields))
	}

	var e Entry
	var err error

	if e.Date, err = time.ParseInLocation(DateLayout, fields[0], loc); err != nil {
		return Entry{}, fmt.Errorf("dailylog: date: %w", err)
	}

	p := fieldParser{fields: fields}
	e.HourMeter = uint32(p.uint(1, 24))
	e.Alarms = uint32(p.uint(2, 32))
	e.BatteryVoltageMin = p.float(3)
	e.BatteryVoltageMax = p.float(4)
	e.ChargeAmpHours = p.float(5)
	e.LoadAmpHours = p.float(6)
	e.ArrayFaults = uint16(p.uint(7, 16))
	e.LoadFaults = uint16(p.uint(8, 16))
	e.ArrayVoltageMax = p.float(9)
	e.TimeAbsorb = uint16(p.uint(10, 16))
	e.TimeEqualize = uint16(p.uint(11, 16))
	e.TimeFloat = uint16(p.uint(12, 16))

	if p.err != nil {
		return Entry{}, p.err
	}
	return e, nil
}

// fieldParser keeps the first conversion error.
type fieldParser struct {
	fields []string
	err    error
}

func (p *fieldParser) uint(i, bits int) uint64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseUint(p.fields[i], 10, bits)
	if err != nil {
		p.err = fmt.Errorf("dailylog: field %d: %w", i, err)
	}
	return v
}

func (p *fieldParser) float(i int) float64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(p.fields[i], 64)
	if err != nil {
		p.err = fmt.Errorf("dailylog: field %d: %w", i, err)
	}
	return v
}

// ReadEntries parses every line of r. Blank lines are skipped.
func ReadEntries(r io.Reader, loc *time.Location) ([]Entry, error) {
	var out []Entry

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		e, err := ParseLine(text, loc)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return out, nil
}

// ReadFile parses a persisted log. A missing file is an empty log.
func ReadFile(path string, loc *time.Location) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
	}
	defer f.Close()

	entries, err := ReadEntries(f, loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}
