// internal/dailylog/merge.go
package dailylog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LogFile is the persisted daily log. One writer per invocation is assumed;
// nothing here locks the file.
type LogFile struct {
	Path string
}

// Dated stamps chronologically ordered slots with calendar dates, counting
// back one day per record from now (or from yesterday when the newest record
// is not today's).
func Dated(ordered []Slot, now time.Time, newestFromToday bool) []Entry {
	today := 0
	if newestFromToday {
		today = 1
	}

	n := len(ordered)
	out := make([]Entry, 0, n)
	for i, s := range ordered {
		out = append(out, Entry{
			Date: now.AddDate(0, 0, -(n - i - today)),
			Slot: s,
		})
	}
	return out
}

// Merge writes ordered slots into the log according to opts.Mode and returns
// the entries that were written.
func (l LogFile) Merge(ordered []Slot, opts MergeOptions) ([]Entry, error) {
	if l.Path == "" {
		return nil, fmt.Errorf("%w: log path required", ErrIO)
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	switch opts.Mode {
	case AppendNewest:
		return l.appendNewest(ordered, opts)
	case RewriteFromDeviceSnapshot:
		return l.rewrite(ordered, opts)
	default:
		return nil, fmt.Errorf("dailylog: unsupported merge mode %d", opts.Mode)
	}
}

func (l LogFile) appendNewest(ordered []Slot, opts MergeOptions) ([]Entry, error) {
	if len(ordered) == 0 {
		return nil, nil
	}

	e := Entry{Date: opts.Now, Slot: ordered[len(ordered)-1]}

	if opts.Policy == PolicySkipExistingDate {
		existing, err := ReadFile(l.Path, opts.Now.Location())
		if err != nil {
			return nil, err
		}
		for _, x := range existing {
			if sameDay(x.Date, e.Date) {
				return nil, nil
			}
		}
	}

	if err := ensureDir(l.Path); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrIO, l.Path, err)
	}

	if _, err := f.WriteString(FormatLine(e)); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: append %s: %w", ErrIO, l.Path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: close %s: %w", ErrIO, l.Path, err)
	}

	return []Entry{e}, nil
}

func (l LogFile) rewrite(ordered []Slot, opts MergeOptions) ([]Entry, error) {
	entries := Dated(ordered, opts.Now, opts.NewestFromToday)
	if opts.ExcludeToday && opts.NewestFromToday && len(entries) > 0 {
		entries = entries[:len(entries)-1]
	}

	var buf bytes.Buffer
	for _, e := range entries {
		buf.WriteString(FormatLine(e))
	}

	if err := ensureDir(l.Path); err != nil {
		return nil, err
	}

	// tmp + rename: a failed rewrite leaves the previous log intact.
	tmp := l.Path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("%w: write %s: %w", ErrIO, tmp, err)
	}
	if err := os.Rename(tmp, l.Path); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("%w: rename %s: %w", ErrIO, l.Path, err)
	}

	return entries, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %w", ErrIO, dir, err)
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
