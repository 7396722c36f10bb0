// internal/dailylog/paths.go
package dailylog

import (
	"path/filepath"
	"strconv"
)

// YearFile returns <dir>/<YYYY>/<YYYY><name>, the per-year file layout shared
// by the log and web directories.
func YearFile(dir string, year int, name string) string {
	y := strconv.Itoa(year)
	return filepath.Join(dir, y, y+name)
}

// LogFileName is the per-year log file suffix.
const LogFileName = "dailylog.txt"
