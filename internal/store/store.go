// internal/store/store.go
package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tamzrod/solar-logbook/internal/dailylog"
)

// schemaVersion is stored in PRAGMA user_version.
const schemaVersion = 1

const dayLayout = "2006-01-02"

// Store mirrors the daily log into a sqlite database, one row per day.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: store: path required", dailylog.ErrIO)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: store: open %s: %w", dailylog.ErrIO, path, err)
	}
	// one writer; sqlite serializes anyway
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var vers int
	if err := s.db.QueryRow("PRAGMA user_version;").Scan(&vers); err != nil {
		return fmt.Errorf("%w: store: schema version: %w", dailylog.ErrIO, err)
	}
	if vers >= schemaVersion {
		return nil
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_log (
			day          TEXT PRIMARY KEY,
			hour_meter   INTEGER NOT NULL,
			alarms       INTEGER NOT NULL,
			vb_min       REAL NOT NULL,
			vb_max       REAL NOT NULL,
			ah_charge    REAL NOT NULL,
			ah_load      REAL NOT NULL,
			va_max       REAL NOT NULL,
			time_ab      INTEGER NOT NULL,
			time_eq      INTEGER NOT NULL,
			time_fl      INTEGER NOT NULL,
			array_faults INTEGER NOT NULL,
			load_faults  INTEGER NOT NULL,
			updated_at   datetime NOT NULL
		)`,
		fmt.Sprintf("PRAGMA user_version=%d;", schemaVersion),
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("%w: store: migrate: %w", dailylog.ErrIO, err)
		}
	}
	return nil
}

// Upsert writes entries keyed by calendar day. A day already present is
// replaced. All entries are written in one transaction.
func (s *Store) Upsert(entries []dailylog.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: store: begin: %w", dailylog.ErrIO, err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO daily_log (day, hour_meter, alarms, vb_min, vb_max,
			ah_charge, ah_load, va_max, time_ab, time_eq, time_fl, array_faults, load_faults, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			hour_meter=excluded.hour_meter, alarms=excluded.alarms,
			vb_min=excluded.vb_min, vb_max=excluded.vb_max,
			ah_charge=excluded.ah_charge, ah_load=excluded.ah_load, va_max=excluded.va_max,
			time_ab=excluded.time_ab, time_eq=excluded.time_eq, time_fl=excluded.time_fl,
			array_faults=excluded.array_faults, load_faults=excluded.load_faults,
			updated_at=excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("%w: store: prepare: %w", dailylog.ErrIO, err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, e := range entries {
		_, err := stmt.Exec(
			e.Date.Format(dayLayout), e.HourMeter, e.Alarms,
			e.BatteryVoltageMin, e.BatteryVoltageMax,
			e.ChargeAmpHours, e.LoadAmpHours, e.ArrayVoltageMax,
			e.TimeAbsorb, e.TimeEqualize, e.TimeFloat,
			e.ArrayFaults, e.LoadFaults, now,
		)
		if err != nil {
			return fmt.Errorf("%w: store: upsert %s: %w", dailylog.ErrIO, e.Date.Format(dayLayout), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: store: commit: %w", dailylog.ErrIO, err)
	}
	return nil
}

// Year returns the entries of one calendar year in date order.
// Dates are placed in loc.
func (s *Store) Year(year int, loc *time.Location) ([]dailylog.Entry, error) {
	prefix := strconv.Itoa(year) + "-%"

	rows, err := s.db.Query(`SELECT day, hour_meter, alarms, vb_min, vb_max, ah_charge, ah_load,
			va_max, time_ab, time_eq, time_fl, array_faults, load_faults
		FROM daily_log WHERE day LIKE ? ORDER BY day`, prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: store: query %d: %w", dailylog.ErrIO, year, err)
	}
	defer rows.Close()

	var out []dailylog.Entry
	for rows.Next() {
		var (
			day string
			e   dailylog.Entry
		)
		if err := rows.Scan(&day, &e.HourMeter, &e.Alarms,
			&e.BatteryVoltageMin, &e.BatteryVoltageMax,
			&e.ChargeAmpHours, &e.LoadAmpHours, &e.ArrayVoltageMax,
			&e.TimeAbsorb, &e.TimeEqualize, &e.TimeFloat,
			&e.ArrayFaults, &e.LoadFaults); err != nil {
			return nil, fmt.Errorf("%w: store: scan: %w", dailylog.ErrIO, err)
		}
		d, err := time.ParseInLocation(dayLayout, day, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: store: bad day %q: %w", dailylog.ErrIO, day, err)
		}
		e.Date = d
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: store: rows: %w", dailylog.ErrIO, err)
	}
	return out, nil
}
