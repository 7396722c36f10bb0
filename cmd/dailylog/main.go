// cmd/dailylog/main.go
package main

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tamzrod/solar-logbook/internal/collector"
	"github.com/tamzrod/solar-logbook/internal/config"
	"github.com/tamzrod/solar-logbook/internal/dailylog"
	"github.com/tamzrod/solar-logbook/internal/device"
	"github.com/tamzrod/solar-logbook/internal/logging"
	"github.com/tamzrod/solar-logbook/internal/poller"
	"github.com/tamzrod/solar-logbook/internal/status"
	"github.com/tamzrod/solar-logbook/internal/writer"
)

// dailylog runs once a night, after the controller has closed the day's
// log record: it appends the newest record to the year's log file and
// regenerates the web pages.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: dailylog <config.yaml>")
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(os.Args[1])
	if err != nil {
		log.Errorf("config load failed: %v", err)
		os.Exit(status.ExitCode(err))
	}
	if err := config.Validate(cfg); err != nil {
		log.Errorf("config validation failed: %v", err)
		os.Exit(status.ExitCode(err))
	}
	config.Normalize(cfg)

	if err := logging.Setup(cfg.Log, os.Stderr); err != nil {
		log.Fatalf("logging setup failed: %v", err)
	}

	sw, err := writer.NewStatusWriter(cfg.Paths.StatusFile)
	if err != nil {
		log.Fatalf("status writer failed: %v", err)
	}

	now := time.Now()
	records, runErr := run(*cfg, now)

	snap := status.Next(sw.Previous(), cfg.Device.Model, now, records, runErr)
	if err := sw.WriteStatus(snap); err != nil {
		log.WithError(err).Error("status write failed")
	}

	if runErr != nil {
		log.WithField("code", status.CodeOf(runErr)).Errorf("dailylog failed: %v", runErr)
		os.Exit(status.ExitCode(runErr))
	}
}

func run(cfg config.Config, now time.Time) (int, error) {
	model, ok := device.Lookup(cfg.Device.Model)
	if !ok || !model.HasLog() {
		return 0, fmt.Errorf("%w: model %q keeps no daily log", config.ErrInvalid, cfg.Device.Model)
	}
	lg := log.WithField("device", model.Name)

	// ---- poller ----
	req := collector.Request{Model: model, Log: true, Capacity: cfg.Device.LogCapacity}
	reads, err := req.Reads()
	if err != nil {
		return 0, err
	}
	p, closePoller, err := poller.Build(cfg, reads)
	if err != nil {
		return 0, err
	}
	snap, err := collector.Collect(p, req)
	if cerr := closePoller(); cerr != nil {
		lg.WithError(cerr).Warn("serial close failed")
	}
	if err != nil {
		return 0, err
	}

	// ---- reorder + append ----
	ordered, err := dailylog.Reorder(snap.Slots)
	if err != nil {
		return 0, err
	}
	lg.WithField("records", len(ordered)).Debug("log ring ordered")

	lf := dailylog.LogFile{Path: dailylog.YearFile(cfg.Paths.LogDir, now.Year(), dailylog.LogFileName)}
	written, err := lf.Merge(ordered, dailylog.MergeOptions{
		Mode:   dailylog.AppendNewest,
		Now:    now,
		Policy: dailylog.AppendPolicy(cfg.DailyLog.AppendPolicy),
	})
	if err != nil {
		return 0, err
	}
	if len(written) == 0 {
		lg.Info("nothing appended")
	} else {
		lg.WithFields(log.Fields{
			"file":       lf.Path,
			"hour_meter": written[0].HourMeter,
		}).Info("record appended")
	}

	// ---- mirror + pages ----
	all, err := dailylog.ReadFile(lf.Path, now.Location())
	if err != nil {
		return len(written), err
	}

	plan, closeWriters, err := writer.BuildPlan(cfg, model)
	if err != nil {
		return len(written), err
	}
	defer closeWriters()

	err = writer.New(plan).Write(writer.Result{
		Device:  model.Name,
		At:      now,
		Year:    now.Year(),
		Written: written,
		Log:     all,
	})
	return len(written), err
}
