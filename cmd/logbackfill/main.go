// cmd/logbackfill/main.go
package main

import (
	"flag"
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

// logbackfill replaces the year's log file with every record the controller
// still holds. Run it once when starting a new log; the nightly dailylog
// job keeps it current afterwards.
func main() {
	includeToday := flag.Bool("include-today", false, "keep today's record even if dailylog will append it tonight")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: logbackfill [-include-today] <config.yaml>")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(int(status.CodeConfig))
	}

	cfg, err := config.Load(flag.Arg(0))
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

	exclude := cfg.DailyLog.ExcludesToday() && !*includeToday

	now := time.Now()
	records, runErr := run(*cfg, now, exclude)

	snap := status.Next(sw.Previous(), cfg.Device.Model, now, records, runErr)
	if err := sw.WriteStatus(snap); err != nil {
		log.WithError(err).Error("status write failed")
	}

	if runErr != nil {
		log.WithField("code", status.CodeOf(runErr)).Errorf("logbackfill failed: %v", runErr)
		os.Exit(status.ExitCode(runErr))
	}
}

func run(cfg config.Config, now time.Time, excludeToday bool) (int, error) {
	model, ok := device.Lookup(cfg.Device.Model)
	if !ok || !model.HasLog() || model.Status == nil {
		return 0, fmt.Errorf("%w: model %q keeps no daily log", config.ErrInvalid, cfg.Device.Model)
	}
	lg := log.WithField("device", model.Name)

	// ---- poller: live status first, then the ring ----
	req := collector.Request{Model: model, Status: true, Log: true, Capacity: cfg.Device.LogCapacity}
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

	today := dailylog.IsNewestRecordFromToday(snap.Status.ChargeState, now.Hour(), snap.Status.ArrayCurrent)
	lg.WithFields(log.Fields{
		"charge_state":  snap.Status.ChargeState.String(),
		"array_current": snap.Status.ArrayCurrent,
		"newest_today":  today,
	}).Info("dating device log")

	ordered, err := dailylog.Reorder(snap.Slots)
	if err != nil {
		return 0, err
	}

	lf := dailylog.LogFile{Path: dailylog.YearFile(cfg.Paths.LogDir, now.Year(), dailylog.LogFileName)}
	written, err := lf.Merge(ordered, dailylog.MergeOptions{
		Mode:            dailylog.RewriteFromDeviceSnapshot,
		Now:             now,
		NewestFromToday: today,
		ExcludeToday:    excludeToday,
	})
	if err != nil {
		return 0, err
	}
	lg.WithFields(log.Fields{"file": lf.Path, "records": len(written)}).Info("log rewritten")

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
		Log:     written,
	})
	return len(written), err
}
