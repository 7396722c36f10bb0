// cmd/logdump/main.go
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
	"github.com/tamzrod/solar-logbook/internal/report"
	"github.com/tamzrod/solar-logbook/internal/status"
)

// logdump prints every record in the controller's daily log, oldest first,
// with alarms and faults spelled out. Nothing is written to disk.
func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: logdump <config.yaml>")
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

	if err := run(*cfg, time.Now()); err != nil {
		log.Errorf("logdump failed: %v", err)
		os.Exit(status.ExitCode(err))
	}
}

func run(cfg config.Config, now time.Time) error {
	model, ok := device.Lookup(cfg.Device.Model)
	if !ok || !model.HasLog() || model.Status == nil {
		return fmt.Errorf("%w: model %q keeps no daily log", config.ErrInvalid, cfg.Device.Model)
	}

	req := collector.Request{Model: model, Status: true, Log: true, Capacity: cfg.Device.LogCapacity}
	reads, err := req.Reads()
	if err != nil {
		return err
	}
	p, closePoller, err := poller.Build(cfg, reads)
	if err != nil {
		return err
	}
	defer closePoller()

	snap, err := collector.Collect(p, req)
	if err != nil {
		return err
	}

	ordered, err := dailylog.Reorder(snap.Slots)
	if err != nil {
		return err
	}

	today := dailylog.IsNewestRecordFromToday(snap.Status.ChargeState, now.Hour(), snap.Status.ArrayCurrent)
	return report.WriteLogText(os.Stdout, dailylog.Dated(ordered, now, today), model)
}
