// cmd/regdump/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/tamzrod/solar-logbook/internal/collector"
	"github.com/tamzrod/solar-logbook/internal/config"
	"github.com/tamzrod/solar-logbook/internal/device"
	"github.com/tamzrod/solar-logbook/internal/logging"
	"github.com/tamzrod/solar-logbook/internal/poller"
	"github.com/tamzrod/solar-logbook/internal/report"
	"github.com/tamzrod/solar-logbook/internal/status"
)

// regdump prints the live registers of any supported controller.
func main() {
	model := flag.String("model", "", "override device.model")
	slave := flag.Uint("slave", 0, "override device.slave_id")
	port := flag.String("port", "", "override serial.path")
	full := flag.Bool("full", false, "dump every known register block (RAM and EEPROM)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: regdump [flags] <config.yaml>")
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

	// flags win over the file
	if *model != "" {
		cfg.Device.Model = *model
		cfg.Device.LogCapacity = 0
	}
	if *slave != 0 {
		if *slave > 247 {
			log.Errorf("slave %d out of range 1..247", *slave)
			os.Exit(int(status.CodeConfig))
		}
		cfg.Device.SlaveID = uint8(*slave)
	}
	if *port != "" {
		cfg.Serial.Path = *port
	}

	if err := config.Validate(cfg); err != nil {
		log.Errorf("config validation failed: %v", err)
		os.Exit(status.ExitCode(err))
	}
	config.Normalize(cfg)

	if err := logging.Setup(cfg.Log, os.Stderr); err != nil {
		log.Fatalf("logging setup failed: %v", err)
	}

	if err := run(*cfg, *full); err != nil {
		log.Errorf("regdump failed: %v", err)
		os.Exit(status.ExitCode(err))
	}
}

func run(cfg config.Config, full bool) error {
	m, ok := device.Lookup(cfg.Device.Model)
	if !ok {
		return fmt.Errorf("%w: unknown model %q", config.ErrInvalid, cfg.Device.Model)
	}

	req := collector.Request{Model: m, Sections: m.Sections(full)}
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

	for _, sec := range snap.Sections {
		if err := report.WriteReadings(os.Stdout, sec.Title, sec.Readings); err != nil {
			return err
		}
	}
	return nil
}
