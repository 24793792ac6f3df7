package api

import (
	"log/slog"

	"github.com/reolink-tools/fwcheck/pkg/checker"
	"github.com/reolink-tools/fwcheck/pkg/config"
	"github.com/reolink-tools/fwcheck/pkg/logging"
	"github.com/reolink-tools/fwcheck/pkg/server"
)

const (
	name           = "fwcheckd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/reolink-tools/fwcheck/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the firmware check daemon and blocks until shutdown.
// It loads the device configuration, configures logging, and delegates
// lifecycle management to pkg/server.
func Serve() error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	cfg, err := config.Load("")
	if err != nil {
		slog.Error("failed to load configuration", "error", err.Error())
		return err
	}

	if cfg.Settings.VerboseOutput {
		logging.SetDefaultStructuredLoggerWithLevel(name, version, "debug")
	}

	srvCfg := server.NewConfig()
	srvCfg.Name = name
	srvCfg.Version = version
	srvCfg.CheckInterval = cfg.Settings.CheckInterval
	srvCfg.CheckOnStartup = cfg.Settings.CheckOnStartup

	if err := server.Run(srvCfg, checker.New(), cfg.Device); err != nil {
		slog.Error("server exited with error", "error", err.Error())
		return err
	}

	return nil
}
