package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reolink-tools/fwcheck/pkg/defaults"
	"github.com/reolink-tools/fwcheck/pkg/device"
	"github.com/reolink-tools/fwcheck/pkg/version"
)

const (
	// FileName is the config file searched for in the working directory.
	FileName = "fwcheck.yaml"
	// HomeFileName is the fallback config file in the user's home directory.
	HomeFileName = ".fwcheck.yaml"
)

// Environment variable overrides, applied after file load.
const (
	envModel    = "FWCHECK_MODEL"
	envHardware = "FWCHECK_HARDWARE_VERSION"
	envFirmware = "FWCHECK_FIRMWARE"
	envInterval = "FWCHECK_CHECK_INTERVAL"
)

// Settings holds behavioral toggles persisted alongside the device record.
type Settings struct {
	// CheckOnStartup runs a check immediately when the daemon starts.
	CheckOnStartup bool `json:"check_on_startup" yaml:"check_on_startup"`
	// VerboseOutput enables debug-level logging regardless of LOG_LEVEL.
	VerboseOutput bool `json:"verbose_output" yaml:"verbose_output"`
	// AutoOpenBrowser opens the download center during the manual flow.
	AutoOpenBrowser bool `json:"auto_open_browser_on_manual" yaml:"auto_open_browser_on_manual"`
	// CheckInterval is the period between checks in daemon mode.
	CheckInterval time.Duration `json:"check_interval" yaml:"check_interval"`
}

// Config is the persisted fwcheck configuration.
type Config struct {
	Device   device.Device `json:"device" yaml:"device"`
	Settings Settings      `json:"settings" yaml:"settings"`

	// path is where the config was loaded from and will be saved to.
	path string
}

// Default returns the configuration seeded for the reference deployment,
// an RLN8-410 NVR on hardware revision N2MB02.
func Default() *Config {
	return &Config{
		Device: device.Device{
			Model:           "RLN8-410",
			HardwareVersion: "N2MB02",
			Firmware:        "v3.5.1.368_25010326",
		},
		Settings: Settings{
			CheckOnStartup:  true,
			VerboseOutput:   false,
			AutoOpenBrowser: true,
			CheckInterval:   defaults.CheckInterval,
		},
		path: FileName,
	}
}

// Load reads the configuration from the given path. When path is empty it
// searches the working directory and then the user's home directory; when no
// file exists it returns Default so first runs work without setup. A file
// that exists but cannot be read or parsed is an error, never silently
// replaced with defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = discover()
	}

	cfg := Default()

	if path == "" {
		slog.Debug("no config file found, using defaults")
		return cfg.finalize(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.path = path
			return cfg.finalize(), nil
		}
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	cfg.path = path

	return cfg.finalize(), nil
}

// finalize applies environment overrides and value floors. Runs on every
// Load return path so env-only deployments (no YAML file at all) still get
// their FWCHECK_* settings.
func (c *Config) finalize() *Config {
	c.applyEnv()
	if c.Settings.CheckInterval <= 0 {
		c.Settings.CheckInterval = defaults.CheckInterval
	}
	return c
}

// discover returns the first existing config file location, or empty.
func discover() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, HomeFileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// applyEnv overrides file values from FWCHECK_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv(envModel); v != "" {
		c.Device.Model = v
	}
	if v := os.Getenv(envHardware); v != "" {
		c.Device.HardwareVersion = v
	}
	if v := os.Getenv(envFirmware); v != "" {
		c.Device.Firmware = v
	}
	if v := os.Getenv(envInterval); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Settings.CheckInterval = d
		} else {
			slog.Warn("ignoring invalid check interval", "value", v)
		}
	}
}

// Path returns the file location backing this configuration.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration back to its file location.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %q: %w", c.path, err)
	}
	return nil
}

// SetFirmware validates and records a newly confirmed firmware version,
// persisting the change.
func (c *Config) SetFirmware(v string) error {
	parsed, err := version.ParseVersion(v)
	if err != nil {
		return fmt.Errorf("invalid firmware version %q: %w", v, err)
	}
	c.Device.Firmware = parsed.String()
	if err := c.Save(); err != nil {
		return err
	}
	slog.Info("updated recorded firmware version", "version", parsed.String(), "path", c.path)
	return nil
}
