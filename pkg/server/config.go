package server

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/reolink-tools/fwcheck/pkg/defaults"
)

// Config holds daemon configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Periodic check configuration
	CheckInterval  time.Duration
	CheckOnStartup bool

	// Timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// NewConfig returns a new Config with sensible defaults, honoring PORT and
// SHUTDOWN_TIMEOUT_SECONDS environment overrides.
func NewConfig() *Config {
	cfg := &Config{
		Name:            "fwcheckd",
		Version:         "undefined",
		Address:         "",
		Port:            8080,
		RateLimit:       10, // 10 req/s is plenty for a single-device checker
		RateLimitBurst:  20,
		CheckInterval:   defaults.CheckInterval,
		CheckOnStartup:  true,
		ReadTimeout:     defaults.ServerReadTimeout,
		WriteTimeout:    defaults.ServerWriteTimeout,
		IdleTimeout:     defaults.ServerIdleTimeout,
		ShutdownTimeout: defaults.ServerShutdownTimeout,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil {
			cfg.Port = port
		}
	}

	// Allow customization of shutdown timeout to match service manager grace period
	if shutdownStr := os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"); shutdownStr != "" {
		var seconds int
		if _, err := fmt.Sscanf(shutdownStr, "%d", &seconds); err == nil && seconds > 0 {
			cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
		}
	}

	return cfg
}
