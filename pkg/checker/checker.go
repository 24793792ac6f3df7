package checker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/reolink-tools/fwcheck/pkg/defaults"
	"github.com/reolink-tools/fwcheck/pkg/device"
	"github.com/reolink-tools/fwcheck/pkg/reolink"
	"github.com/reolink-tools/fwcheck/pkg/version"
)

// FirmwareSource supplies the latest published firmware for catalog IDs.
// *reolink.Client satisfies it; tests substitute fakes.
type FirmwareSource interface {
	LatestFirmware(ctx context.Context, productID, hardwareID int) (*reolink.Firmware, error)
}

// Result is the outcome of a single firmware check.
type Result struct {
	ID              string    `json:"id" yaml:"id"`
	Model           string    `json:"model" yaml:"model"`
	HardwareVersion string    `json:"hardware_version" yaml:"hardware_version"`
	Current         string    `json:"current" yaml:"current"`
	Latest          string    `json:"latest" yaml:"latest"`
	DownloadURL     string    `json:"download_url,omitempty" yaml:"download_url,omitempty"`
	UpdateAvailable bool      `json:"update_available" yaml:"update_available"`
	Message         string    `json:"message" yaml:"message"`
	CheckedAt       time.Time `json:"checked_at" yaml:"checked_at"`
}

// Option configures the Checker.
type Option func(*Checker)

// WithSource substitutes the firmware source.
func WithSource(src FirmwareSource) Option {
	return func(c *Checker) {
		c.source = src
	}
}

// WithRateLimit overrides the outbound vendor call spacing.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Checker) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithNow substitutes the clock, used in tests.
func WithNow(now func() time.Time) Option {
	return func(c *Checker) {
		c.now = now
	}
}

// Checker runs the firmware update workflow for a single device: resolve
// catalog IDs, fetch the latest published build, and order it against the
// recorded version. Checks are sequential; the limiter keeps repeated runs
// polite to the vendor endpoint.
type Checker struct {
	source  FirmwareSource
	limiter *rate.Limiter
	now     func() time.Time
}

// New creates a Checker backed by the real vendor client unless overridden.
func New(opts ...Option) *Checker {
	c := &Checker{
		source:  reolink.New(),
		limiter: rate.NewLimiter(rate.Every(defaults.VendorRateLimitInterval), 1),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check runs one firmware check for the given device record.
// Parse and transport failures are returned to the caller; they are never
// folded into a "no update" result.
func (c *Checker) Check(ctx context.Context, dev device.Device) (*Result, error) {
	if err := dev.Validate(); err != nil {
		return nil, err
	}

	// Validate the recorded version before spending a network call on it.
	current, err := version.ParseVersion(dev.Firmware)
	if err != nil {
		checksTotal.WithLabelValues(outcomeError).Inc()
		return nil, fmt.Errorf("recorded firmware version %q: %w", dev.Firmware, err)
	}

	ids, err := device.Lookup(dev.Model, dev.HardwareVersion)
	if err != nil {
		checksTotal.WithLabelValues(outcomeError).Inc()
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		checksTotal.WithLabelValues(outcomeError).Inc()
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	fw, err := c.source.LatestFirmware(ctx, ids.ProductID, ids.HardwareID)
	if err != nil {
		checksTotal.WithLabelValues(outcomeError).Inc()
		vendorErrorsTotal.Inc()
		return nil, err
	}

	latest, err := version.ParseVersion(fw.Version)
	if err != nil {
		checksTotal.WithLabelValues(outcomeError).Inc()
		return nil, fmt.Errorf("vendor firmware version %q: %w", fw.Version, err)
	}

	res := &Result{
		ID:              uuid.New().String(),
		Model:           dev.Model,
		HardwareVersion: dev.HardwareVersion,
		Current:         current.String(),
		Latest:          latest.String(),
		DownloadURL:     fw.URL,
		CheckedAt:       c.now().UTC(),
	}

	switch cmp := latest.Compare(current); {
	case cmp > 0:
		res.UpdateAvailable = true
		res.Message = fmt.Sprintf("New version available: %s (current: %s)", res.Latest, res.Current)
		checksTotal.WithLabelValues(outcomeUpdate).Inc()
	case cmp == 0:
		res.Message = fmt.Sprintf("You have the latest version: %s", res.Current)
		checksTotal.WithLabelValues(outcomeCurrent).Inc()
	default:
		res.Message = fmt.Sprintf("Your version %s is newer than listed %s", res.Current, res.Latest)
		checksTotal.WithLabelValues(outcomeAhead).Inc()
	}

	slog.Info("firmware check completed",
		"checkID", res.ID,
		"device", dev.String(),
		"current", res.Current,
		"latest", res.Latest,
		"updateAvailable", res.UpdateAvailable,
	)

	return res, nil
}

// Decide reports whether latest is an update over current, using the
// firmware ordering rules. It is the pure core of the workflow: update
// available iff compare(latest, current) == Greater.
func Decide(current, latest string) (bool, error) {
	res, err := version.CompareStrings(latest, current)
	if err != nil {
		return false, err
	}
	return res == version.Greater, nil
}
