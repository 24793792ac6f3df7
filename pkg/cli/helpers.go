package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/reolink-tools/fwcheck/pkg/config"
	"github.com/reolink-tools/fwcheck/pkg/serializer"
)

// parseOutputFormat reads and validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported values: %s)",
			f, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return f, nil
}

// loadConfig loads configuration honoring the --config flag and the
// per-device flag overrides shared by check and manual.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if v := cmd.String("model"); v != "" {
		cfg.Device.Model = v
	}
	if v := cmd.String("hardware"); v != "" {
		cfg.Device.HardwareVersion = v
	}
	if v := cmd.String("firmware"); v != "" {
		cfg.Device.Firmware = v
	}

	return cfg, nil
}

// closeWriter closes a serializer writer, logging rather than failing on
// close errors since the payload has already been written.
func closeWriter(w *serializer.Writer) {
	if err := w.Close(); err != nil {
		slog.Warn("failed to close output writer", "error", err.Error())
	}
}
