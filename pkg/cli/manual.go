package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/reolink-tools/fwcheck/pkg/reolink"
	fwversion "github.com/reolink-tools/fwcheck/pkg/version"
)

func manualCmd() *cli.Command {
	return &cli.Command{
		Name:                  "manual",
		EnableShellCompletion: true,
		Usage:                 "Compare against a version read from the download center by hand",
		Description: `Guide a manual firmware check for when the vendor API is unreachable or
its listing lags the website.

The command prints the download center URL (and opens it in a browser
unless disabled), then reads the version shown on the page from stdin
and compares it against the recorded version. With --save, a confirmed
newer version is persisted to the config file.`,
		Flags: []cli.Flag{
			configFlag,
			&cli.StringFlag{
				Name:  "model",
				Usage: "Device model override",
			},
			&cli.StringFlag{
				Name:  "hardware",
				Usage: "Device hardware version override",
			},
			&cli.StringFlag{
				Name:  "firmware",
				Usage: "Currently installed firmware version override",
			},
			&cli.BoolFlag{
				Name:  "no-browser",
				Usage: "Do not open the download center in a browser",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Persist the entered version to the config file when it is newer",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Device.Validate(); err != nil {
				return err
			}

			current, err := fwversion.ParseVersion(cfg.Device.Firmware)
			if err != nil {
				return fmt.Errorf("recorded firmware version %q: %w", cfg.Device.Firmware, err)
			}

			fmt.Printf("Device:  %s\n", cfg.Device.String())
			fmt.Printf("Current: %s\n", current.String())
			fmt.Printf("Check the download center for the latest firmware:\n  %s\n", reolink.DownloadCenterURL)

			if cfg.Settings.AutoOpenBrowser && !cmd.Bool("no-browser") {
				if err := openBrowser(ctx, reolink.DownloadCenterURL); err != nil {
					slog.Warn("failed to open browser", "error", err.Error())
				}
			}

			entered, err := readVersionLine(os.Stdin)
			if err != nil {
				return err
			}
			if entered == "" {
				fmt.Println("No version entered, nothing to compare.")
				return nil
			}

			latest, err := fwversion.ParseVersion(entered)
			if err != nil {
				return fmt.Errorf("entered version %q: %w", entered, err)
			}

			update, outcome := compareOutcome(current, latest)
			fmt.Println(outcome)

			if update && cmd.Bool("save") {
				if err := cfg.SetFirmware(latest.String()); err != nil {
					return err
				}
				fmt.Printf("Recorded firmware version updated to %s in %s\n", latest.String(), cfg.Path())
			}

			return nil
		},
	}
}

// compareOutcome orders the parsed versions directly and phrases the result
// for the terminal.
func compareOutcome(current, latest fwversion.Version) (update bool, outcome string) {
	switch {
	case latest.IsNewer(current):
		return true, fmt.Sprintf("New version available: %s (current: %s)", latest.String(), current.String())
	case latest.Equals(current):
		return false, fmt.Sprintf("You have the latest version: %s", current.String())
	default:
		return false, fmt.Sprintf("Your version %s is newer than listed %s", current.String(), latest.String())
	}
}

// readVersionLine prompts for and reads a single version line from r.
// Empty input means the user declined to enter a version.
func readVersionLine(r io.Reader) (string, error) {
	fmt.Print("Enter the latest version listed (blank to skip): ")
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read version: %w", err)
		}
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}
