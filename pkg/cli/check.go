package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/reolink-tools/fwcheck/pkg/checker"
	"github.com/reolink-tools/fwcheck/pkg/defaults"
	"github.com/reolink-tools/fwcheck/pkg/device"
	"github.com/reolink-tools/fwcheck/pkg/serializer"
)

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:                  "check",
		EnableShellCompletion: true,
		Usage:                 "Check the vendor download center for a firmware update",
		Description: fmt.Sprintf(`Query the Reolink download center for the latest published firmware and
compare it against the version recorded for your device.

Versions are compared numerically component by component, with the _BUILD
suffix ordered as its own numeric component, so v3.5.1.368_25010326 is
newer than v3.5.1.368_25010324.

The device identity comes from the config file (or FWCHECK_* environment
variables) and can be overridden per invocation with flags.

Supported models: %s

The result can be output in JSON, YAML, or table format.`, device.SupportedModels()),
		Flags: []cli.Flag{
			configFlag,
			&cli.StringFlag{
				Name:  "model",
				Usage: fmt.Sprintf("Device model (supported values: %s)", device.SupportedModels()),
			},
			&cli.StringFlag{
				Name:  "hardware",
				Usage: "Device hardware version (e.g., N2MB02)",
			},
			&cli.StringFlag{
				Name:  "firmware",
				Usage: "Currently installed firmware version (e.g., v3.5.1.368_25010324)",
			},
			&cli.BoolFlag{
				Name:  "fail-on-update",
				Usage: "Exit with code 1 when a newer firmware version is available",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: defaults.CheckTimeout,
				Usage: "Timeout for the whole check",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			checkCtx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			res, err := checker.New().Check(checkCtx, cfg.Device)
			if err != nil {
				return fmt.Errorf("firmware check failed: %w", err)
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeWriter(ser)

			if err := ser.Serialize(ctx, res); err != nil {
				return err
			}

			if cmd.Bool("fail-on-update") && res.UpdateAvailable {
				return cli.Exit(fmt.Sprintf("update available: %s", res.Latest), 1)
			}

			return nil
		},
	}
}
