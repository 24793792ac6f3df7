package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/reolink-tools/fwcheck/pkg/config"
	"github.com/reolink-tools/fwcheck/pkg/serializer"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:                  "config",
		EnableShellCompletion: true,
		Usage:                 "Inspect and update the persisted device record",
		Commands: []*cli.Command{
			configShowCmd(),
			configSetFirmwareCmd(),
			configInitCmd(),
		},
	}
}

func configShowCmd() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the effective configuration",
		Flags: []cli.Flag{
			configFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeWriter(ser)

			return ser.Serialize(ctx, cfg)
		},
	}
}

func configSetFirmwareCmd() *cli.Command {
	return &cli.Command{
		Name:      "set-firmware",
		Usage:     "Record a newly installed firmware version",
		ArgsUsage: "<version>",
		Flags: []cli.Flag{
			configFlag,
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			v := cmd.Args().First()
			if v == "" {
				return fmt.Errorf("missing version argument (e.g., fwcheck config set-firmware v3.5.1.368_25010326)")
			}

			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}

			if err := cfg.SetFirmware(v); err != nil {
				return err
			}

			fmt.Printf("Recorded firmware version %s in %s\n", cfg.Device.Firmware, cfg.Path())
			return nil
		},
	}
}

func configInitCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a default config file to the current directory",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing config file",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if !cmd.Bool("force") {
				if _, err := os.Stat(config.FileName); err == nil {
					return fmt.Errorf("config file %s already exists (use --force to overwrite)", config.FileName)
				}
			}

			cfg := config.Default()
			if err := cfg.Save(); err != nil {
				return err
			}

			fmt.Printf("Wrote default config to %s, edit it to match your device\n", cfg.Path())
			return nil
		},
	}
}
