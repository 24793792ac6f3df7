// Package cli implements the command-line interface for the fwcheck tool.
//
// # Overview
//
// fwcheck checks the Reolink download center for firmware newer than the
// version recorded for a device. Versions are compared numerically component
// by component, with the _BUILD suffix ordered as its own numeric component.
//
// # Commands
//
// check - Automatic check against the vendor API:
//
//	fwcheck check [--fail-on-update] [--format yaml|json|table]
//
// Queries the vendor API for the latest published firmware and compares it
// against the recorded version. With --fail-on-update, exits with code 1
// when an update is available, which makes the command usable from cron or
// shell scripts.
//
// manual - Manual flow for when the API listing lags the website:
//
//	fwcheck manual [--save] [--no-browser]
//
// Prints (and optionally opens) the download center URL, reads the version
// shown on the page from stdin, and compares it. With --save, a confirmed
// newer version is persisted.
//
// config - Inspect and update the persisted device record:
//
//	fwcheck config show
//	fwcheck config set-firmware v3.5.1.368_25010326
//	fwcheck config init
//
// # Configuration
//
// Device identity is read from fwcheck.yaml in the working directory or
// ~/.fwcheck.yaml, overridable per run with FWCHECK_* environment variables
// or the --model/--hardware/--firmware flags.
//
// # Exit Codes
//
//	0  Success (no update, or update found without --fail-on-update)
//	1  Update available (--fail-on-update), or any error
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/reolink-tools/fwcheck/pkg/cli.version=1.0.0'"
package cli
