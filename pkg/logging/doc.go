// Package logging provides structured logging utilities for fwcheck
// components.
//
// # Overview
//
// This package wraps the standard library slog package with fwcheck-specific
// defaults and conventions for consistent logging across the CLI and the
// daemon. It supports environment-based log level configuration,
// module/version context injection, and automatic source location tracking
// for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("fwcheck", version)
//
//	    slog.Info("checking firmware", "model", "RLN8-410")
//	    slog.Error("vendor api failed", "error", err)
//	}
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("fwcheckd", version, "debug")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug fwcheck check
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// All logs are written to stderr in JSON format so stdout stays reserved for
// serialized command output.
package logging
