// Package api provides the daemon entrypoint for fwcheckd.
//
// This package acts as a thin wrapper around the reusable pkg/server package,
// loading the device configuration and wiring the firmware checker into the
// HTTP server. The daemon keeps the latest check result warm with a periodic
// background check and serves it over REST.
//
// # Endpoints
//
// Application endpoints (with rate limiting):
//   - GET /v1/check - Latest firmware check result (?refresh=true forces a new check)
//
// System endpoints (no rate limiting):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// # Configuration
//
// Device identity comes from fwcheck.yaml (or ~/.fwcheck.yaml) with FWCHECK_*
// environment overrides. The server itself is configured via:
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown grace period
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/reolink-tools/fwcheck/pkg/api.version=1.0.0'"
package api
