// Package server implements the fwcheckd HTTP daemon: a small API that
// serves the most recent firmware check result, refreshed by a periodic
// background check. Endpoints: / (service index), /v1/check, /health,
// /ready, and /metrics for Prometheus scraping.
package server
