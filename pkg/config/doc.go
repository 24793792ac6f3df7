// Package config loads and persists the fwcheck configuration: the device
// record (model, hardware revision, last confirmed firmware) and behavioral
// settings. Configuration lives in a YAML file (./fwcheck.yaml or
// ~/.fwcheck.yaml) with FWCHECK_* environment variable overrides.
package config
