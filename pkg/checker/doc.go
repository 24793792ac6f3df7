// Package checker implements the firmware update workflow: it resolves a
// device's catalog identifiers, asks the vendor API for the latest published
// build, and orders it against the locally recorded version. The ordering
// itself lives in pkg/version; this package owns the surrounding decision,
// the check record, and its metrics.
package checker
