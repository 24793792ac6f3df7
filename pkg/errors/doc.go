// Package errors provides structured error types shared across fwcheck
// components.
//
// StructuredError pairs a stable ErrorCode with a human-readable message and
// an optional wrapped cause, so callers can branch on the code (and the HTTP
// layer can map it to a status) while logs keep the full chain. Use the
// standard library errors.Is/errors.As against the Cause as usual.
package errors
