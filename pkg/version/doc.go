// Package version provides parsing and comparison for Reolink firmware
// version identifiers.
//
// # Overview
//
// Reolink firmware versions look like "v3.5.1.368_25010326": up to four
// dotted numeric components (major.minor.patch.revision) followed by an
// optional "_NNNNNNNN" build suffix. The suffix is a date-coded build
// counter (year-month-day-sequence) that distinguishes firmware builds
// sharing the same dotted version, so it must be compared numerically as
// its own component. General semantic-versioning rules do not apply here;
// this is deliberately not a semver package.
//
// # Comparison rules
//
//   - Dotted components compare lexicographically, first difference wins.
//   - Shorter dotted sequences are zero-padded: "v3.5.1" == "v3.5.1.0".
//   - When all dotted components match, build counters decide. An absent
//     build counts as 0, so "v3.5.1.368" < "v3.5.1.368_25010326" but a
//     build-less version is never considered newer by virtue of having
//     no suffix.
//
// # Usage
//
// Parse and compare:
//
//	current, err := version.ParseVersion("v3.5.1.368_25010324")
//	if err != nil {
//	    // Handle error
//	}
//	latest := version.MustParseVersion("v3.5.1.368_25010326")
//	if latest.IsNewer(current) {
//	    // Update available
//	}
//
// Or compare raw strings directly:
//
//	res, err := version.CompareStrings(latest, current)
//	updateAvailable := err == nil && res == version.Greater
//
// All functions are pure; a Version is constructed per call, immutable,
// and safe for concurrent use.
package version
