package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error types for version parsing failures
var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrTooManyComponents = errors.New("version has more than 4 components")
	ErrNonNumeric        = errors.New("version component is not numeric")
	ErrNegativeComponent = errors.New("version component cannot be negative")
	ErrMalformedBuild    = errors.New("build suffix is not numeric")
)

// maxComponents is the number of dotted components in the Reolink
// firmware scheme (major.minor.patch.revision).
const maxComponents = 4

// Version represents a Reolink firmware version such as "v3.5.1.368_25010326".
// The dotted part carries up to four numeric components; the optional suffix
// after '_' is a date-coded build counter that orders firmware builds sharing
// the same major.minor.patch.revision. The Precision field indicates how many
// dotted components were present in the source string; missing components
// compare as zero.
type Version struct {
	Major    int `json:"major" yaml:"major"`
	Minor    int `json:"minor,omitempty" yaml:"minor,omitempty"`
	Patch    int `json:"patch,omitempty" yaml:"patch,omitempty"`
	Revision int `json:"revision,omitempty" yaml:"revision,omitempty"`

	// Build is the numeric value of the "_NNNNNNNN" suffix, 0 when absent.
	Build int64 `json:"build,omitempty" yaml:"build,omitempty"`

	// HasBuild records whether the source string carried a build suffix.
	// It only affects formatting; comparison treats an absent build as 0.
	HasBuild bool `json:"-" yaml:"-"`

	// Precision indicates how many dotted components are significant (1-4).
	Precision int `json:"precision,omitempty" yaml:"precision,omitempty"`
}

// NewVersion creates a new Version with the specified components and an
// explicit build suffix; build 0 constructs a literal "_0" suffix, matching
// what ParseVersion produces for it. Use NewVersionWithoutBuild for versions
// with no suffix. The precision is set to 4.
func NewVersion(major, minor, patch, revision int, build int64) Version {
	return Version{
		Major:     major,
		Minor:     minor,
		Patch:     patch,
		Revision:  revision,
		Build:     build,
		HasBuild:  true,
		Precision: maxComponents,
	}
}

// NewVersionWithoutBuild creates a new Version with no build suffix.
// The precision is set to 4.
func NewVersionWithoutBuild(major, minor, patch, revision int) Version {
	return Version{
		Major:     major,
		Minor:     minor,
		Patch:     patch,
		Revision:  revision,
		Precision: maxComponents,
	}
}

// String returns the canonical string form: "v" prefix, dotted components up
// to the version's precision, and the build suffix when present.
func (v Version) String() string {
	var sb strings.Builder
	sb.WriteByte('v')
	components := [maxComponents]int{v.Major, v.Minor, v.Patch, v.Revision}
	precision := v.Precision
	if precision < 1 || precision > maxComponents {
		precision = maxComponents
	}
	for i := 0; i < precision; i++ {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(components[i]))
	}
	if v.HasBuild {
		sb.WriteByte('_')
		sb.WriteString(strconv.FormatInt(v.Build, 10))
	}
	return sb.String()
}

// ParseVersion parses a firmware version string into a Version struct.
// Supported formats: "3.5.1.368", "v3.5.1.368_25010326", and shorter dotted
// forms like "v3.5". The "v"/"V" prefix is optional. The build suffix, when
// present, must be a non-negative integer; it is kept as its own component
// and never folded into the preceding numeric run.
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, ErrEmptyVersion
	}

	// Strip 'v' or 'V' prefix if present
	if s[0] == 'v' || s[0] == 'V' {
		s = s[1:]
	}

	var v Version

	// Split off the build suffix before touching the dotted part so a
	// build counter can never be swallowed into the revision component.
	mainPart := s
	if idx := strings.IndexByte(s, '_'); idx >= 0 {
		mainPart = s[:idx]
		buildPart := s[idx+1:]
		build, err := strconv.ParseInt(buildPart, 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrMalformedBuild, buildPart)
		}
		if build < 0 {
			return Version{}, fmt.Errorf("%w: build %d", ErrNegativeComponent, build)
		}
		v.Build = build
		v.HasBuild = true
	}

	parts := strings.Split(mainPart, ".")
	if len(parts) > maxComponents {
		return Version{}, ErrTooManyComponents
	}

	for i, part := range parts {
		if part == "" {
			return Version{}, fmt.Errorf("%w: empty component", ErrNonNumeric)
		}
		num, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		if num < 0 {
			return Version{}, fmt.Errorf("%w: %d", ErrNegativeComponent, num)
		}

		switch i {
		case 0:
			v.Major = num
		case 1:
			v.Minor = num
		case 2:
			v.Patch = num
		case 3:
			v.Revision = num
		}
	}

	v.Precision = len(parts)
	return v, nil
}

// MustParseVersion parses a version string and panics if parsing fails.
// Only use this for hardcoded strings or in tests. For user input or runtime
// data, always use ParseVersion and handle errors explicitly.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseVersion: %v", err))
	}
	return v
}

// Compare returns an integer comparing two versions:
// -1 if v < other, 0 if v == other, 1 if v > other.
// Dotted components are compared first (missing components count as zero,
// so "v3.5.1" equals "v3.5.1.0"); when all four are equal the build
// counters decide, with an absent build treated as 0. A version carrying a
// build therefore beats a build-less twin only when its counter is greater.
func (v Version) Compare(other Version) int {
	a := [maxComponents]int{v.Major, v.Minor, v.Patch, v.Revision}
	b := [maxComponents]int{other.Major, other.Minor, other.Patch, other.Revision}

	for i := 0; i < maxComponents; i++ {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}

	if v.Build < other.Build {
		return -1
	}
	if v.Build > other.Build {
		return 1
	}
	return 0
}

// IsNewer returns true if v is strictly newer than other.
func (v Version) IsNewer(other Version) bool {
	return v.Compare(other) > 0
}

// Equals returns true if v and other order the same, i.e. all dotted
// components and build counters match.
func (v Version) Equals(other Version) bool {
	return v.Compare(other) == 0
}

// IsValid returns true if the version has valid values: non-negative
// components and build, precision between 1 and 4.
func (v Version) IsValid() bool {
	if v.Major < 0 || v.Minor < 0 || v.Patch < 0 || v.Revision < 0 || v.Build < 0 {
		return false
	}
	if v.Precision < 1 || v.Precision > maxComponents {
		return false
	}
	return true
}
