package version

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expected      Version
		expectedError error
	}{
		{
			name:  "full firmware version with build",
			input: "v3.5.1.368_25010326",
			expected: Version{
				Major:     3,
				Minor:     5,
				Patch:     1,
				Revision:  368,
				Build:     25010326,
				HasBuild:  true,
				Precision: 4,
			},
		},
		{
			name:  "full firmware version without v prefix",
			input: "3.5.1.368_25010326",
			expected: Version{
				Major:     3,
				Minor:     5,
				Patch:     1,
				Revision:  368,
				Build:     25010326,
				HasBuild:  true,
				Precision: 4,
			},
		},
		{
			name:  "uppercase V prefix",
			input: "V3.4.0.293_24010832",
			expected: Version{
				Major:     3,
				Minor:     4,
				Patch:     0,
				Revision:  293,
				Build:     24010832,
				HasBuild:  true,
				Precision: 4,
			},
		},
		{
			name:  "four components without build",
			input: "v3.5.1.368",
			expected: Version{
				Major:     3,
				Minor:     5,
				Patch:     1,
				Revision:  368,
				Precision: 4,
			},
		},
		{
			name:  "three components",
			input: "v3.5.1",
			expected: Version{
				Major:     3,
				Minor:     5,
				Patch:     1,
				Precision: 3,
			},
		},
		{
			name:  "major only",
			input: "3",
			expected: Version{
				Major:     3,
				Precision: 1,
			},
		},
		{
			name:  "short version with build",
			input: "v3.5_25010326",
			expected: Version{
				Major:     3,
				Minor:     5,
				Build:     25010326,
				HasBuild:  true,
				Precision: 2,
			},
		},
		{
			name:  "zero build suffix",
			input: "v3.5.1.368_0",
			expected: Version{
				Major:     3,
				Minor:     5,
				Patch:     1,
				Revision:  368,
				Build:     0,
				HasBuild:  true,
				Precision: 4,
			},
		},
		{
			name:          "empty string",
			input:         "",
			expectedError: ErrEmptyVersion,
		},
		{
			name:          "too many components",
			input:         "1.2.3.4.5",
			expectedError: ErrTooManyComponents,
		},
		{
			name:          "non-numeric component",
			input:         "v3.5.a.368",
			expectedError: ErrNonNumeric,
		},
		{
			name:          "not a version at all",
			input:         "not-a-version",
			expectedError: ErrNonNumeric,
		},
		{
			name:          "wrong separator",
			input:         "3,5,1,368",
			expectedError: ErrNonNumeric,
		},
		{
			name:          "empty component",
			input:         "3..5",
			expectedError: ErrNonNumeric,
		},
		{
			name:          "trailing dot",
			input:         "3.5.",
			expectedError: ErrNonNumeric,
		},
		{
			name:          "non-numeric build suffix",
			input:         "v3.5.1.368_beta",
			expectedError: ErrMalformedBuild,
		},
		{
			name:          "empty build suffix",
			input:         "v3.5.1.368_",
			expectedError: ErrMalformedBuild,
		},
		{
			name:          "negative component",
			input:         "3.-5.1",
			expectedError: ErrNonNumeric,
		},
		{
			name:          "bare v",
			input:         "v",
			expectedError: ErrNonNumeric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.expectedError != nil {
				if err == nil {
					t.Fatalf("ParseVersion(%q) = %+v, want error %v", tt.input, got, tt.expectedError)
				}
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("ParseVersion(%q) error = %v, want %v", tt.input, err, tt.expectedError)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseVersion(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{
			name:     "identical full versions",
			a:        "v3.5.1.368_25010326",
			b:        "v3.5.1.368_25010326",
			expected: 0,
		},
		{
			// The regression the original author guarded against: the
			// build suffix must not be swallowed into revision parsing.
			name:     "build suffix decides",
			a:        "v3.5.1.368_25010324",
			b:        "v3.5.1.368_25010326",
			expected: -1,
		},
		{
			name:     "build suffix decides reversed",
			a:        "v3.5.1.368_25010326",
			b:        "v3.5.1.368_25010324",
			expected: 1,
		},
		{
			name:     "absent build loses to present build",
			a:        "v3.5.1.368",
			b:        "v3.5.1.368_25010326",
			expected: -1,
		},
		{
			name:     "absent build equals explicit zero build",
			a:        "v3.5.1.368",
			b:        "v3.5.1.368_0",
			expected: 0,
		},
		{
			name:     "major difference wins over build",
			a:        "v3.4.0.293_24010832",
			b:        "v3.5.1.368_25010326",
			expected: -1,
		},
		{
			name:     "newer current than listed latest",
			a:        "v3.6.0.400_26010101",
			b:        "v3.5.1.368_25010326",
			expected: 1,
		},
		{
			name:     "padding shorter sequence",
			a:        "v3.5.1",
			b:        "v3.5.1.0",
			expected: 0,
		},
		{
			name:     "padding does not mask revision",
			a:        "v3.5.1",
			b:        "v3.5.1.368",
			expected: -1,
		},
		{
			name:     "revision beats build of older revision",
			a:        "v3.5.1.369",
			b:        "v3.5.1.368_25010326",
			expected: 1,
		},
		{
			name:     "minor difference",
			a:        "v3.5",
			b:        "v3.4.9.999_99999999",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			av := MustParseVersion(tt.a)
			bv := MustParseVersion(tt.b)

			if got := av.Compare(bv); got != tt.expected {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}

			// Antisymmetry: reversing operands must negate the result.
			if got := bv.Compare(av); got != -tt.expected {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.b, tt.a, got, -tt.expected)
			}
		})
	}
}

func TestCompareReflexive(t *testing.T) {
	inputs := []string{
		"v3.5.1.368_25010326",
		"v3.5.1.368",
		"v3.5.1",
		"3",
		"v0.0.0.0_0",
	}
	for _, in := range inputs {
		v := MustParseVersion(in)
		if got := v.Compare(v); got != 0 {
			t.Errorf("Compare(%q, %q) = %d, want 0", in, in, got)
		}
	}
}

func TestCompareTransitive(t *testing.T) {
	// Chain with increasing build numbers (and a final revision bump).
	chain := []string{
		"v3.5.1.368_25010324",
		"v3.5.1.368_25010326",
		"v3.5.1.368_25020101",
		"v3.5.1.369_25020102",
	}
	for i := 0; i < len(chain); i++ {
		for j := i + 1; j < len(chain); j++ {
			a := MustParseVersion(chain[i])
			b := MustParseVersion(chain[j])
			if got := a.Compare(b); got != -1 {
				t.Errorf("Compare(%q, %q) = %d, want -1", chain[i], chain[j], got)
			}
		}
	}
}

func TestCompareStrings(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected Result
		wantErr  bool
	}{
		{
			name:     "greater",
			a:        "v3.5.1.368_25010326",
			b:        "v3.5.1.368_25010324",
			expected: Greater,
		},
		{
			name:     "less",
			a:        "v3.5.1.368_25010324",
			b:        "v3.5.1.368_25010326",
			expected: Less,
		},
		{
			name:     "equal with padding",
			a:        "v3.5.1",
			b:        "v3.5.1.0",
			expected: Equal,
		},
		{
			name:    "malformed first operand",
			a:       "not-a-version",
			b:       "v3.5.1.368",
			wantErr: true,
		},
		{
			name:    "malformed second operand",
			a:       "v3.5.1.368",
			b:       "3,5",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompareStrings(tt.a, tt.b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CompareStrings(%q, %q) error = %v, wantErr %v", tt.a, tt.b, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("CompareStrings(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestVersionString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"v3.5.1.368_25010326", "v3.5.1.368_25010326"},
		{"3.5.1.368_25010326", "v3.5.1.368_25010326"},
		{"v3.5.1.368", "v3.5.1.368"},
		{"v3.5.1", "v3.5.1"},
		{"3", "v3"},
		{"v3.5.1.368_0", "v3.5.1.368_0"},
	}
	for _, tt := range tests {
		v := MustParseVersion(tt.input)
		if got := v.String(); got != tt.expected {
			t.Errorf("String() of %q = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestResultString(t *testing.T) {
	if Less.String() != "less" || Equal.String() != "equal" || Greater.String() != "greater" {
		t.Errorf("unexpected Result names: %q %q %q", Less, Equal, Greater)
	}
}

func TestIsNewerEquals(t *testing.T) {
	older := MustParseVersion("v3.5.1.368_25010324")
	newer := MustParseVersion("v3.5.1.368_25010326")

	if !newer.IsNewer(older) {
		t.Error("expected newer.IsNewer(older) to be true")
	}
	if older.IsNewer(newer) {
		t.Error("expected older.IsNewer(newer) to be false")
	}
	if !older.Equals(older) {
		t.Error("expected older.Equals(older) to be true")
	}
	if older.Equals(newer) {
		t.Error("expected older.Equals(newer) to be false")
	}
}

func TestNewVersionExplicitZeroBuild(t *testing.T) {
	v := NewVersion(3, 5, 1, 368, 0)
	if !v.HasBuild || v.Build != 0 {
		t.Errorf("NewVersion(..., 0) = HasBuild %v Build %d, want explicit _0 build", v.HasBuild, v.Build)
	}
	if got, want := v.String(), "v3.5.1.368_0"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	parsed := MustParseVersion("v3.5.1.368_0")
	if !v.Equals(parsed) || v != parsed {
		t.Errorf("NewVersion(..., 0) = %+v, want same as parsed %+v", v, parsed)
	}

	bare := NewVersionWithoutBuild(3, 5, 1, 368)
	if bare.HasBuild {
		t.Error("NewVersionWithoutBuild should not set a build suffix")
	}
	if got, want := bare.String(), "v3.5.1.368"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	// Absent build orders the same as build 0.
	if bare.Compare(v) != 0 {
		t.Error("expected buildless version to compare equal to explicit _0 build")
	}
}

func TestMustParseVersionPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParseVersion did not panic on malformed input")
		}
	}()
	MustParseVersion("not-a-version")
}
