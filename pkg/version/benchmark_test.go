package version

import (
	"testing"
)

func BenchmarkParseVersion(b *testing.B) {
	tests := []string{
		"3",
		"v3.5",
		"v3.5.1",
		"3.5.1.368",
		"v3.5.1.368_25010326",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		input := tests[i%len(tests)]
		_, _ = ParseVersion(input)
	}
}

func BenchmarkParseVersionWithBuild(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ParseVersion("v3.5.1.368_25010326")
	}
}

func BenchmarkVersionString(b *testing.B) {
	v := NewVersion(3, 5, 1, 368, 25010326)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = v.String()
	}
}

func BenchmarkCompare(b *testing.B) {
	v1, _ := ParseVersion("v3.5.1.368_25010324")
	v2, _ := ParseVersion("v3.5.1.368_25010326")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = v1.Compare(v2)
	}
}

func BenchmarkCompareStrings(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = CompareStrings("v3.5.1.368_25010324", "v3.5.1.368_25010326")
	}
}

func BenchmarkMustParseVersion(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = MustParseVersion("v3.5.1.368_25010326")
	}
}
