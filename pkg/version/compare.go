package version

// Result is the three-way outcome of comparing two versions.
type Result int

const (
	// Less indicates the first version orders before the second.
	Less Result = -1
	// Equal indicates both versions order the same.
	Equal Result = 0
	// Greater indicates the first version orders after the second.
	Greater Result = 1
)

// String returns the lowercase name of the result.
func (r Result) String() string {
	switch r {
	case Less:
		return "less"
	case Greater:
		return "greater"
	default:
		return "equal"
	}
}

// CompareStrings parses both version strings and returns their ordering.
// Malformed input surfaces as a parse error from ParseVersion; it is never
// reported as Equal.
func CompareStrings(a, b string) (Result, error) {
	av, err := ParseVersion(a)
	if err != nil {
		return Equal, err
	}
	bv, err := ParseVersion(b)
	if err != nil {
		return Equal, err
	}
	return Result(av.Compare(bv)), nil
}
