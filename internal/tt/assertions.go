package tt

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// RequireTextEqual fails the test with a unified diff when the two texts
// differ. Use it for multi-line comparisons like rendered prompts, where
// testify's one-line mismatch output is unreadable.
func RequireTextEqual(t *testing.T, expected, actual string) {
	t.Helper()

	if expected == actual {
		return
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		t.Fatalf("failed to diff texts: %v", err)
	}
	t.Fatalf("text mismatch:\n%s", diff)
}
