package persist

import (
	difflib "github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff turning before into after, or "" when they
// are equal.
func Diff(fromName, toName string, before, after []byte) string {
	if string(before) == string(after) {
		return ""
	}
	u := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: fromName,
		ToFile:   toName,
		Context:  1,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return ""
	}
	return s
}
