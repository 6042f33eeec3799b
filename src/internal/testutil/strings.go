// Package testutil holds small helpers shared by tests
package testutil

import "strings"

// ContainsSubstring reports whether substr occurs in s.
func ContainsSubstring(s, substr string) bool {
	return strings.Contains(s, substr)
}
