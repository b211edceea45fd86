// Package textutil holds small string helpers shared by logging and error paths.
package textutil

import "unicode/utf8"

// Truncate shortens s to at most max bytes plus an ellipsis, never splitting a rune.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
