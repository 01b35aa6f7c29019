package util

import (
	"regexp"
	"strconv"
	"strings"
)

func SafeAtoi(s string) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return i
}

var nonNumericRegex = regexp.MustCompile(`[^\d]`)

// CleanNumericString strips everything but digits, e.g. "1,000,000" -> "1000000".
func CleanNumericString(s string) string {
	return nonNumericRegex.ReplaceAllString(s, "")
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// PreviewText flattens newlines and truncates to n runes for log lines.
func PreviewText(s string, n int) string {
	flat := whitespaceRegex.ReplaceAllString(s, " ")
	runes := []rune(flat)
	if len(runes) <= n {
		return flat
	}
	return string(runes[:n]) + "..."
}
