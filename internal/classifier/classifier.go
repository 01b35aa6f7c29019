// Package classifier decides whether a tweet body is a Binance Alpha
// airdrop announcement. Pure text containment heuristics: checks are
// case-insensitive substrings, not word-boundary-aware, so a qualifying
// fragment inside a longer word still matches. Accepted risk.
package classifier

import (
	"regexp"
	"strings"
)

var nowLiveRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b([^(\n]+)?\s*\([A-Z]{2,10}\)\s+is\s+now\s+live\s+on\s+binance\s+alpha\b`),
	regexp.MustCompile(`(?i)\b([A-Z]{2,10})\s+is\s+now\s+live\s+on\s+binance\s+alpha\b`),
}

// IsAirdropAnnouncement reports whether the tweet announces an Alpha
// trading open with an attached airdrop. Announcements come in two
// phrasings: a forward-looking feature notice with a scheduled time, or a
// "now live" notice. Both must still carry the airdrop and points markers
// to avoid false positives on unrelated trading-open tweets.
func IsAirdropAnnouncement(tweetText string) bool {
	text := strings.ToLower(tweetText)

	hasAlphaFeature := strings.Contains(text, "binance alpha is the first platform to feature") ||
		strings.Contains(text, "binance alpha will be the first platform to feature")

	hasNowLive := false
	for _, re := range nowLiveRegexes {
		if re.MatchString(tweetText) {
			hasNowLive = true
			break
		}
	}

	hasTradingOpening := (strings.Contains(text, "trading opening on") || strings.Contains(text, "trade opens on")) &&
		(strings.Contains(text, "at ") || strings.Contains(text, "utc"))

	hasAirdrop := strings.Contains(text, "airdrop") && strings.Contains(text, "tokens") &&
		strings.Contains(text, "binance alpha points")

	return ((hasAlphaFeature && hasTradingOpening) || hasNowLive) && hasAirdrop
}
