// Package extractor turns free-form announcement text into structured
// airdrop records. Every field has its own pattern and is extracted
// independently: one pattern missing never blocks the others, and a field
// whose pattern does not match is simply absent from the record.
package extractor

import (
	"regexp"
	"strings"

	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/models"
	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/timeutil"
	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/util"
)

// tokenPatterns is the priority order for token identity extraction. The
// first match wins, so order changes silently change output — most
// specific (name plus bracketed symbol) down to a bare uppercase token
// near the word "alpha". Patterns capturing two groups yield name+symbol;
// single-group patterns yield a symbol used for both.
var tokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([^()]+)\s*\(([^)]+)\)\s+is\s+now\s+live`), // "Name (SYMBOL) is now live"
	regexp.MustCompile(`(?i)feature\s+([^(]+)\s*\(([^)]+)\)`),          // "feature Token Name (SYMBOL)"
	regexp.MustCompile(`(?i)feature\s+([A-Z]{2,10})\b`),                // "feature SYMBOL"
	regexp.MustCompile(`(?i)\b([A-Z]{2,10})\s+is\s+now\s+live`),        // "SYMBOL is now live"
	regexp.MustCompile(`(?i)\b([A-Z]{2,10})\s+is\s+now\s+available`),   // "SYMBOL is now available"
	regexp.MustCompile(`(?i)\b([A-Z]{2,10})\s+trading`),                // "SYMBOL trading"
	regexp.MustCompile(`(?i)trading\s+([A-Z]{2,10})`),                  // "trading SYMBOL"
	regexp.MustCompile(`(?i)\(([A-Z]{2,10})\)\s+trading`),              // "(SYMBOL) trading"
	regexp.MustCompile(`(?i)alpha.*?([A-Z]{2,10})`),                    // "alpha ... SYMBOL"
}

var (
	featureTokenRegex = tokenPatterns[1]
	nowLiveTokenRegex = tokenPatterns[0]

	proseTimeRegex = regexp.MustCompile(`(?i)trading opening on (.*?) at (.*?)(?:\.|🌟|Once)`)
	isoTimeRegex   = regexp.MustCompile(`(?i)trade opens on\s+(\d{4}-\d{2}-\d{2})\s+(\d{1,2}:\d{2})\s*\(UTC\)`)

	amountRegex      = regexp.MustCompile(`(?i)airdrop of\s+([\d,]+)\s+([A-Z]+)\s+tokens?`)
	claimWindowRegex = regexp.MustCompile(`(?i)within\s+(\d+)\s+hours?(?:\s+(?:once trading begins|otherwise|;))`)
	pointsCostRegex  = regexp.MustCompile(`(?i)claiming the airdrop will consume\s+(\d+)\s+Binance Alpha [Pp]oints`)

	twoPhaseRegex       = regexp.MustCompile(`(?i)Phase 1[^:]*:\s*Users with at least\s+(\d+)\s+Binance Alpha Points[^.]*\.\s*Phase 2[^:]*:\s*Users with at least\s+(\d+)\s+Binance Alpha Points`)
	phase1DurationRegex = regexp.MustCompile(`(?i)Phase 1\s*\(([^)]+)\)`)
	phase2DurationRegex = regexp.MustCompile(`(?i)Phase 2\s*\(([^)]+)\)`)
	singlePhaseRegex    = regexp.MustCompile(`(?i)users with at least\s+(\d+)\s+Binance Alpha Points can claim an airdrop[^.]*on a first-come, first-served basis`)
	decayRegex          = regexp.MustCompile(`(?i)threshold will automatically decrease by\s+(\d+)\s+points every hour`)
)

// ExtractTokenInfo tries the token patterns in priority order and returns
// the first match, or nil when nothing matches. Callers must treat token
// identity as optional.
func ExtractTokenInfo(tweetText string) *models.TokenInfo {
	for _, pattern := range tokenPatterns {
		m := pattern.FindStringSubmatch(tweetText)
		if m == nil {
			continue
		}
		if len(m) > 2 && m[2] != "" {
			return &models.TokenInfo{
				Name:   strings.TrimSpace(m[1]),
				Symbol: strings.TrimSpace(m[2]),
			}
		}
		symbol := strings.TrimSpace(m[1])
		return &models.TokenInfo{Name: symbol, Symbol: symbol}
	}
	return nil
}

// ExtractAirdropInfo extracts the full announcement record, normalizing
// clock times into zone. Always returns a record; absent fields stay zero.
func ExtractAirdropInfo(tweetText string, zone timeutil.Zone) *models.AirdropInfo {
	info := &models.AirdropInfo{}

	// Token: only the two highest-priority patterns apply here. The looser
	// fallbacks are too noisy for a persisted record.
	tokenMatch := featureTokenRegex.FindStringSubmatch(tweetText)
	if tokenMatch == nil {
		tokenMatch = nowLiveTokenRegex.FindStringSubmatch(tweetText)
	}
	if tokenMatch != nil {
		info.Token = &models.TokenInfo{
			Name:   strings.TrimSpace(tokenMatch[1]),
			Symbol: strings.TrimSpace(tokenMatch[2]),
		}
	}

	info.TradingTime = extractTradingTime(tweetText, zone)

	if m := amountRegex.FindStringSubmatch(tweetText); m != nil {
		info.Amount = &models.AirdropAmount{
			Amount: util.SafeAtoi(util.CleanNumericString(m[1])),
			Symbol: m[2],
		}
	}

	// "within N hours" needs a continuation word to disambiguate it from
	// unrelated hour mentions elsewhere in the tweet.
	if m := claimWindowRegex.FindStringSubmatch(tweetText); m != nil {
		info.ClaimWindowHours = util.SafeAtoi(m[1])
	}

	if m := pointsCostRegex.FindStringSubmatch(tweetText); m != nil {
		info.PointsDeducted = util.SafeAtoi(m[1])
	}

	info.Phases = extractPhases(tweetText)

	return info
}

func extractTradingTime(tweetText string, zone timeutil.Zone) string {
	if m := proseTimeRegex.FindStringSubmatch(tweetText); m != nil {
		datePart := strings.TrimSuffix(strings.TrimSpace(m[1]), ",")
		timePart := zone.ConvertClock(strings.TrimSpace(m[2]))
		return datePart + " at " + timePart
	}
	if m := isoTimeRegex.FindStringSubmatch(tweetText); m != nil {
		datePart := strings.TrimSpace(m[1])
		timePart := zone.ConvertClock(strings.TrimSpace(m[2]) + " (UTC)")
		return datePart + " at " + timePart
	}
	return ""
}

// extractPhases tries the strict two-phase template first; its match
// implies phase 1 is guaranteed and phase 2 first-come-first-served, with
// durations read from the parenthetical labels after each phase marker.
// Otherwise a single-phase FCFS template is tried. The hourly decay rider
// attaches to the last phase in either shape.
func extractPhases(tweetText string) []models.Phase {
	if m := twoPhaseRegex.FindStringSubmatch(tweetText); m != nil {
		phases := []models.Phase{
			{
				Phase:     1,
				Duration:  durationLabel(phase1DurationRegex, tweetText),
				MinPoints: util.SafeAtoi(m[1]),
				Kind:      models.PhaseGuaranteed,
			},
			{
				Phase:     2,
				Duration:  durationLabel(phase2DurationRegex, tweetText),
				MinPoints: util.SafeAtoi(m[2]),
				Kind:      models.PhaseFCFS,
			},
		}
		if d := decayRegex.FindStringSubmatch(tweetText); d != nil {
			phases[1].PointReduction = util.SafeAtoi(d[1])
		}
		return phases
	}

	if m := singlePhaseRegex.FindStringSubmatch(tweetText); m != nil {
		phase := models.Phase{
			Phase:     1,
			Duration:  "Until distributed",
			MinPoints: util.SafeAtoi(m[1]),
			Kind:      models.PhaseFCFS,
		}
		if d := decayRegex.FindStringSubmatch(tweetText); d != nil {
			phase.PointReduction = util.SafeAtoi(d[1])
		}
		return []models.Phase{phase}
	}

	return nil
}

func durationLabel(re *regexp.Regexp, tweetText string) string {
	if m := re.FindStringSubmatch(tweetText); m != nil {
		return m[1]
	}
	return "Not specified"
}
