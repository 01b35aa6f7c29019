// Package timeutil converts announcement clock times between UTC and the
// target timezone and computes phase claim windows. Announcement times
// arrive as free-text fragments ("08:00 (UTC)"), not parseable timestamps,
// so all arithmetic here is modular string math on HH:MM.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/models"
)

// Zone is the target timezone announcements are normalized into.
type Zone struct {
	OffsetHours int
	Label       string
}

// DefaultZone is western Indonesian time, the monitor's primary audience.
var DefaultZone = Zone{OffsetHours: 7, Label: "WIB"}

var (
	utcClockRegex      = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*\(UTC\)`)
	timeAndZoneRegex   = regexp.MustCompile(`(?i)at\s+(\d{1,2}:\d{2})\s*\(([^)]+)\)`)
	durationHoursRegex = regexp.MustCompile(`(?i)(\d+)\s*hours?`)
)

// ConvertClock normalizes a clock fragment into the target zone. A
// "(UTC)"-marked HH:MM is shifted by the zone offset (wrapping modulo 24)
// and relabeled; minutes pass through unchanged. Anything else is assumed
// to already be zone-local and only gains the label. Idempotent: applying
// it to its own output is a no-op.
func (z Zone) ConvertClock(s string) string {
	m := utcClockRegex.FindStringSubmatch(s)
	if m != nil {
		hours, _ := strconv.Atoi(m[1])
		shifted := ((hours+z.OffsetHours)%24 + 24) % 24
		return fmt.Sprintf("%02d:%s (%s)", shifted, m[2], z.Label)
	}
	if strings.Contains(s, z.Label) {
		return s
	}
	return s + " (" + z.Label + ")"
}

// AddHours adds a (possibly negative) whole-hour delta to an HH:MM clock,
// wrapping modulo 24 hours.
func AddHours(baseTime string, hours int) string {
	parts := strings.SplitN(baseTime, ":", 2)
	if len(parts) != 2 {
		return baseTime
	}
	hh, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	mm, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return baseTime
	}
	total := (hh*60 + mm + hours*60) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ParseTimeAndZone pulls "HH:MM" and the zone label out of a normalized
// trading-time string like "2025-06-01 at 15:00 (WIB)".
func ParseTimeAndZone(tradingTime string) (clock, zone string, ok bool) {
	m := timeAndZoneRegex.FindStringSubmatch(tradingTime)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// ParseDurationHours reads an hour count out of a duration label like
// "48 hours". Returns ok=false for non-numeric labels ("Until distributed").
func ParseDurationHours(duration string) (int, bool) {
	m := durationHoursRegex.FindStringSubmatch(duration)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// PhaseWindows computes clock ranges per phase index from the normalized
// trading-open time and the phase durations.
//
// Phase 1 starts at the trading-open clock. Its end uses the phase's own
// numeric duration; a single phase with a non-numeric duration falls back
// to the claim window, and failing that the window is start-only. Phase 2
// starts at phase 1's end (only computable when phase 1's duration is
// numeric) and ends after its own duration, else at trading-open plus the
// claim window; with neither, phase 2 gets no window at all.
func PhaseWindows(info *models.AirdropInfo) map[int]models.PhaseWindow {
	windows := make(map[int]models.PhaseWindow)
	if info == nil || info.TradingTime == "" || len(info.Phases) == 0 {
		return windows
	}
	start, zone, ok := ParseTimeAndZone(info.TradingTime)
	if !ok {
		return windows
	}

	var phase1, phase2 *models.Phase
	for i := range info.Phases {
		switch info.Phases[i].Phase {
		case 1:
			phase1 = &info.Phases[i]
		case 2:
			phase2 = &info.Phases[i]
		}
	}
	if phase1 == nil {
		return windows
	}

	phase1Hours, phase1Numeric := ParseDurationHours(phase1.Duration)
	switch {
	case phase1Numeric:
		windows[1] = models.PhaseWindow{Start: start, End: AddHours(start, phase1Hours), Zone: zone}
	case phase2 == nil && info.ClaimWindowHours > 0:
		windows[1] = models.PhaseWindow{Start: start, End: AddHours(start, info.ClaimWindowHours), Zone: zone}
	default:
		windows[1] = models.PhaseWindow{Start: start, Zone: zone}
	}

	if phase2 != nil && phase1Numeric {
		start2 := AddHours(start, phase1Hours)
		if phase2Hours, ok := ParseDurationHours(phase2.Duration); ok {
			windows[2] = models.PhaseWindow{Start: start2, End: AddHours(start2, phase2Hours), Zone: zone}
		} else if info.ClaimWindowHours > 0 {
			windows[2] = models.PhaseWindow{Start: start2, End: AddHours(start, info.ClaimWindowHours), Zone: zone}
		}
	}

	return windows
}
