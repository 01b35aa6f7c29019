package formatter

import (
	"strings"
	"testing"

	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/models"
)

func sampleTweet() models.Tweet {
	return models.Tweet{
		ID:            "1001",
		Text:          "announcement text",
		ScreenName:    "BinanceWallet",
		URL:           "https://x.com/BinanceWallet/status/1001",
		FavoriteCount: 420,
		RetweetCount:  69,
	}
}

func TestFormat_FullRecord(t *testing.T) {
	info := &models.AirdropInfo{
		Token:            &models.TokenInfo{Name: "Hyperlane", Symbol: "HYPER"},
		TradingTime:      "June 1, 2025 at 18:00 (WIB)",
		Amount:           &models.AirdropAmount{Amount: 1000000, Symbol: "HYPER"},
		ClaimWindowHours: 24,
		PointsDeducted:   15,
		Phases: []models.Phase{
			{Phase: 1, Duration: "24 hours", MinPoints: 200, Kind: models.PhaseGuaranteed},
			{Phase: 2, Duration: "24 hours", MinPoints: 100, Kind: models.PhaseFCFS, PointReduction: 5},
		},
	}

	msg := Format(sampleTweet(), info, info.Token)

	wantLines := []string{
		"🚨 *BINANCE ALPHA AIRDROP ALERT* 🚨",
		"*Hyperlane (HYPER)*",
		"⏰ *Trading Opens:* June 1, 2025 at 18:00 (WIB)",
		"🎁 *Airdrop:* 1000000 HYPER",
		"⏳ *Claim Window:* within 24 hours once trading begins",
		"💎 *Points Required:* 15 Alpha Points",
		"🌟 *Airdrop Phases:*",
		"🔸 *Phase 1* (24 hours)",
		"• Min Points: 200",
		"• Type: guaranteed",
		"🔸 *Phase 2* (24 hours)",
		"• Min Points: 100",
		"• Type: first-come-first-served",
		"• Auto reduction: -5 points/hour",
	}
	for _, line := range wantLines {
		if !strings.Contains(msg.Text, line) {
			t.Errorf("Message missing line %q\nGot:\n%s", line, msg.Text)
		}
	}

	if msg.URL != "https://x.com/BinanceWallet/status/1001" {
		t.Errorf("URL = %q", msg.URL)
	}
	if msg.Stats.Likes != 420 || msg.Stats.Retweets != 69 {
		t.Errorf("Stats = %+v, want {420 69}", msg.Stats)
	}
}

func TestFormat_PhaseWindowsRendered(t *testing.T) {
	// TradingTime already in target zone; phase 1 gets a start-end range,
	// the FCFS phase 2 shows only the start.
	info := &models.AirdropInfo{
		TradingTime: "2025-06-01 at 10:00 (WIB)",
		Phases: []models.Phase{
			{Phase: 1, Duration: "12 hours", MinPoints: 200, Kind: models.PhaseGuaranteed},
			{Phase: 2, Duration: "6 hours", MinPoints: 100, Kind: models.PhaseFCFS},
		},
	}

	msg := Format(sampleTweet(), info, nil)

	if !strings.Contains(msg.Text, "• Time: 10:00 - 22:00 (WIB)") {
		t.Errorf("Missing guaranteed phase window range in:\n%s", msg.Text)
	}
	if !strings.Contains(msg.Text, "• Time: 22:00 (WIB)") {
		t.Errorf("Missing FCFS phase start time in:\n%s", msg.Text)
	}
}

func TestFormat_MissingTokenFallsBack(t *testing.T) {
	msg := Format(sampleTweet(), &models.AirdropInfo{}, nil)

	if !strings.Contains(msg.Text, "*Alpha Token*") {
		t.Errorf("Expected generic token header in:\n%s", msg.Text)
	}
	if !strings.HasPrefix(msg.Text, "🚨 *BINANCE ALPHA AIRDROP ALERT* 🚨") {
		t.Errorf("Unexpected header:\n%s", msg.Text)
	}
}

func TestFormat_SectionsOmittedWhenAbsent(t *testing.T) {
	info := &models.AirdropInfo{
		Token:       &models.TokenInfo{Name: "Sign Protocol", Symbol: "SIGN"},
		TradingTime: "April 28 at 17:00 (WIB)",
	}

	msg := Format(sampleTweet(), info, info.Token)

	for _, absent := range []string{"🎁", "⏳", "💎", "🌟"} {
		if strings.Contains(msg.Text, absent) {
			t.Errorf("Section %q should be omitted in:\n%s", absent, msg.Text)
		}
	}
	if !strings.Contains(msg.Text, "⏰ *Trading Opens:* April 28 at 17:00 (WIB)") {
		t.Errorf("Trading time section missing in:\n%s", msg.Text)
	}
}
