// Package formatter renders extracted airdrop records into Telegram
// Markdown messages. Pure functions: no side effects, no ledger access.
package formatter

import (
	"fmt"
	"strings"

	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/models"
	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/timeutil"
)

// Stats carries the engagement counters shown on the inline button.
type Stats struct {
	Likes    int
	Retweets int
}

// Message is a ready-to-send notification payload.
type Message struct {
	Text  string
	URL   string
	Stats Stats
}

// Format renders the fixed-section alert message. Sections are omitted
// individually when their field is absent; one missing field never blocks
// the rest of the message.
func Format(tweet models.Tweet, info *models.AirdropInfo, token *models.TokenInfo) Message {
	var b strings.Builder

	tokenDisplay := "*Alpha Token*"
	if token != nil {
		tokenDisplay = fmt.Sprintf("*%s (%s)*", token.Name, token.Symbol)
	}

	b.WriteString("🚨 *BINANCE ALPHA AIRDROP ALERT* 🚨\n\n")
	b.WriteString(tokenDisplay + "\n\n")

	if info.TradingTime != "" {
		fmt.Fprintf(&b, "⏰ *Trading Opens:* %s\n\n", info.TradingTime)
	}
	if info.Amount != nil {
		fmt.Fprintf(&b, "🎁 *Airdrop:* %d %s\n", info.Amount.Amount, info.Amount.Symbol)
	}
	if info.ClaimWindowHours > 0 {
		fmt.Fprintf(&b, "⏳ *Claim Window:* within %d hours once trading begins\n", info.ClaimWindowHours)
	}
	if info.PointsDeducted > 0 {
		fmt.Fprintf(&b, "💎 *Points Required:* %d Alpha Points\n\n", info.PointsDeducted)
	}

	if len(info.Phases) > 0 {
		b.WriteString("🌟 *Airdrop Phases:*\n")
		windows := timeutil.PhaseWindows(info)
		for _, phase := range info.Phases {
			fmt.Fprintf(&b, "\n🔸 *Phase %d* (%s)\n", phase.Phase, phase.Duration)
			if window, ok := windows[phase.Phase]; ok {
				if phase.Kind == models.PhaseFCFS || window.End == "" {
					fmt.Fprintf(&b, "• Time: %s (%s)\n", window.Start, window.Zone)
				} else {
					fmt.Fprintf(&b, "• Time: %s - %s (%s)\n", window.Start, window.End, window.Zone)
				}
			}
			fmt.Fprintf(&b, "• Min Points: %d\n", phase.MinPoints)
			fmt.Fprintf(&b, "• Type: %s\n", phase.Kind)
			if phase.PointReduction > 0 {
				fmt.Fprintf(&b, "• Auto reduction: -%d points/hour\n", phase.PointReduction)
			}
		}
		b.WriteString("\n")
	}

	return Message{
		Text: strings.TrimSpace(b.String()),
		URL:  tweet.URL,
		Stats: Stats{
			Likes:    tweet.FavoriteCount,
			Retweets: tweet.RetweetCount,
		},
	}
}
