package models

import "time"

// PhaseKind describes how an airdrop phase allocates claims.
type PhaseKind string

const (
	PhaseGuaranteed PhaseKind = "guaranteed"
	PhaseFCFS       PhaseKind = "first-come-first-served"
)

// TokenInfo is the token identity extracted from an announcement.
// When only a symbol is captured, Name is set equal to Symbol.
type TokenInfo struct {
	Name   string `json:"name" firestore:"name"`
	Symbol string `json:"symbol" firestore:"symbol"`
}

// AirdropAmount is the advertised reward, thousands separators stripped.
type AirdropAmount struct {
	Amount int    `json:"amount" firestore:"amount" validate:"gte=0"`
	Symbol string `json:"symbol" firestore:"symbol"`
}

// Phase is one eligibility window of the claim period. PointReduction is
// the hourly threshold decay; zero means none was announced.
type Phase struct {
	Phase          int       `json:"phase" firestore:"phase" validate:"gte=1,lte=2"`
	Duration       string    `json:"duration" firestore:"duration"`
	MinPoints      int       `json:"min_points" firestore:"minPoints"`
	Kind           PhaseKind `json:"type" firestore:"type"`
	PointReduction int       `json:"point_reduction,omitempty" firestore:"pointReduction,omitempty"`
}

// PhaseWindow is a computed clock range for a phase. End is empty for
// open-ended (first-come-first-served) phases.
type PhaseWindow struct {
	Start string
	End   string
	Zone  string
}

// AirdropInfo is the structured result of extracting an announcement.
// Every field is independently optional: extraction is best-effort per
// field, and consumers must handle the absent case explicitly.
type AirdropInfo struct {
	Token            *TokenInfo     `json:"token,omitempty" firestore:"token,omitempty"`
	TradingTime      string         `json:"trading_time,omitempty" firestore:"tradingTime,omitempty"`
	Amount           *AirdropAmount `json:"airdrop_amount,omitempty" firestore:"airdropAmount,omitempty"`
	ClaimWindowHours int            `json:"claim_window_hours,omitempty" firestore:"claimWindowHours,omitempty"`
	PointsDeducted   int            `json:"points_deducted,omitempty" firestore:"pointsDeducted,omitempty"`
	Phases           []Phase        `json:"phases,omitempty" firestore:"phases,omitempty"`
}

// LedgerEntry is one persisted record per processed tweet. Entries are
// created once, appended, and never mutated or deleted.
type LedgerEntry struct {
	ID                string       `json:"id" firestore:"id" validate:"required"`
	Text              string       `json:"text" firestore:"text" validate:"required"`
	CreatedAt         time.Time    `json:"created_at" firestore:"created_at"`
	ScreenName        string       `json:"screen_name" firestore:"screen_name"`
	URL               string       `json:"url" firestore:"url" validate:"omitempty,url"`
	Category          string       `json:"type" firestore:"type" validate:"required"`
	PostedToTelegram  bool         `json:"posted_to_telegram" firestore:"posted_to_telegram"`
	TelegramMessageID int          `json:"telegram_message_id,omitempty" firestore:"telegram_message_id,omitempty"`
	ProcessedAt       time.Time    `json:"processed_at" firestore:"processed_at" validate:"required"`
	TokenInfo         *TokenInfo   `json:"token_info,omitempty" firestore:"token_info,omitempty"`
	AirdropInfo       *AirdropInfo `json:"airdrop_info,omitempty" firestore:"airdrop_info,omitempty"`
}

// CategoryAirdrop is the only entry category the monitor currently records.
const CategoryAirdrop = "airdrop_announcement"
