package models

import (
	"errors"
	"time"
)

// ErrEntryExists is returned when attempting to append a ledger entry whose
// tweet ID has already been recorded.
var ErrEntryExists = errors.New("ledger entry already exists")

// Tweet represents a single post as returned by the fetch client.
// It is immutable once fetched; the poller owns it for one cycle only.
type Tweet struct {
	ID            string `validate:"required"`
	Text          string `validate:"required"`
	CreatedAt     time.Time
	ScreenName    string
	FavoriteCount int    `validate:"gte=0"`
	RetweetCount  int    `validate:"gte=0"`
	URL           string `validate:"omitempty,url"`
}
