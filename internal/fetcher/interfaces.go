package fetcher

import (
	"context"

	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/models"
)

// Fetcher abstracts the timeline-search client. Implementations own their
// retry and auth policy; the poller treats an empty result as "nothing new
// this cycle", never as an error.
type Fetcher interface {
	FetchRecent(ctx context.Context, handle string, count int) ([]models.Tweet, error)
}
