// Package poller drives the monitoring cycle: fetch recent tweets, cut at
// the cursor, classify, dedup against the ledger, extract, notify, record.
// One tick runs at a time; every external call inside a tick is awaited
// before the next ticker fire is handled.
package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/classifier"
	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/config"
	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/extractor"
	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/fetcher"
	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/formatter"
	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/ledger"
	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/models"
	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/notifier"
	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/timeutil"
	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/util"
	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/validator"
)

type Poller struct {
	fetch    fetcher.Fetcher
	notify   notifier.Notifier
	ledger   *ledger.Ledger
	validate *validator.Validator
	cfg      *config.Config
	zone     timeutil.Zone

	// lastCheckedID bounds "new" tweets by position in the next tick. It
	// lives in process memory only; a restart falls back to ledger lookups.
	lastCheckedID string
}

func New(f fetcher.Fetcher, n notifier.Notifier, l *ledger.Ledger, cfg *config.Config) *Poller {
	return &Poller{
		fetch:    f,
		notify:   n,
		ledger:   l,
		validate: validator.New(),
		cfg:      cfg,
		zone:     timeutil.Zone{OffsetHours: cfg.TargetTZOffset, Label: cfg.TargetTZLabel},
	}
}

// Run performs the baseline pass and then ticks at the configured interval
// until the context is cancelled.
func (p *Poller) Run(ctx context.Context) {
	slog.Info("Starting airdrop monitor",
		"account", p.cfg.MonitorUsername,
		"interval", p.cfg.PollInterval,
		"max_tweets", p.cfg.MaxTweetsToCheck,
		"telegram_enabled", p.notify.Enabled())

	p.Baseline(ctx)

	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Poller stopping", "reason", ctx.Err())
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Baseline seeds the cursor from the newest fetched tweet and processes the
// initial batch, bounded by ledger membership only (no cursor exists yet).
func (p *Poller) Baseline(ctx context.Context) {
	tweets := p.fetchBatch(ctx)
	if len(tweets) == 0 {
		slog.Warn("Baseline fetch returned no tweets")
		return
	}
	p.lastCheckedID = tweets[0].ID
	slog.Info("Baseline set", "latest_id", p.lastCheckedID, "fetched", len(tweets))
	p.processBatch(ctx, tweets)
}

// Tick runs one full cycle. The cursor always advances to the newest
// fetched tweet, whether or not anything new was found.
func (p *Poller) Tick(ctx context.Context) {
	tweets := p.fetchBatch(ctx)
	if len(tweets) == 0 {
		slog.Info("No tweets fetched this cycle")
		return
	}

	newTweets := p.cutAtCursor(tweets)
	if len(newTweets) == 0 {
		slog.Info("No new tweets since last check")
		p.lastCheckedID = tweets[0].ID
		return
	}

	slog.Info("Found new tweets since last check", "count", len(newTweets))
	p.processBatch(ctx, newTweets)
	p.lastCheckedID = tweets[0].ID
}

// fetchBatch wraps the fetch collaborator; a failure is this cycle's "no
// new information", never a tick abort.
func (p *Poller) fetchBatch(ctx context.Context) []models.Tweet {
	tweets, err := p.fetch.FetchRecent(ctx, p.cfg.MonitorUsername, p.cfg.MaxTweetsToCheck)
	if err != nil {
		slog.Error("Failed to fetch tweets", "account", p.cfg.MonitorUsername, "error", err)
		return nil
	}
	return tweets
}

// cutAtCursor collects tweets newer than the cursor, scanning newest-first
// and stopping at the first already-seen ID. Without a cursor (first run)
// the whole batch passes and ledger membership does the bounding.
func (p *Poller) cutAtCursor(tweets []models.Tweet) []models.Tweet {
	if p.lastCheckedID == "" {
		return tweets
	}
	var fresh []models.Tweet
	for _, tweet := range tweets {
		if tweet.ID == p.lastCheckedID {
			break
		}
		fresh = append(fresh, tweet)
	}
	return fresh
}

// processBatch filters the batch down to new qualifying announcements and
// handles them oldest-first so alerts arrive in posting order. The ledger
// is persisted once at the end if anything was appended.
func (p *Poller) processBatch(ctx context.Context, tweets []models.Tweet) {
	var announcements []models.Tweet
	for _, tweet := range tweets {
		if !p.ledger.IsNew(tweet.ID) {
			slog.Debug("Tweet already processed", "id", tweet.ID)
			continue
		}
		if !classifier.IsAirdropAnnouncement(tweet.Text) {
			slog.Debug("Skipping non-airdrop tweet", "preview", util.PreviewText(tweet.Text, 50))
			continue
		}
		announcements = append(announcements, tweet)
	}

	if len(announcements) == 0 {
		slog.Info("No new airdrop tweets to process")
		return
	}
	slog.Info("Found new airdrop tweets", "count", len(announcements))

	appended := 0
	for i := len(announcements) - 1; i >= 0; i-- {
		if p.processAnnouncement(ctx, announcements[i]) {
			appended++
		}
	}

	if appended > 0 {
		p.ledger.Persist(ctx)
	}
}

// processAnnouncement extracts, dedups by token, notifies and records one
// qualifying tweet. Returns true when a ledger entry was appended.
func (p *Poller) processAnnouncement(ctx context.Context, tweet models.Tweet) bool {
	info := extractor.ExtractAirdropInfo(tweet.Text, p.zone)
	token := info.Token
	if token == nil {
		token = extractor.ExtractTokenInfo(tweet.Text)
	}

	logArgs := []any{"id", tweet.ID, "author", tweet.ScreenName}
	if token != nil {
		logArgs = append(logArgs, "token", token.Name+" ("+token.Symbol+")")

		// Same event, different wording: skip when this token already went
		// out successfully.
		if prior := p.ledger.NotifiedForToken(token.Symbol); prior != nil {
			slog.Info("Airdrop for token already notified, skipping",
				"symbol", ledger.NormalizeSymbol(token.Symbol), "prior_id", prior.ID)
			return false
		}
	}
	slog.Info("New airdrop announcement", logArgs...)

	msg := formatter.Format(tweet, info, token)
	posted, messageID := p.deliver(ctx, msg)

	entry := models.LedgerEntry{
		ID:                tweet.ID,
		Text:              tweet.Text,
		CreatedAt:         tweet.CreatedAt,
		ScreenName:        tweet.ScreenName,
		URL:               tweet.URL,
		Category:          models.CategoryAirdrop,
		PostedToTelegram:  posted,
		TelegramMessageID: messageID,
		ProcessedAt:       time.Now(),
		TokenInfo:         token,
		AirdropInfo:       info,
	}
	if err := p.validate.ValidateStruct(entry); err != nil {
		slog.Warn("Ledger entry failed validation, recording anyway", "id", entry.ID, "error", err)
	}

	// A failed notification still marks the tweet processed: re-notifying
	// on every tick would be worse than one missed alert.
	if err := p.ledger.Append(entry); err != nil {
		slog.Warn("Failed to append ledger entry", "id", entry.ID, "error", err)
		return false
	}
	return true
}

// deliver sends the message, treating a disabled sink as a successful
// delivery so flipping the toggle later does not replay history.
func (p *Poller) deliver(ctx context.Context, msg formatter.Message) (posted bool, messageID int) {
	if !p.notify.Enabled() {
		slog.Info("Telegram posting disabled, skipping message")
		return true, 0
	}
	messageID, err := p.notify.Send(ctx, msg, 0)
	if err != nil {
		slog.Error("Failed to send notification", "error", err)
		return false, 0
	}
	slog.Info("Notification sent", "message_id", messageID)
	return true, messageID
}
