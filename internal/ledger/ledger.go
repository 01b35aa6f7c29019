// Package ledger is the append-only record of processed tweets. It is the
// single source of truth for both dedup checks: by tweet ID, and by token
// symbol across differently-worded announcements of the same event.
package ledger

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/models"
)

// Store abstracts the persistence backend. The ledger is read in full at
// startup and written in full when entries were appended.
type Store interface {
	Load(ctx context.Context) ([]models.LedgerEntry, error)
	Save(ctx context.Context, entries []models.LedgerEntry) error
}

// Ledger holds processed-tweet entries in memory, backed by a Store. The
// poller runs one tick at a time, but the mutex keeps the ledger safe if a
// future change parallelizes work within a tick.
type Ledger struct {
	mu      sync.Mutex
	store   Store
	entries []models.LedgerEntry
	dirty   bool
}

// Open loads the persisted ledger. A read failure degrades to an empty
// in-memory ledger rather than stopping the process: a lost history means
// some duplicate notifications, not an outage.
func Open(ctx context.Context, store Store) *Ledger {
	entries, err := store.Load(ctx)
	if err != nil {
		slog.Error("Failed to load ledger, starting empty", "error", err)
		entries = nil
	}
	slog.Info("Ledger loaded", "entries", len(entries))
	return &Ledger{store: store, entries: entries}
}

// IsNew reports whether no entry exists for the given tweet ID.
func (l *Ledger) IsNew(tweetID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		if l.entries[i].ID == tweetID {
			return false
		}
	}
	return true
}

// NormalizeSymbol is the canonical form used for token dedup.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// NotifiedForToken returns the first entry that was successfully delivered
// for the given token symbol, or nil. Only delivered entries suppress new
// notifications: a failed send must not block a later announcement of the
// same token.
func (l *Ledger) NotifiedForToken(symbol string) *models.LedgerEntry {
	normalized := NormalizeSymbol(symbol)
	if normalized == "" {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		entry := &l.entries[i]
		if !entry.PostedToTelegram {
			continue
		}
		if NormalizeSymbol(entrySymbol(entry)) == normalized {
			return entry
		}
	}
	return nil
}

func entrySymbol(entry *models.LedgerEntry) string {
	if entry.TokenInfo != nil && entry.TokenInfo.Symbol != "" {
		return entry.TokenInfo.Symbol
	}
	if entry.AirdropInfo != nil && entry.AirdropInfo.Token != nil {
		return entry.AirdropInfo.Token.Symbol
	}
	return ""
}

// Append records an entry. Entries are write-once per ID; appending a
// duplicate returns models.ErrEntryExists.
func (l *Ledger) Append(entry models.LedgerEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		if l.entries[i].ID == entry.ID {
			return models.ErrEntryExists
		}
	}
	l.entries = append(l.entries, entry)
	l.dirty = true
	return nil
}

// Len returns the number of entries held in memory.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Persist writes the ledger through the store if anything was appended
// since the last successful write. A write failure is logged and the dirty
// flag kept, so the next tick retries the save.
func (l *Ledger) Persist(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.dirty {
		return
	}
	snapshot := make([]models.LedgerEntry, len(l.entries))
	copy(snapshot, l.entries)
	if err := l.store.Save(ctx, snapshot); err != nil {
		slog.Error("Failed to persist ledger", "error", err, "entries", len(snapshot))
		return
	}
	l.dirty = false
	slog.Info("Ledger persisted", "entries", len(snapshot))
}
