package ledger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/models"
)

type memStore struct {
	entries   []models.LedgerEntry
	loadErr   error
	saveErr   error
	saveCount int
}

func (m *memStore) Load(_ context.Context) ([]models.LedgerEntry, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.entries, nil
}

func (m *memStore) Save(_ context.Context, entries []models.LedgerEntry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saveCount++
	m.entries = entries
	return nil
}

func entryWithToken(id, symbol string, posted bool) models.LedgerEntry {
	return models.LedgerEntry{
		ID:               id,
		Text:             "text for " + id,
		Category:         models.CategoryAirdrop,
		PostedToTelegram: posted,
		ProcessedAt:      time.Now(),
		TokenInfo:        &models.TokenInfo{Name: symbol, Symbol: symbol},
	}
}

func TestLedger_IsNew(t *testing.T) {
	store := &memStore{entries: []models.LedgerEntry{entryWithToken("1", "AAA", true)}}
	l := Open(context.Background(), store)

	if l.IsNew("1") {
		t.Error("Expected existing entry to not be new")
	}
	if !l.IsNew("2") {
		t.Error("Expected unknown id to be new")
	}
}

func TestLedger_AppendWriteOnce(t *testing.T) {
	l := Open(context.Background(), &memStore{})

	if err := l.Append(entryWithToken("1", "AAA", true)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	err := l.Append(entryWithToken("1", "AAA", false))
	if !errors.Is(err, models.ErrEntryExists) {
		t.Errorf("Append() duplicate error = %v, want ErrEntryExists", err)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestLedger_NotifiedForToken(t *testing.T) {
	store := &memStore{entries: []models.LedgerEntry{
		entryWithToken("1", "HYPER", true),
		entryWithToken("2", "FAIL", false),
	}}
	l := Open(context.Background(), store)

	tests := []struct {
		name   string
		symbol string
		wantID string
	}{
		{name: "Exact match", symbol: "HYPER", wantID: "1"},
		{name: "Case and whitespace normalized", symbol: "  hyper ", wantID: "1"},
		{name: "Failed delivery does not suppress", symbol: "FAIL", wantID: ""},
		{name: "Unknown token", symbol: "OTHER", wantID: ""},
		{name: "Empty symbol", symbol: "", wantID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.NotifiedForToken(tt.symbol)
			if tt.wantID == "" {
				if got != nil {
					t.Errorf("NotifiedForToken(%q) = %+v, want nil", tt.symbol, got)
				}
				return
			}
			if got == nil || got.ID != tt.wantID {
				t.Errorf("NotifiedForToken(%q) = %+v, want id %s", tt.symbol, got, tt.wantID)
			}
		})
	}
}

func TestLedger_NotifiedForToken_AirdropInfoFallback(t *testing.T) {
	// Older entries may carry the token only inside the extracted record.
	entry := models.LedgerEntry{
		ID:               "1",
		Text:             "text",
		Category:         models.CategoryAirdrop,
		PostedToTelegram: true,
		ProcessedAt:      time.Now(),
		AirdropInfo: &models.AirdropInfo{
			Token: &models.TokenInfo{Name: "Koge", Symbol: "KOGE"},
		},
	}
	l := Open(context.Background(), &memStore{entries: []models.LedgerEntry{entry}})

	if got := l.NotifiedForToken("koge"); got == nil || got.ID != "1" {
		t.Errorf("NotifiedForToken() = %+v, want entry 1", got)
	}
}

func TestLedger_PersistOnlyWhenDirty(t *testing.T) {
	store := &memStore{}
	l := Open(context.Background(), store)

	l.Persist(context.Background())
	if store.saveCount != 0 {
		t.Errorf("Persist() on clean ledger wrote %d times, want 0", store.saveCount)
	}

	if err := l.Append(entryWithToken("1", "AAA", true)); err != nil {
		t.Fatal(err)
	}
	l.Persist(context.Background())
	if store.saveCount != 1 {
		t.Errorf("Persist() after append wrote %d times, want 1", store.saveCount)
	}

	l.Persist(context.Background())
	if store.saveCount != 1 {
		t.Errorf("Persist() with no new entries wrote %d times, want 1", store.saveCount)
	}
}

func TestLedger_PersistRetriesAfterSaveFailure(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	l := Open(context.Background(), store)

	if err := l.Append(entryWithToken("1", "AAA", true)); err != nil {
		t.Fatal(err)
	}
	l.Persist(context.Background())
	if store.saveCount != 0 {
		t.Fatal("Save should have failed")
	}

	// Next persist retries the write once the store recovers.
	store.saveErr = nil
	l.Persist(context.Background())
	if store.saveCount != 1 {
		t.Errorf("Persist() after recovery wrote %d times, want 1", store.saveCount)
	}
}

func TestLedger_LoadFailureStartsEmpty(t *testing.T) {
	store := &memStore{loadErr: errors.New("corrupt")}
	l := Open(context.Background(), store)

	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after load failure", l.Len())
	}
	if !l.IsNew("anything") {
		t.Error("Empty ledger should treat every id as new")
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "ledger.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() on missing file error = %v", err)
	}
	if loaded != nil {
		t.Errorf("Load() on missing file = %v, want nil", loaded)
	}

	entries := []models.LedgerEntry{
		entryWithToken("1", "HYPER", true),
		entryWithToken("2", "KOGE", false),
	}
	if err := store.Save(context.Background(), entries); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err = store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Load() returned %d entries, want 2", len(loaded))
	}
	if loaded[0].ID != "1" || loaded[0].TokenInfo.Symbol != "HYPER" || !loaded[0].PostedToTelegram {
		t.Errorf("Loaded entry 0 = %+v", loaded[0])
	}
	if loaded[1].ID != "2" || loaded[1].PostedToTelegram {
		t.Errorf("Loaded entry 1 = %+v", loaded[1])
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Load(context.Background()); err == nil {
		t.Error("Load() on corrupt file should error (ledger opens empty instead)")
	}
}
