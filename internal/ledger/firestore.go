package ledger

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/models"
)

const firestoreCollection = "airdrop_tweets"

// FirestoreStore is the hosted backend, used when running on Cloud Run
// where a local JSON file would not survive restarts. Documents are
// create-only, matching the ledger's write-once contract.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(ctx context.Context, projectID string) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClient: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// Load reads every entry, oldest first.
func (s *FirestoreStore) Load(ctx context.Context) ([]models.LedgerEntry, error) {
	iter := s.client.Collection(firestoreCollection).
		OrderBy("processed_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var entries []models.LedgerEntry
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
		}
		var entry models.LedgerEntry
		if err := doc.DataTo(&entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ledger entry %s: %w", doc.Ref.ID, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Save creates documents for entries not yet stored. AlreadyExists is not
// an error: entries are immutable, so an existing document is already
// exactly what we would write.
func (s *FirestoreStore) Save(ctx context.Context, entries []models.LedgerEntry) error {
	collection := s.client.Collection(firestoreCollection)
	for i := range entries {
		_, err := collection.Doc(entries[i].ID).Create(ctx, entries[i])
		if err != nil && status.Code(err) != codes.AlreadyExists {
			return fmt.Errorf("failed to create ledger entry %s: %w", entries[i].ID, err)
		}
	}
	return nil
}
