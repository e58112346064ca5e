package stage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store is an abstraction over the object storage that holds staged pipeline
// datasets. Keys are slash-separated paths relative to the tenant prefix.
type Store interface {
	// Put writes data under key, overwriting any existing object.
	Put(ctx context.Context, key string, data []byte) error

	// Get reads the object at key. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// List returns all keys with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the object at key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error
}

// Dataset keys used by the pipeline steps, relative to the tenant prefix.
// The numbering mirrors the order the steps run in.
const (
	// KeyRawArticles is the normalized output of the metadata fetcher.
	KeyRawArticles = "helpdesk-data/01_articles.json"

	// KeyConverted is the output of the format converter.
	KeyConverted = "helpdesk-data/02_records.json"

	// KeyDeleted holds the IDs that disappeared from the source in the last
	// sync, consumed by the incremental uploader.
	KeyDeleted = "helpdesk-data/03_deleted.json"

	// KeyWorklist is the enrichment work list consumed by the embedding
	// updater.
	KeyWorklist = "helpdesk-data/enriched/worklist.json"

	// KeyMatchReport is the output of the title-similarity matcher.
	KeyMatchReport = "helpdesk-data/matched/report.json"

	// SnapshotPrefix is the folder holding timestamped synced snapshots.
	SnapshotPrefix = "helpdesk-data/synced/"
)

// PutJSON marshals v and writes it under key.
func PutJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.Put(ctx, key, data)
}

// GetJSON reads the object at key and unmarshals it into v.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedDataset, key, err)
	}
	return nil
}
