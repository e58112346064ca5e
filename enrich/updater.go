// Copyright 2026 Helix Data Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package enrich

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/helixdata/desksync/ai"
	"github.com/helixdata/desksync/core"
)

// Updater computes embeddings for the records on a work list. Each record is
// processed independently: a failed embedding call is logged and skipped so
// the rest of the batch still goes through. Skipped records keep their stale
// fingerprint and are picked up again on the next run.
type Updater struct {
	embedder ai.Embedder
	keywords ai.KeywordExtractor // nil disables keyword enrichment
	logger   *slog.Logger
	now      func() time.Time
}

// NewUpdater creates an updater. keywords may be nil, in which case records
// are embedded from their title and body alone.
func NewUpdater(embedder ai.Embedder, keywords ai.KeywordExtractor) *Updater {
	return &Updater{
		embedder: embedder,
		keywords: keywords,
		logger:   slog.Default().With("component", "updater"),
		now:      time.Now,
	}
}

// Update embeds every record on the work list and returns the successfully
// updated records plus the count of skipped ones. Only context cancellation
// aborts the batch.
func (u *Updater) Update(ctx context.Context, worklist []core.VectorRecord) ([]core.VectorRecord, int, error) {
	updated := make([]core.VectorRecord, 0, len(worklist))
	skipped := 0

	for _, rec := range worklist {
		if err := ctx.Err(); err != nil {
			return updated, skipped, err
		}

		u.enrichKeywords(ctx, &rec)

		text := rec.EmbeddingText()
		vector, err := u.embedder.EmbedText(ctx, text)
		if err != nil {
			if ctx.Err() != nil {
				return updated, skipped, ctx.Err()
			}
			u.logger.Error("embedding failed, skipping record", "id", rec.ID, "err", err)
			skipped++
			continue
		}

		rec.Embedding = vector
		rec.Fingerprint = core.RecordFingerprint(&rec)
		rec.LastSynced = u.now().UTC()
		updated = append(updated, rec)
	}

	u.logger.Info("embedding update complete", "updated", len(updated), "skipped", skipped)
	return updated, skipped, nil
}

// enrichKeywords fills in keywords and combined text for records that lack
// them. Extraction failures degrade to embedding title and body as-is.
func (u *Updater) enrichKeywords(ctx context.Context, rec *core.VectorRecord) {
	if u.keywords == nil {
		return
	}
	if len(rec.Keywords) == 0 {
		kws, err := u.keywords.ExtractKeywords(ctx, rec.Title+"\n\n"+rec.Body)
		if err != nil {
			u.logger.Warn("keyword extraction failed", "id", rec.ID, "err", err)
		} else {
			rec.Keywords = kws
		}
	}
	if len(rec.Keywords) > 0 {
		rec.CombinedText = rec.Title + "\n\nKeywords: " + strings.Join(rec.Keywords, ", ") + "\n\n" + rec.Body
	}
}

// ApplyUpdates merges updated records into a snapshot by identifier and
// returns the resulting snapshot. Records absent from updates keep their
// snapshot state.
func ApplyUpdates(snapshot, updates []core.VectorRecord) []core.VectorRecord {
	byID := make(map[string]core.VectorRecord, len(updates))
	for _, rec := range updates {
		byID[rec.ID] = rec
	}

	out := make([]core.VectorRecord, len(snapshot))
	for i, rec := range snapshot {
		if updated, ok := byID[rec.ID]; ok {
			out[i] = updated
		} else {
			out[i] = rec
		}
	}
	return out
}
