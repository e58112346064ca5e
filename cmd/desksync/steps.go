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


package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/helixdata/desksync/ai"
	"github.com/helixdata/desksync/config"
	"github.com/helixdata/desksync/core"
	"github.com/helixdata/desksync/diff"
	"github.com/helixdata/desksync/enrich"
	"github.com/helixdata/desksync/helpdesk"
	"github.com/helixdata/desksync/pipeline"
	"github.com/helixdata/desksync/stage"
)

// steps holds everything the pipeline steps need. Individual subcommands
// run single steps against the same struct.
type steps struct {
	cfg    *config.Config
	store  stage.Store
	snaps  *stage.Snapshots
	logger *slog.Logger
}

func newSteps(cfg *config.Config, store stage.Store) *steps {
	return &steps{
		cfg:    cfg,
		store:  store,
		snaps:  stage.NewSnapshots(store),
		logger: slog.Default().With("component", "desksync"),
	}
}

// fetch pulls articles from the helpdesk API and stages them.
func (s *steps) fetch(ctx context.Context) error {
	if err := s.cfg.ValidateHelpdesk(); err != nil {
		return err
	}

	articles, err := helpdesk.NewClient(s.cfg.Helpdesk).FetchArticles(ctx)
	if err != nil {
		return err
	}
	return stage.PutJSON(ctx, s.store, stage.KeyRawArticles, articles)
}

// convert maps staged articles into vector records.
func (s *steps) convert(ctx context.Context) error {
	var articles []core.Article
	if err := stage.GetJSON(ctx, s.store, stage.KeyRawArticles, &articles); err != nil {
		return err
	}

	records := helpdesk.Convert(articles)
	return stage.PutJSON(ctx, s.store, stage.KeyConverted, records)
}

// sync diffs the converted records against the latest snapshot, stages the
// merged result as a new snapshot and records the deleted IDs.
func (s *steps) sync(ctx context.Context) error {
	var current []core.VectorRecord
	if err := stage.GetJSON(ctx, s.store, stage.KeyConverted, &current); err != nil {
		return err
	}

	prior, priorKey, err := s.snaps.Latest(ctx)
	if err != nil && !errors.Is(err, stage.ErrNoSnapshot) {
		return err
	}
	if priorKey == "" {
		s.logger.Info("no prior snapshot, treating all records as new")
	}

	res, err := diff.Partition(current, prior)
	if err != nil {
		return err
	}
	s.logger.Info("sync partition", "prior", priorKey, "summary", res.Summary())

	deleted := make([]string, 0, len(res.Deleted))
	for _, rec := range res.Deleted {
		deleted = append(deleted, rec.ID)
	}
	if err := stage.PutJSON(ctx, s.store, stage.KeyDeleted, deleted); err != nil {
		return err
	}

	if _, err := s.snaps.Save(ctx, res.Merged()); err != nil {
		return err
	}
	return s.snaps.Prune(ctx, s.cfg.Storage.KeepSnapshots)
}

// identify stages the work list of records whose embeddings are stale.
func (s *steps) identify(ctx context.Context) error {
	snapshot, key, err := s.snaps.Latest(ctx)
	if err != nil {
		return err
	}

	worklist := enrich.Worklist(snapshot)
	s.logger.Info("enrichment work list", "snapshot", key, "stale", len(worklist), "total", len(snapshot))
	return stage.PutJSON(ctx, s.store, stage.KeyWorklist, worklist)
}

// embed enriches and embeds the staged work list, then saves the updated
// snapshot.
func (s *steps) embed(ctx context.Context, embedder ai.Embedder, keywords ai.KeywordExtractor) error {
	var worklist []core.VectorRecord
	if err := stage.GetJSON(ctx, s.store, stage.KeyWorklist, &worklist); err != nil {
		return err
	}
	if len(worklist) == 0 {
		s.logger.Info("work list empty, nothing to embed")
		return nil
	}

	updates, skipped, err := enrich.NewUpdater(embedder, keywords).Update(ctx, worklist)
	if err != nil {
		return err
	}
	if skipped > 0 {
		s.logger.Warn("records skipped during embedding, will retry next run", "skipped", skipped)
	}

	snapshot, _, err := s.snaps.Latest(ctx)
	if err != nil {
		return err
	}

	if _, err := s.snaps.Save(ctx, enrich.ApplyUpdates(snapshot, updates)); err != nil {
		return err
	}
	return s.snaps.Prune(ctx, s.cfg.Storage.KeepSnapshots)
}

// upload pushes the embedded snapshot records to Postgres and removes rows
// for records deleted at the source.
func (s *steps) upload(ctx context.Context, fullRefresh bool) error {
	snapshot, key, err := s.snaps.Latest(ctx)
	if err != nil {
		return err
	}

	embedded := make([]core.VectorRecord, 0, len(snapshot))
	for _, rec := range snapshot {
		if len(rec.Embedding) > 0 {
			embedded = append(embedded, rec)
		}
	}
	if n := len(snapshot) - len(embedded); n > 0 {
		s.logger.Warn("snapshot has unembedded records, not uploading them", "count", n)
	}

	var deletedIDs []string
	if err := stage.GetJSON(ctx, s.store, stage.KeyDeleted, &deletedIDs); err != nil && !errors.Is(err, stage.ErrNotFound) {
		return err
	}

	uploader, client, err := newUploader(ctx, s.cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := uploader.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := uploader.Upload(ctx, embedded, fullRefresh); err != nil {
		return err
	}
	if !fullRefresh {
		if err := uploader.Delete(ctx, deletedIDs); err != nil {
			return err
		}
	}

	s.logger.Info("upload complete", "snapshot", key, "records", len(embedded), "deleted", len(deletedIDs))
	return nil
}

// buildPipeline assembles the full sync run as a validated step sequence.
func (s *steps) buildPipeline(embedder ai.Embedder, keywords ai.KeywordExtractor, fullRefresh bool) (*pipeline.Pipeline, error) {
	return pipeline.New([]pipeline.Step{
		{
			Name:    "fetch",
			Outputs: []string{stage.KeyRawArticles},
			Run:     s.fetch,
		},
		{
			Name:    "convert",
			Inputs:  []string{stage.KeyRawArticles},
			Outputs: []string{stage.KeyConverted},
			Run:     s.convert,
		},
		{
			Name:    "sync",
			Inputs:  []string{stage.KeyConverted},
			Outputs: []string{stage.SnapshotPrefix, stage.KeyDeleted},
			Run:     s.sync,
		},
		{
			Name:    "identify",
			Inputs:  []string{stage.SnapshotPrefix},
			Outputs: []string{stage.KeyWorklist},
			Run:     s.identify,
		},
		{
			Name:    "embed",
			Inputs:  []string{stage.SnapshotPrefix, stage.KeyWorklist},
			Outputs: []string{stage.SnapshotPrefix},
			Run: func(ctx context.Context) error {
				return s.embed(ctx, embedder, keywords)
			},
		},
		{
			Name:   "upload",
			Inputs: []string{stage.SnapshotPrefix, stage.KeyDeleted},
			Run: func(ctx context.Context) error {
				return s.upload(ctx, fullRefresh)
			},
		},
	})
}
