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
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/helixdata/desksync/core"
	"github.com/helixdata/desksync/match"
	"github.com/helixdata/desksync/notify"
	"github.com/helixdata/desksync/stage"
)

// commandSteps handles the setup shared by every subcommand: config, store
// and the step runner.
func commandSteps(c *cli.Context) (*steps, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	store, err := newStore(c.Context, cfg)
	if err != nil {
		return nil, err
	}
	return newSteps(cfg, store), nil
}

func runCommand(c *cli.Context) error {
	s, err := commandSteps(c)
	if err != nil {
		return err
	}
	ctx := c.Context

	embedder, err := newEmbedder(ctx, s.cfg)
	if err != nil {
		return err
	}
	keywords, err := newKeywordExtractor(s.cfg)
	if err != nil {
		return err
	}

	p, err := s.buildPipeline(embedder, keywords, c.Bool("full-refresh"))
	if err != nil {
		return err
	}

	if err := p.Run(ctx); err != nil {
		notify.NewNotifier(s.cfg.Notify.WebhookURL).Failure(ctx, s.cfg.Tenant, err)
		return err
	}
	return nil
}

func fetchCommand(c *cli.Context) error {
	s, err := commandSteps(c)
	if err != nil {
		return err
	}
	return s.fetch(c.Context)
}

func convertCommand(c *cli.Context) error {
	s, err := commandSteps(c)
	if err != nil {
		return err
	}
	return s.convert(c.Context)
}

func syncCommand(c *cli.Context) error {
	s, err := commandSteps(c)
	if err != nil {
		return err
	}
	return s.sync(c.Context)
}

func enrichCommand(c *cli.Context) error {
	s, err := commandSteps(c)
	if err != nil {
		return err
	}
	return s.identify(c.Context)
}

func embedCommand(c *cli.Context) error {
	s, err := commandSteps(c)
	if err != nil {
		return err
	}
	ctx := c.Context

	embedder, err := newEmbedder(ctx, s.cfg)
	if err != nil {
		return err
	}
	keywords, err := newKeywordExtractor(s.cfg)
	if err != nil {
		return err
	}
	return s.embed(ctx, embedder, keywords)
}

func uploadCommand(c *cli.Context) error {
	s, err := commandSteps(c)
	if err != nil {
		return err
	}
	return s.upload(c.Context, c.Bool("full-refresh"))
}

func matchCommand(c *cli.Context) error {
	s, err := commandSteps(c)
	if err != nil {
		return err
	}
	ctx := c.Context

	var articles []core.Article
	if err := stage.GetJSON(ctx, s.store, stage.KeyRawArticles, &articles); err != nil {
		return err
	}
	existing, key, err := s.snaps.Latest(ctx)
	if err != nil {
		return err
	}

	report := match.NewMatcher(s.cfg.SimilarityThreshold).Match(articles, existing)
	s.logger.Info("title matching complete",
		"snapshot", key,
		"matched", len(report.Matched),
		"unmatched", len(report.Unmatched),
	)
	return stage.PutJSON(ctx, s.store, stage.KeyMatchReport, report)
}

func checkCommand(c *cli.Context) error {
	s, err := commandSteps(c)
	if err != nil {
		return err
	}
	ctx := c.Context

	if _, err := s.store.List(ctx, ""); err != nil {
		return fmt.Errorf("object storage check failed: %w", err)
	}
	s.logger.Info("object storage reachable", "bucket", s.cfg.Storage.Bucket)

	uploader, client, err := newUploader(ctx, s.cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := uploader.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}
	count, err := uploader.Count(ctx)
	if err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}
	s.logger.Info("database reachable", "table", s.cfg.Postgres.Table, "rows", count)
	return nil
}
