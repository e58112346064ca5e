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
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v2"

	"github.com/helixdata/desksync/ai"
	"github.com/helixdata/desksync/ai/bedrock"
	"github.com/helixdata/desksync/ai/openai"
	"github.com/helixdata/desksync/config"
	"github.com/helixdata/desksync/pgstore"
	"github.com/helixdata/desksync/stage"
	"github.com/helixdata/desksync/tunnel"
)

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newStore builds the tenant-scoped object store for staged datasets.
func newStore(ctx context.Context, cfg *config.Config) (stage.Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)
	return stage.NewS3Store(client, cfg.Storage.Bucket, cfg.Tenant), nil
}

func aiConfig(cfg *config.Config) *ai.Config {
	return ai.NewConfig(
		ai.WithHost(cfg.Embedding.Host),
		ai.WithEmbeddingModel(cfg.Embedding.Model),
		ai.WithKeywordModel(cfg.Embedding.KeywordModel),
		ai.WithRegion(cfg.Embedding.Region),
	)
}

// newEmbedder builds the embedding client the config selects.
func newEmbedder(ctx context.Context, cfg *config.Config) (ai.Embedder, error) {
	if err := cfg.ValidateEmbedding(); err != nil {
		return nil, err
	}

	switch cfg.Embedding.Provider {
	case config.ProviderBedrock:
		return bedrock.NewEmbedder(ctx, aiConfig(cfg))
	default:
		return openai.NewEmbedder(aiConfig(cfg))
	}
}

// newKeywordExtractor returns nil when keyword enrichment is not
// configured; the updater treats a nil extractor as disabled.
func newKeywordExtractor(cfg *config.Config) (ai.KeywordExtractor, error) {
	if cfg.Embedding.KeywordModel == "" || cfg.Embedding.Provider == config.ProviderBedrock {
		return nil, nil
	}
	return openai.NewKeywordExtractor(aiConfig(cfg))
}

// newUploader waits for the database tunnel, then connects to Postgres.
func newUploader(ctx context.Context, cfg *config.Config) (*pgstore.Uploader, *pgstore.Client, error) {
	if err := cfg.ValidatePostgres(); err != nil {
		return nil, nil, err
	}

	if err := tunnel.NewChecker(cfg.Tunnel).Wait(ctx); err != nil {
		return nil, nil, err
	}

	client, err := pgstore.New(cfg.Postgres)
	if err != nil {
		return nil, nil, err
	}
	return pgstore.NewUploader(client, cfg.Postgres.Table), client, nil
}
