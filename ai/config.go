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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service clients.
type Config struct {
	// Host is the base URL for OpenAI-compatible services.
	// Example: "http://localhost:11434/v1"
	Host string

	// EmbeddingModel is the model identifier used for embeddings.
	// Example: "text-embedding-3-small", "amazon.titan-embed-text-v1"
	EmbeddingModel string

	// KeywordModel is the chat model used for keyword extraction.
	// Empty disables keyword enrichment.
	KeywordModel string

	// Region is the cloud region for the managed foundation-model service.
	Region string

	// MaxKeywords caps the number of keywords kept per article.
	// Default: 8
	MaxKeywords int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the OpenAI-compatible service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithKeywordModel sets the keyword-extraction chat model.
func WithKeywordModel(model string) ConfigOption {
	return func(c *Config) {
		c.KeywordModel = model
	}
}

// WithRegion sets the cloud region for managed providers.
func WithRegion(region string) ConfigOption {
	return func(c *Config) {
		c.Region = region
	}
}

// WithMaxKeywords sets the keyword cap.
func WithMaxKeywords(max int) ConfigOption {
	return func(c *Config) {
		c.MaxKeywords = max
	}
}

// DefaultConfig returns a Config with defaults suitable for a local
// OpenAI-compatible service.
func DefaultConfig() *Config {
	return &Config{
		Host:        "http://localhost:11434/v1",
		MaxKeywords: 8,
	}
}

// NewConfig creates a Config with default values and applies the provided
// options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the host URL carries the /v1 suffix most
// OpenAI-compatible APIs (Ollama, LocalAI, vLLM) expect.
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/") + "/v1"
	}
}

// Validate checks that the configuration is complete. It normalizes the
// configuration first.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.MaxKeywords < 1 {
		return errors.New("ai config: MaxKeywords must be at least 1")
	}
	return nil
}
