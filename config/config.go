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


// Package config loads the pipeline configuration from an optional YAML file
// with environment-variable overrides, and exposes it as an explicit struct
// passed to each component at construction.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names recognized as overrides. These match the
// variables the CI pipeline exports.
const (
	envBucket              = "S3_BUCKET_NAME"
	envTenant              = "TENANT_NAME"
	envAWSRegion           = "AWS_REGION"
	envDBHost              = "POSTGRESQL_DB_HOST"
	envDBPort              = "POSTGRESQL_DB_PORT"
	envDBName              = "POSTGRESQL_DB_NAME"
	envDBUser              = "POSTGRESQL_DB_USER"
	envDBPassword          = "POSTGRESQL_DB_PASSWORD"
	envEmbeddingProvider   = "EMBEDDING_PROVIDER"
	envEmbeddingHost       = "EMBEDDING_HOST"
	envEmbeddingModel      = "EMBEDDING_MODEL_ID"
	envKeywordModel        = "KEYWORD_MODEL_ID"
	envSimilarityThreshold = "SIMILARITY_THRESHOLD"
	envTokenURL            = "TOKEN_URL"
	envArticlesURL         = "ARTICLES_URL"
	envClientID            = "CLIENT_ID"
	envClientSecret        = "CLIENT_SECRET"
	envRedirectURI         = "REDIRECT_URI"
	envRefreshToken        = "REFRESH_TOKEN"
	envDepartmentID        = "DEPARTMENT_ID"
	envCategoryID          = "CATEGORY_ID"
	envNotifyWebhook       = "NOTIFY_WEBHOOK_URL"
	envTunnelAddr          = "TUNNEL_ADDR"
)

// Config is the top-level pipeline configuration.
type Config struct {
	Tenant              string         `yaml:"tenant"`
	SimilarityThreshold float64        `yaml:"similarityThreshold"`
	Storage             StorageConfig  `yaml:"storage"`
	Helpdesk            HelpdeskConfig `yaml:"helpdesk"`
	Postgres            PostgresConfig `yaml:"postgres"`
	Embedding           EmbedConfig    `yaml:"embedding"`
	Tunnel              TunnelConfig   `yaml:"tunnel"`
	Notify              NotifyConfig   `yaml:"notify"`
}

// StorageConfig holds object-storage settings for staged datasets.
type StorageConfig struct {
	Bucket string `yaml:"bucket"`
	Region string `yaml:"region"`
	// KeepSnapshots is how many synced snapshots to retain; older ones are
	// pruned after each successful save.
	KeepSnapshots int `yaml:"keepSnapshots"`
}

// HelpdeskConfig holds helpdesk API endpoints and OAuth credentials.
type HelpdeskConfig struct {
	TokenURL     string `yaml:"tokenUrl"`
	ArticlesURL  string `yaml:"articlesUrl"`
	ClientID     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`
	RedirectURI  string `yaml:"redirectUri"`
	RefreshToken string `yaml:"refreshToken"`
	DepartmentID string `yaml:"departmentId"`
	CategoryID   string `yaml:"categoryId"`
	PageSize     int    `yaml:"pageSize"`
}

// PostgresConfig holds connection parameters for the vector store.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslMode"`
	Table    string `yaml:"table"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// Embedding providers.
const (
	// ProviderOpenAI targets any OpenAI-compatible embeddings API.
	ProviderOpenAI = "openai"
	// ProviderBedrock targets the managed foundation-model service.
	ProviderBedrock = "bedrock"
)

// EmbedConfig selects and configures the embedding provider.
type EmbedConfig struct {
	Provider string `yaml:"provider"`
	Host     string `yaml:"host"`
	Model    string `yaml:"model"`
	Region   string `yaml:"region"`
	// KeywordModel enables keyword enrichment before embedding when set.
	KeywordModel string `yaml:"keywordModel"`
}

// TunnelConfig describes the database tunnel precondition check.
type TunnelConfig struct {
	Addr     string        `yaml:"addr"`
	Attempts int           `yaml:"attempts"`
	Delay    time.Duration `yaml:"delay"`
	Timeout  time.Duration `yaml:"timeout"`
}

// NotifyConfig holds the failure-notification webhook.
type NotifyConfig struct {
	WebhookURL string `yaml:"webhookUrl"`
}

// Load reads a YAML config file (if path is non-empty) and applies
// environment-variable overrides on top of defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		SimilarityThreshold: 0.9,
		Storage: StorageConfig{
			KeepSnapshots: 3,
		},
		Helpdesk: HelpdeskConfig{
			PageSize: 50,
		},
		Postgres: PostgresConfig{
			Port:    5432,
			SSLMode: "require",
			Table:   "article_embeddings",
		},
		Embedding: EmbedConfig{
			Provider: ProviderOpenAI,
		},
		Tunnel: TunnelConfig{
			Attempts: 5,
			Delay:    3 * time.Second,
			Timeout:  2 * time.Second,
		},
	}
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Tenant, envTenant)
	setString(&c.Storage.Bucket, envBucket)
	setString(&c.Storage.Region, envAWSRegion)
	setString(&c.Postgres.Host, envDBHost)
	setInt(&c.Postgres.Port, envDBPort)
	setString(&c.Postgres.Database, envDBName)
	setString(&c.Postgres.User, envDBUser)
	setString(&c.Postgres.Password, envDBPassword)
	setString(&c.Embedding.Provider, envEmbeddingProvider)
	setString(&c.Embedding.Host, envEmbeddingHost)
	setString(&c.Embedding.Model, envEmbeddingModel)
	setString(&c.Embedding.KeywordModel, envKeywordModel)
	setFloat(&c.SimilarityThreshold, envSimilarityThreshold)
	setString(&c.Helpdesk.TokenURL, envTokenURL)
	setString(&c.Helpdesk.ArticlesURL, envArticlesURL)
	setString(&c.Helpdesk.ClientID, envClientID)
	setString(&c.Helpdesk.ClientSecret, envClientSecret)
	setString(&c.Helpdesk.RedirectURI, envRedirectURI)
	setString(&c.Helpdesk.RefreshToken, envRefreshToken)
	setString(&c.Helpdesk.DepartmentID, envDepartmentID)
	setString(&c.Helpdesk.CategoryID, envCategoryID)
	setString(&c.Notify.WebhookURL, envNotifyWebhook)
	setString(&c.Tunnel.Addr, envTunnelAddr)
	if c.Embedding.Region == "" {
		c.Embedding.Region = c.Storage.Region
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

// Validate checks the settings every pipeline step depends on. Components
// with additional requirements (database, helpdesk API) validate their own
// sections via the methods below.
func (c *Config) Validate() error {
	if c.Tenant == "" {
		return errors.New("config: tenant is required (TENANT_NAME)")
	}
	if c.Storage.Bucket == "" {
		return errors.New("config: bucket is required (S3_BUCKET_NAME)")
	}
	if c.Storage.KeepSnapshots < 1 {
		return errors.New("config: keepSnapshots must be at least 1")
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return errors.New("config: similarityThreshold must be in (0, 1]")
	}
	return nil
}

// ValidateHelpdesk checks the settings the metadata fetcher needs.
func (c *Config) ValidateHelpdesk() error {
	h := c.Helpdesk
	if h.TokenURL == "" || h.ArticlesURL == "" {
		return errors.New("config: helpdesk token and articles URLs are required")
	}
	if h.ClientID == "" || h.ClientSecret == "" || h.RefreshToken == "" {
		return errors.New("config: helpdesk OAuth credentials are required")
	}
	if h.PageSize < 1 {
		return errors.New("config: helpdesk pageSize must be at least 1")
	}
	return nil
}

// ValidatePostgres checks the settings the Postgres uploader needs.
func (c *Config) ValidatePostgres() error {
	p := c.Postgres
	if p.Host == "" || p.Database == "" || p.User == "" || p.Password == "" {
		return errors.New("config: postgres host, database, user and password are required")
	}
	if p.Port < 1 || p.Port > 65535 {
		return errors.New("config: postgres port out of range")
	}
	return nil
}

// ValidateEmbedding checks the settings the embedding updater needs.
func (c *Config) ValidateEmbedding() error {
	e := c.Embedding
	if e.Model == "" {
		return errors.New("config: embedding model is required (EMBEDDING_MODEL_ID)")
	}
	switch e.Provider {
	case ProviderOpenAI:
		if e.Host == "" {
			return errors.New("config: embedding host is required for the openai provider")
		}
	case ProviderBedrock:
		if e.Region == "" {
			return errors.New("config: region is required for the bedrock provider")
		}
	default:
		return fmt.Errorf("config: unknown embedding provider %q", e.Provider)
	}
	return nil
}
