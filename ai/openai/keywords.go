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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"github.com/helixdata/desksync/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// KeywordExtractor implements ai.KeywordExtractor using OpenAI-compatible
// chat APIs.
type KeywordExtractor struct {
	client      llms.Model
	maxKeywords int
	logger      *slog.Logger
}

// keywordResponse matches the JSON structure requested from the model.
type keywordResponse struct {
	Keywords []string `json:"keywords"`
}

// NewKeywordExtractor creates a keyword extractor using the provided
// configuration. Requires KeywordModel to be set.
func NewKeywordExtractor(config *ai.Config) (ai.KeywordExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.KeywordModel == "" {
		return nil, ErrKeywordModelRequired
	}

	token := os.Getenv("OPENAI_API_KEY")
	if token == "" {
		token = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(token),
		openai.WithModel(config.KeywordModel),
	)
	if err != nil {
		return nil, err
	}

	return &KeywordExtractor{
		client:      client,
		maxKeywords: config.MaxKeywords,
		logger:      slog.Default().With("component", "openai-keywords"),
	}, nil
}

// ExtractKeywords derives search keywords from article text using an LLM.
func (e *KeywordExtractor) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(keywordSystemPrompt(e.maxKeywords))},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(text)},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return []string{}, nil
		}

		var result keywordResponse
		raw := response.Choices[0].Content
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			e.logger.Debug("malformed keyword JSON, retrying", "attempt", attempt+1, "err", err)
			lastErr = err
			continue
		}

		return e.clean(result.Keywords), nil
	}

	return nil, lastErr
}

// clean lowercases, trims, deduplicates and caps the keyword list.
func (e *KeywordExtractor) clean(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	keywords := make([]string, 0, len(raw))
	for _, kw := range raw {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
		if len(keywords) == e.maxKeywords {
			break
		}
	}
	return keywords
}
