package mock

import (
	"context"
	"strings"
)

// MockKeywordExtractor is a test double for ai.KeywordExtractor.
type MockKeywordExtractor struct {
	// ExtractKeywordsFunc is called by ExtractKeywords if set.
	// If nil, uses default word-splitting behavior.
	ExtractKeywordsFunc func(ctx context.Context, text string) ([]string, error)

	callCount int
}

// NewMockKeywordExtractor creates a mock extractor with default behavior.
func NewMockKeywordExtractor() *MockKeywordExtractor {
	return &MockKeywordExtractor{}
}

// ExtractKeywords returns the first few distinct lowercase words of the text.
func (m *MockKeywordExtractor) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	m.callCount++

	if m.ExtractKeywordsFunc != nil {
		return m.ExtractKeywordsFunc(ctx, text)
	}

	seen := make(map[string]struct{})
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if len(word) < 4 {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
		if len(keywords) == 3 {
			break
		}
	}
	return keywords, nil
}

// CallCount returns the number of times ExtractKeywords was called.
func (m *MockKeywordExtractor) CallCount() int {
	return m.callCount
}
