package openai

import (
	"errors"
	"fmt"
)

// ErrKeywordModelRequired is returned when a keyword extractor is requested
// without a configured keyword model.
var ErrKeywordModelRequired = errors.New("keyword model required")

// keywordSystemPrompt builds the system prompt for keyword extraction.
func keywordSystemPrompt(max int) string {
	return fmt.Sprintf(`You extract search keywords from customer support articles.

Given an article, respond with JSON of the form:
{"keywords": ["keyword one", "keyword two"]}

Rules:
- at most %d keywords
- lowercase, 1-3 words each
- terms a customer would actually search for
- no generic filler terms ("help", "article", "support")
- respond with JSON only, no prose`, max)
}
