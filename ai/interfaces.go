package ai

import "context"

// Embedder generates vector embeddings from article text.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as the
	// input texts. Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// KeywordExtractor derives search keywords from article text.
// Implementations must be thread-safe for concurrent use.
type KeywordExtractor interface {
	// ExtractKeywords analyzes text and returns a short list of search
	// keywords, lowercase and deduplicated. Returns an empty slice when the
	// model finds nothing usable.
	ExtractKeywords(ctx context.Context, text string) ([]string, error)
}
