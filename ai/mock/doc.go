// Package mock provides test double implementations of the ai interfaces.
//
// The mocks allow tests to run without external AI services and enable
// controlled, deterministic behavior:
//
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{0.1, 0.2, 0.3}, nil
//	}
package mock
