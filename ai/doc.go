// Package ai defines the interfaces for the external AI services the
// pipeline depends on: embedding generation and keyword extraction.
//
// Concrete implementations live in the subpackages openai (any
// OpenAI-compatible API) and bedrock (the managed foundation-model service).
// The mock subpackage provides configurable fakes for tests.
package ai
