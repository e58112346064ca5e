// Package enrich identifies which synced records need a fresh embedding and
// computes those embeddings. Unchanged records never re-embed; failed
// records are skipped, logged and retried on the next scheduled run.
package enrich
