// Package pgstore persists enriched vector records in a pgvector-enabled
// Postgres table. Rows carry the embedding, the combined text it was
// computed from, and a JSONB metadata document indexed for filtering.
// Uploads go through a delete-then-insert transaction keyed by record ID,
// so repeating a sync produces the same table contents.
package pgstore
