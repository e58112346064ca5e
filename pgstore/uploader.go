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


package pgstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"github.com/helixdata/desksync/core"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Uploader writes vector records into the embeddings table.
type Uploader struct {
	client *Client
	table  string
	logger *slog.Logger
}

// NewUploader creates an uploader targeting the given table.
func NewUploader(client *Client, table string) *Uploader {
	return &Uploader{
		client: client,
		table:  table,
		logger: slog.Default().With("component", "pgstore"),
	}
}

// schemaStatements returns the DDL for the embeddings table. The vector
// extension must already be installed; creating it needs superuser rights
// the pipeline role does not have.
func schemaStatements(table string) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	embedding vector,
	cmetadata JSONB,
	fingerprint TEXT,
	last_synced TIMESTAMPTZ
)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_cmetadata_idx ON %s USING GIN (cmetadata)`, table, table),
	}
}

// EnsureSchema creates the embeddings table and its metadata index if they
// do not exist yet.
func (u *Uploader) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements(u.table) {
		if _, err := u.client.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
	}
	return nil
}

// metadataJSON builds the cmetadata document stored next to the embedding.
func metadataJSON(rec *core.VectorRecord) ([]byte, error) {
	meta := map[string]any{
		"title":    rec.Title,
		"link":     rec.Link,
		"category": rec.Category,
	}
	if rec.SubCategory != "" {
		meta["sub_category"] = rec.SubCategory
	}
	if rec.Department != "" {
		meta["department"] = rec.Department
	}
	if len(rec.Tags) > 0 {
		meta["tags"] = rec.Tags
	}
	if len(rec.Keywords) > 0 {
		meta["keywords"] = rec.Keywords
	}
	if !rec.ModifiedTime.IsZero() {
		meta["modified_time"] = rec.ModifiedTime.UTC()
	}
	return json.Marshal(meta)
}

// deleteAllStmt empties the table.
func deleteAllStmt(table string) (string, []any, error) {
	return psql.Delete(table).ToSql()
}

// deleteStmt removes the given record IDs.
func deleteStmt(table string, ids []string) (string, []any, error) {
	return psql.Delete(table).Where(sq.Eq{"id": ids}).ToSql()
}

// insertStmt builds the insert for one record. The embedding travels as a
// pgvector text literal cast server-side.
func insertStmt(table string, rec *core.VectorRecord) (string, []any, error) {
	meta, err := metadataJSON(rec)
	if err != nil {
		return "", nil, fmt.Errorf("marshaling metadata for %s: %w", rec.ID, err)
	}
	return psql.Insert(table).
		Columns("id", "title", "content", "embedding", "cmetadata", "fingerprint", "last_synced").
		Values(rec.ID, rec.Title, rec.EmbeddingText(), sq.Expr("?::vector", formatVector(rec.Embedding)), meta, rec.Fingerprint, rec.LastSynced).
		ToSql()
}

// Upload replaces the stored rows for the given records. Each record is
// deleted by ID and re-inserted, so re-running a sync is idempotent. With
// fullRefresh the whole table is emptied first; an empty records slice then
// leaves an empty table, which is a valid outcome, not an error.
func (u *Uploader) Upload(ctx context.Context, records []core.VectorRecord, fullRefresh bool) error {
	for i := range records {
		if len(records[i].Embedding) == 0 {
			return fmt.Errorf("%w: record %s has no embedding", ErrNotEmbedded, records[i].ID)
		}
	}

	err := u.client.InTx(ctx, func(tx *sql.Tx) error {
		if fullRefresh {
			query, args, err := deleteAllStmt(u.table)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("emptying table: %w", err)
			}
		} else if len(records) > 0 {
			ids := make([]string, len(records))
			for i := range records {
				ids[i] = records[i].ID
			}
			query, args, err := deleteStmt(u.table, ids)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("deleting stale rows: %w", err)
			}
		}

		for i := range records {
			query, args, err := insertStmt(u.table, &records[i])
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("inserting record %s: %w", records[i].ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.logger.Info("uploaded records", "count", len(records), "full_refresh", fullRefresh)
	return nil
}

// Delete removes the rows for record IDs that disappeared from the source.
func (u *Uploader) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := deleteStmt(u.table, ids)
	if err != nil {
		return err
	}
	if _, err := u.client.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deleting records: %w", err)
	}

	u.logger.Info("deleted records", "count", len(ids))
	return nil
}

// Count reports how many rows the table holds.
func (u *Uploader) Count(ctx context.Context) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From(u.table).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := u.client.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}
