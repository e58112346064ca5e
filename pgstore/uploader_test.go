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
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixdata/desksync/core"
)

func TestFormatVector(t *testing.T) {
	assert.Equal(t, "[]", formatVector(nil))
	assert.Equal(t, "[1]", formatVector([]float32{1}))
	assert.Equal(t, "[0.5,-0.25,3]", formatVector([]float32{0.5, -0.25, 3}))
}

func TestSchemaStatements(t *testing.T) {
	stmts := schemaStatements("article_embeddings")
	require.Len(t, stmts, 2)

	assert.Contains(t, stmts[0], "CREATE TABLE IF NOT EXISTS article_embeddings")
	assert.Contains(t, stmts[0], "embedding vector")
	assert.Contains(t, stmts[0], "cmetadata JSONB")
	assert.Contains(t, stmts[1], "USING GIN (cmetadata)")
}

func TestDeleteStatements(t *testing.T) {
	query, args, err := deleteAllStmt("article_embeddings")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM article_embeddings", query)
	assert.Empty(t, args)

	query, args, err = deleteStmt("article_embeddings", []string{"a1", "a2"})
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM article_embeddings WHERE id IN ($1,$2)", query)
	assert.Equal(t, []any{"a1", "a2"}, args)
}

func TestInsertStmt(t *testing.T) {
	synced := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := core.VectorRecord{
		ID:           "a1",
		Title:        "Reset password",
		Body:         "Open settings.",
		CombinedText: "Reset password\n\nKeywords: password, reset\n\nOpen settings.",
		Keywords:     []string{"password", "reset"},
		Tags:         []string{"account"},
		Category:     "Account",
		Link:         "https://desk.example.com/a1",
		Fingerprint:  "abc123",
		Embedding:    []float32{0.1, 0.2},
		LastSynced:   synced,
	}

	query, args, err := insertStmt("article_embeddings", &rec)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO article_embeddings (id,title,content,embedding,cmetadata,fingerprint,last_synced) "+
			"VALUES ($1,$2,$3,$4::vector,$5,$6,$7)", query)
	require.Len(t, args, 7)

	assert.Equal(t, "a1", args[0])
	assert.Equal(t, rec.CombinedText, args[2])
	assert.Equal(t, "[0.1,0.2]", args[3])
	assert.Equal(t, "abc123", args[5])
	assert.Equal(t, synced, args[6])

	var meta map[string]any
	require.NoError(t, json.Unmarshal(args[4].([]byte), &meta))
	assert.Equal(t, "Reset password", meta["title"])
	assert.Equal(t, "Account", meta["category"])
	assert.Equal(t, []any{"password", "reset"}, meta["keywords"])
	assert.Equal(t, []any{"account"}, meta["tags"])
}

func TestMetadataJSONOmitsEmpty(t *testing.T) {
	rec := core.VectorRecord{ID: "a1", Title: "Bare", Body: "body"}

	raw, err := metadataJSON(&rec)
	require.NoError(t, err)

	var meta map[string]any
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.NotContains(t, meta, "tags")
	assert.NotContains(t, meta, "keywords")
	assert.NotContains(t, meta, "department")
	assert.NotContains(t, meta, "modified_time")
}
