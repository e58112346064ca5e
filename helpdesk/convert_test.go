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


package helpdesk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixdata/desksync/core"
)

func TestConvert(t *testing.T) {
	modified := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	articles := []core.Article{
		{
			ID:           "b2",
			Title:        "Second",
			Body:         "second body",
			Tags:         []string{"billing"},
			Category:     "Account",
			Link:         "https://desk.example.com/articles/b2",
			ModifiedTime: modified,
		},
		{ID: "a1", Title: "First", Body: "first body"},
	}

	records := Convert(articles)
	require.Len(t, records, 2)

	// Sorted by ID regardless of input order.
	assert.Equal(t, "a1", records[0].ID)
	assert.Equal(t, "b2", records[1].ID)

	rec := records[1]
	assert.Equal(t, "Second", rec.Title)
	assert.Equal(t, "second body", rec.Body)
	assert.Equal(t, []string{"billing"}, rec.Tags)
	assert.Equal(t, "Account", rec.Category)
	assert.Equal(t, "https://desk.example.com/articles/b2", rec.Link)
	assert.True(t, rec.ModifiedTime.Equal(modified))

	// Derived fields are left for the enrichment stage.
	assert.Empty(t, rec.Fingerprint)
	assert.Empty(t, rec.Embedding)
	assert.Empty(t, rec.Keywords)
	assert.Empty(t, rec.CombinedText)
}

func TestConvertDropsInvalid(t *testing.T) {
	articles := []core.Article{
		{ID: "a1", Title: "Good", Body: "body"},
		{ID: "a2", Title: "No Body"},
	}

	records := Convert(articles)
	require.Len(t, records, 1)
	assert.Equal(t, "a1", records[0].ID)
}

func TestConvertEmpty(t *testing.T) {
	assert.Empty(t, Convert(nil))
}
