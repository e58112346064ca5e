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
	"log/slog"
	"sort"

	"github.com/helixdata/desksync/core"
)

// Convert maps fetched articles into vector records ready for the diff and
// embedding stages. Embedding, fingerprint, keywords and combined text stay
// empty here; they are filled in during enrichment. Articles that fail
// record validation are dropped with a warning rather than failing the
// batch. The result is sorted by ID so downstream stages see a stable
// order.
func Convert(articles []core.Article) []core.VectorRecord {
	logger := slog.Default().With("component", "helpdesk")

	records := make([]core.VectorRecord, 0, len(articles))
	for _, a := range articles {
		rec := core.VectorRecord{
			ID:           a.ID,
			Title:        a.Title,
			Body:         a.Body,
			Summary:      a.Summary,
			Tags:         a.Tags,
			Category:     a.Category,
			SubCategory:  a.SubCategory,
			Department:   a.Department,
			Link:         a.Link,
			CreatedTime:  a.CreatedTime,
			ModifiedTime: a.ModifiedTime,
		}
		if err := core.ValidateRecord(&rec); err != nil {
			logger.Warn("dropping unconvertible article", "id", a.ID, "err", err)
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records
}
