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


package enrich

import (
	"sort"

	"github.com/helixdata/desksync/core"
	"github.com/helixdata/desksync/diff"
)

// Identify returns the records that require (re-)embedding: the union of the
// new and changed partitions, sorted by identifier. Unchanged records are
// skipped so they never hit the embedding API twice for the same content.
func Identify(res *diff.Result) []core.VectorRecord {
	worklist := make([]core.VectorRecord, 0, len(res.New)+len(res.Changed))
	worklist = append(worklist, res.New...)
	worklist = append(worklist, res.Changed...)
	sort.Slice(worklist, func(i, j int) bool {
		return worklist[i].ID < worklist[j].ID
	})
	return worklist
}

// Worklist re-derives the embedding work list from a merged snapshot alone:
// every record whose stored fingerprint no longer covers its content. The
// result matches Identify for a snapshot produced from the same sync run,
// which lets the decision stay ephemeral between pipeline steps.
func Worklist(snapshot []core.VectorRecord) []core.VectorRecord {
	var worklist []core.VectorRecord
	for _, rec := range snapshot {
		if rec.Stale() {
			worklist = append(worklist, rec)
		}
	}
	sort.Slice(worklist, func(i, j int) bool {
		return worklist[i].ID < worklist[j].ID
	})
	return worklist
}
