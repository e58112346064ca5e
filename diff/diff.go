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


package diff

import (
	"fmt"
	"sort"

	"github.com/helixdata/desksync/core"
)

// Result partitions a sync run. Every identifier from the current fetch and
// the prior snapshot lands in exactly one partition.
type Result struct {
	// New holds current records absent from the prior snapshot.
	New []core.VectorRecord
	// Changed holds current records whose content differs from the snapshot
	// copy. The current version is kept; the source system is authoritative.
	Changed []core.VectorRecord
	// Unchanged holds the snapshot copies, preserving their embeddings and
	// fingerprints.
	Unchanged []core.VectorRecord
	// Deleted holds snapshot records absent from the current fetch.
	Deleted []core.VectorRecord
}

// Partition classifies current against prior by stable identifier.
//
// A record counts as changed when the fingerprint of its current content
// differs from the fingerprint stored in the snapshot. Snapshot records that
// were never embedded carry no fingerprint; for those the modification
// timestamps are compared instead.
//
// Duplicate identifiers within either input are a data error.
func Partition(current, prior []core.VectorRecord) (*Result, error) {
	priorByID := make(map[string]core.VectorRecord, len(prior))
	for _, rec := range prior {
		if rec.ID == "" {
			return nil, fmt.Errorf("%w: prior snapshot record without id", core.ErrMissingID)
		}
		if _, dup := priorByID[rec.ID]; dup {
			return nil, fmt.Errorf("%w: id %q in prior snapshot", ErrDuplicateID, rec.ID)
		}
		priorByID[rec.ID] = rec
	}

	res := &Result{}
	seen := make(map[string]struct{}, len(current))
	for _, rec := range current {
		if rec.ID == "" {
			return nil, fmt.Errorf("%w: current record without id", core.ErrMissingID)
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("%w: id %q in current fetch", ErrDuplicateID, rec.ID)
		}
		seen[rec.ID] = struct{}{}

		prev, exists := priorByID[rec.ID]
		switch {
		case !exists:
			res.New = append(res.New, rec)
		case changed(&rec, &prev):
			res.Changed = append(res.Changed, rec)
		default:
			res.Unchanged = append(res.Unchanged, prev)
		}
	}

	for _, prev := range prior {
		if _, exists := seen[prev.ID]; !exists {
			res.Deleted = append(res.Deleted, prev)
		}
	}

	sortByID(res.New)
	sortByID(res.Changed)
	sortByID(res.Unchanged)
	sortByID(res.Deleted)
	return res, nil
}

func changed(cur, prev *core.VectorRecord) bool {
	if prev.Fingerprint != "" {
		return core.RecordFingerprint(cur) != prev.Fingerprint
	}
	return !cur.ModifiedTime.Equal(prev.ModifiedTime)
}

// Merged returns the next snapshot: new and changed records from the current
// fetch plus the untouched snapshot copies, sorted by identifier. Deleted
// records are dropped; the local store always converges on the source.
func (r *Result) Merged() []core.VectorRecord {
	merged := make([]core.VectorRecord, 0, len(r.New)+len(r.Changed)+len(r.Unchanged))
	merged = append(merged, r.New...)
	merged = append(merged, r.Changed...)
	merged = append(merged, r.Unchanged...)
	sortByID(merged)
	return merged
}

// Summary returns the partition sizes for logging.
func (r *Result) Summary() string {
	return fmt.Sprintf("new=%d changed=%d unchanged=%d deleted=%d",
		len(r.New), len(r.Changed), len(r.Unchanged), len(r.Deleted))
}

func sortByID(records []core.VectorRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
}
