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


package stage

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"time"

	"github.com/helixdata/desksync/core"
)

// snapshotTimeLayout is the UTC timestamp embedded in snapshot filenames.
const snapshotTimeLayout = "20060102_150405"

var snapshotKeyRe = regexp.MustCompile(`vectordata_(\d{8}_\d{6})\.json$`)

// Snapshots manages the timestamped synced-snapshot files under
// SnapshotPrefix: saving new snapshots, locating the latest one and pruning
// old ones.
type Snapshots struct {
	store  Store
	logger *slog.Logger
}

// NewSnapshots creates a snapshot manager over the given store.
func NewSnapshots(store Store) *Snapshots {
	return &Snapshots{
		store:  store,
		logger: slog.Default().With("component", "snapshots"),
	}
}

// SnapshotKey returns the dataset key for a snapshot taken at t.
func SnapshotKey(t time.Time) string {
	return SnapshotPrefix + "vectordata_" + t.UTC().Format(snapshotTimeLayout) + ".json"
}

// Save writes records as a new snapshot stamped with the current UTC time
// and returns its key.
func (s *Snapshots) Save(ctx context.Context, records []core.VectorRecord) (string, error) {
	key := SnapshotKey(time.Now())
	if err := PutJSON(ctx, s.store, key, records); err != nil {
		return "", fmt.Errorf("saving snapshot: %w", err)
	}
	s.logger.Info("snapshot saved", "key", key, "records", len(records))
	return key, nil
}

// LatestKey returns the key of the most recent snapshot, determined by the
// timestamp embedded in the filename. Returns ErrNoSnapshot when none exist.
func (s *Snapshots) LatestKey(ctx context.Context) (string, error) {
	keys, err := s.store.List(ctx, SnapshotPrefix)
	if err != nil {
		return "", fmt.Errorf("listing snapshots: %w", err)
	}

	var latestKey string
	var latest time.Time
	for _, key := range keys {
		m := snapshotKeyRe.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		ts, err := time.Parse(snapshotTimeLayout, m[1])
		if err != nil {
			continue
		}
		if latestKey == "" || ts.After(latest) {
			latest = ts
			latestKey = key
		}
	}

	if latestKey == "" {
		return "", ErrNoSnapshot
	}
	return latestKey, nil
}

// Latest loads the most recent snapshot. Returns ErrNoSnapshot when none
// exist.
func (s *Snapshots) Latest(ctx context.Context) ([]core.VectorRecord, string, error) {
	key, err := s.LatestKey(ctx)
	if err != nil {
		return nil, "", err
	}

	var records []core.VectorRecord
	if err := GetJSON(ctx, s.store, key, &records); err != nil {
		return nil, "", fmt.Errorf("loading snapshot %s: %w", key, err)
	}
	return records, key, nil
}

// Prune deletes all but the keep most recent snapshots.
func (s *Snapshots) Prune(ctx context.Context, keep int) error {
	keys, err := s.store.List(ctx, SnapshotPrefix)
	if err != nil {
		return fmt.Errorf("listing snapshots: %w", err)
	}

	var snapshots []string
	for _, key := range keys {
		if snapshotKeyRe.MatchString(key) {
			snapshots = append(snapshots, key)
		}
	}
	// Filenames sort chronologically; newest last.
	sort.Strings(snapshots)

	if len(snapshots) <= keep {
		return nil
	}
	for _, key := range snapshots[:len(snapshots)-keep] {
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("pruning snapshot %s: %w", key, err)
		}
		s.logger.Info("pruned old snapshot", "key", key)
	}
	return nil
}
