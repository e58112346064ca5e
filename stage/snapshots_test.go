package stage

import (
	"context"
	"testing"
	"time"

	"github.com/helixdata/desksync/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotKey(t *testing.T) {
	ts := time.Date(2026, 8, 29, 14, 30, 5, 0, time.UTC)
	assert.Equal(t, "helpdesk-data/synced/vectordata_20260829_143005.json", SnapshotKey(ts))
}

func TestSnapshotsSaveAndLatest(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	snaps := NewSnapshots(store)

	_, err := snaps.LatestKey(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot, "empty store has no snapshot")

	records := []core.VectorRecord{{ID: "1", Title: "t", Body: "b"}}
	key, err := snaps.Save(ctx, records)
	require.NoError(t, err)
	assert.Regexp(t, `^helpdesk-data/synced/vectordata_\d{8}_\d{6}\.json$`, key)

	got, gotKey, err := snaps.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, key, gotKey)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestSnapshotsLatestPicksNewest(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	snaps := NewSnapshots(store)

	older := SnapshotKey(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	newer := SnapshotKey(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, PutJSON(ctx, store, older, []core.VectorRecord{{ID: "old"}}))
	require.NoError(t, PutJSON(ctx, store, newer, []core.VectorRecord{{ID: "new"}}))
	// Stray files in the folder are ignored.
	require.NoError(t, store.Put(ctx, SnapshotPrefix+"README.txt", []byte("x")))

	got, key, err := snaps.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer, key)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)
}

func TestSnapshotsPrune(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	snaps := NewSnapshots(store)

	times := []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}
	for _, ts := range times {
		require.NoError(t, PutJSON(ctx, store, SnapshotKey(ts), []core.VectorRecord{}))
	}

	require.NoError(t, snaps.Prune(ctx, 3))

	keys, err := store.List(ctx, SnapshotPrefix)
	require.NoError(t, err)
	assert.Equal(t, []string{
		SnapshotKey(times[2]),
		SnapshotKey(times[3]),
		SnapshotKey(times[4]),
	}, keys)

	// Pruning below the threshold is a no-op.
	require.NoError(t, snaps.Prune(ctx, 3))
	keys, err = store.List(ctx, SnapshotPrefix)
	require.NoError(t, err)
	assert.Len(t, keys, 3)
}
