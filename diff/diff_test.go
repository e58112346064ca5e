package diff

import (
	"testing"
	"time"

	"github.com/helixdata/desksync/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// embedded returns a record whose fingerprint matches its content, as the
// embedding updater would leave it.
func embedded(id, title, body string) core.VectorRecord {
	r := core.VectorRecord{ID: id, Title: title, Body: body, Embedding: []float32{0.5}}
	r.Fingerprint = core.RecordFingerprint(&r)
	return r
}

func ids(records []core.VectorRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestPartition(t *testing.T) {
	prior := []core.VectorRecord{
		embedded("1", "One", "unchanged body"),
		embedded("2", "Two", "will be deleted"),
	}
	current := []core.VectorRecord{
		{ID: "1", Title: "One", Body: "unchanged body"},
		{ID: "3", Title: "Three", Body: "brand new"},
	}

	res, err := Partition(current, prior)
	require.NoError(t, err)

	assert.Equal(t, []string{"3"}, ids(res.New))
	assert.Empty(t, res.Changed)
	assert.Equal(t, []string{"1"}, ids(res.Unchanged))
	assert.Equal(t, []string{"2"}, ids(res.Deleted))

	// Unchanged keeps the snapshot copy, embedding included.
	assert.NotEmpty(t, res.Unchanged[0].Embedding)
}

func TestPartitionChangedContent(t *testing.T) {
	prior := []core.VectorRecord{embedded("1", "Title", "old body")}
	current := []core.VectorRecord{{ID: "1", Title: "Title", Body: "new body"}}

	res, err := Partition(current, prior)
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, ids(res.Changed))
	assert.Empty(t, res.Unchanged)
	// The current version wins.
	assert.Equal(t, "new body", res.Changed[0].Body)
}

func TestPartitionTimestampFallback(t *testing.T) {
	// A snapshot record that was never embedded has no fingerprint; the
	// modification timestamps decide instead.
	mono := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	prior := []core.VectorRecord{{ID: "1", Title: "t", Body: "b", ModifiedTime: mono}}

	same := []core.VectorRecord{{ID: "1", Title: "t", Body: "b", ModifiedTime: mono}}
	res, err := Partition(same, prior)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(res.Unchanged))

	bumped := []core.VectorRecord{{ID: "1", Title: "t", Body: "b", ModifiedTime: mono.Add(time.Hour)}}
	res, err = Partition(bumped, prior)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(res.Changed))
}

func TestPartitionCoversUnionExactlyOnce(t *testing.T) {
	prior := []core.VectorRecord{
		embedded("a", "A", "1"),
		embedded("b", "B", "2"),
		embedded("c", "C", "3"),
	}
	current := []core.VectorRecord{
		{ID: "b", Title: "B", Body: "2"},       // unchanged
		{ID: "c", Title: "C", Body: "edited"},  // changed
		{ID: "d", Title: "D", Body: "new one"}, // new
	}

	res, err := Partition(current, prior)
	require.NoError(t, err)

	all := map[string]int{}
	for _, part := range [][]core.VectorRecord{res.New, res.Changed, res.Unchanged, res.Deleted} {
		for _, r := range part {
			all[r.ID]++
		}
	}

	assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1, "d": 1}, all,
		"every identifier in exactly one partition")
}

func TestPartitionDeterministic(t *testing.T) {
	prior := []core.VectorRecord{embedded("2", "B", "x"), embedded("1", "A", "y")}
	current := []core.VectorRecord{
		{ID: "3", Title: "C", Body: "z"},
		{ID: "1", Title: "A", Body: "y2"},
	}

	first, err := Partition(current, prior)
	require.NoError(t, err)
	second, err := Partition(current, prior)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Merged(), second.Merged())
}

func TestPartitionDuplicateID(t *testing.T) {
	dup := []core.VectorRecord{
		{ID: "1", Title: "a", Body: "b"},
		{ID: "1", Title: "a", Body: "b"},
	}

	_, err := Partition(dup, nil)
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = Partition(nil, dup)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestPartitionMissingID(t *testing.T) {
	_, err := Partition([]core.VectorRecord{{Title: "no id"}}, nil)
	assert.ErrorIs(t, err, core.ErrMissingID)
}

func TestMergedDropsDeleted(t *testing.T) {
	prior := []core.VectorRecord{embedded("1", "One", "b"), embedded("2", "Two", "b")}
	current := []core.VectorRecord{{ID: "1", Title: "One", Body: "b"}}

	res, err := Partition(current, prior)
	require.NoError(t, err)

	merged := res.Merged()
	assert.Equal(t, []string{"1"}, ids(merged))
}

func TestSummary(t *testing.T) {
	res := &Result{New: make([]core.VectorRecord, 2), Deleted: make([]core.VectorRecord, 1)}
	assert.Equal(t, "new=2 changed=0 unchanged=0 deleted=1", res.Summary())
}
