package enrich

import (
	"testing"

	"github.com/helixdata/desksync/core"
	"github.com/helixdata/desksync/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func TestIdentify(t *testing.T) {
	res := &diff.Result{
		New:       []core.VectorRecord{{ID: "3"}},
		Changed:   []core.VectorRecord{{ID: "1"}},
		Unchanged: []core.VectorRecord{{ID: "2"}},
		Deleted:   []core.VectorRecord{{ID: "4"}},
	}

	worklist := Identify(res)
	assert.Equal(t, []string{"1", "3"}, ids(worklist), "new and changed only, sorted")
}

func TestIdentifyUnchangedNeverListed(t *testing.T) {
	prior := []core.VectorRecord{embedded("1", "Title", "same body")}
	current := []core.VectorRecord{{ID: "1", Title: "Title", Body: "same body"}}

	res, err := diff.Partition(current, prior)
	require.NoError(t, err)

	assert.Empty(t, Identify(res), "identical content must not re-embed")
}

func TestWorklistMatchesIdentify(t *testing.T) {
	prior := []core.VectorRecord{
		embedded("1", "One", "same"),
		embedded("2", "Two", "old"),
	}
	current := []core.VectorRecord{
		{ID: "1", Title: "One", Body: "same"},
		{ID: "2", Title: "Two", Body: "edited"},
		{ID: "3", Title: "Three", Body: "fresh"},
	}

	res, err := diff.Partition(current, prior)
	require.NoError(t, err)

	fromResult := Identify(res)
	fromSnapshot := Worklist(res.Merged())
	assert.Equal(t, ids(fromResult), ids(fromSnapshot),
		"re-deriving from the merged snapshot gives the same work list")
	assert.Equal(t, []string{"2", "3"}, ids(fromSnapshot))
}
