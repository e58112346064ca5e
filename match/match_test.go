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


package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixdata/desksync/core"
)

func TestScore(t *testing.T) {
	m := NewMatcher(0.9)

	assert.Equal(t, 1.0, m.Score("Reset Password", "reset password"))
	assert.Equal(t, 1.0, m.Score("  Reset Password ", "Reset Password"))

	near := m.Score("How to reset your password", "How to reset your passwords")
	assert.Greater(t, near, 0.9)

	far := m.Score("Billing overview", "Exporting reports")
	assert.Less(t, far, 0.9)
}

func TestMatch(t *testing.T) {
	m := NewMatcher(0.9)

	articles := []core.Article{
		{ID: "a2", Title: "Exporting reports"},
		{ID: "a1", Title: "How to reset your password"},
		{ID: "a3", Title: "Something brand new"},
	}
	existing := []core.VectorRecord{
		{ID: "v1", Title: "How to reset your passwords"},
		{ID: "v2", Title: "Exporting Reports"},
	}

	report := m.Match(articles, existing)

	require.Len(t, report.Matched, 2)
	// Articles are processed in ID order.
	assert.Equal(t, "a1", report.Matched[0].ArticleID)
	assert.Equal(t, "v1", report.Matched[0].RecordID)
	assert.Equal(t, "a2", report.Matched[1].ArticleID)
	assert.Equal(t, "v2", report.Matched[1].RecordID)

	assert.Equal(t, []string{"a3"}, report.Unmatched)
	assert.Equal(t, 0.9, report.Threshold)
}

func TestMatchConsumesRecordsOnce(t *testing.T) {
	m := NewMatcher(0.8)

	articles := []core.Article{
		{ID: "a1", Title: "Password reset"},
		{ID: "a2", Title: "Password reset"},
	}
	existing := []core.VectorRecord{
		{ID: "v1", Title: "Password reset"},
	}

	report := m.Match(articles, existing)

	require.Len(t, report.Matched, 1)
	assert.Equal(t, "a1", report.Matched[0].ArticleID)
	assert.Equal(t, []string{"a2"}, report.Unmatched)
}

func TestMatchEmptyInputs(t *testing.T) {
	m := NewMatcher(0.9)

	report := m.Match(nil, nil)
	assert.Empty(t, report.Matched)
	assert.Empty(t, report.Unmatched)

	report = m.Match([]core.Article{{ID: "a1", Title: "Orphan"}}, nil)
	assert.Equal(t, []string{"a1"}, report.Unmatched)
}
