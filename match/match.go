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


// Package match links freshly fetched helpdesk articles to pre-existing
// vector records by title similarity. It exists for the initial adoption
// of a vector store that predates this pipeline: records there carry no
// source IDs, so titles are the only join key available.
package match

import (
	"sort"
	"strings"

	"github.com/xrash/smetrics"

	"github.com/helixdata/desksync/core"
)

// Jaro-Winkler parameters: standard prefix boost and prefix length.
const (
	boostThreshold = 0.7
	prefixSize     = 4
)

// Pair is one accepted title match.
type Pair struct {
	ArticleID    string  `json:"article_id"`
	ArticleTitle string  `json:"article_title"`
	RecordID     string  `json:"record_id"`
	RecordTitle  string  `json:"record_title"`
	Score        float64 `json:"score"`
}

// Report is the outcome of matching a fetch batch against existing records.
type Report struct {
	Threshold float64  `json:"threshold"`
	Matched   []Pair   `json:"matched"`
	Unmatched []string `json:"unmatched_article_ids"`
}

// Matcher scores article titles against record titles with the
// Jaro-Winkler metric.
type Matcher struct {
	threshold float64
}

// NewMatcher returns a matcher accepting scores at or above threshold.
func NewMatcher(threshold float64) *Matcher {
	return &Matcher{threshold: threshold}
}

// Score returns the Jaro-Winkler similarity of two titles, case-folded
// and whitespace-trimmed. 1 is an exact match.
func (m *Matcher) Score(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	return smetrics.JaroWinkler(a, b, boostThreshold, prefixSize)
}

// Match pairs each article with its best-scoring existing record. A record
// is consumed by at most one article; ties go to the article considered
// first (articles are processed in ID order for determinism). Articles
// whose best score falls below the threshold are reported unmatched.
func (m *Matcher) Match(articles []core.Article, existing []core.VectorRecord) Report {
	report := Report{Threshold: m.threshold}

	sorted := make([]core.Article, len(articles))
	copy(sorted, articles)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	taken := make(map[int]bool, len(existing))
	for _, article := range sorted {
		best := -1
		bestScore := 0.0
		for i, rec := range existing {
			if taken[i] {
				continue
			}
			score := m.Score(article.Title, rec.Title)
			if score > bestScore {
				best, bestScore = i, score
			}
		}

		if best < 0 || bestScore < m.threshold {
			report.Unmatched = append(report.Unmatched, article.ID)
			continue
		}

		taken[best] = true
		report.Matched = append(report.Matched, Pair{
			ArticleID:    article.ID,
			ArticleTitle: article.Title,
			RecordID:     existing[best].ID,
			RecordTitle:  existing[best].Title,
			Score:        bestScore,
		})
	}

	return report
}
