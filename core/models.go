package core

import "time"

// Article represents a support article as fetched from the helpdesk API.
// Articles are read-only after fetching; a newer fetch supersedes them.
type Article struct {
	ID           string
	Title        string
	Body         string // plain text, HTML already stripped
	Summary      string
	Tags         []string
	Category     string
	SubCategory  string
	Department   string
	Link         string
	Permission   string
	Status       string
	Trashed      bool
	CreatedTime  time.Time
	ModifiedTime time.Time
}

// Published reports whether the article is visible to registered portal
// users. Only published articles enter the sync pipeline.
func (a *Article) Published() bool {
	return a.Status == StatusPublished && !a.Trashed
}

// Article status values as reported by the helpdesk API.
const (
	StatusPublished = "Published"
	StatusDraft     = "Draft"
)

// VectorRecord is an article in the vector-store ingestion schema.
// It is created by the format converter, enriched with an embedding by the
// embedding updater and persisted by the Postgres uploader.
type VectorRecord struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Summary      string    `json:"summary,omitempty"`
	Keywords     []string  `json:"keywords,omitempty"`
	CombinedText string    `json:"combined_text,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Category     string    `json:"category,omitempty"`
	SubCategory  string    `json:"sub_category,omitempty"`
	Department   string    `json:"department,omitempty"`
	Link         string    `json:"link,omitempty"`
	CreatedTime  time.Time `json:"created_time"`
	ModifiedTime time.Time `json:"modified_time"`

	// Fingerprint is the content hash of the article content that produced
	// Embedding. Empty until the record has been embedded at least once.
	Fingerprint string    `json:"fingerprint,omitempty"`
	Embedding   []float32 `json:"embedding,omitempty"`
	LastSynced  time.Time `json:"last_synced,omitempty"`
}

// EmbeddingText returns the text fed to the embedding model: the combined
// text built by keyword enrichment when present, otherwise title and body.
func (r *VectorRecord) EmbeddingText() string {
	if r.CombinedText != "" {
		return r.CombinedText
	}
	return r.Title + "\n\n" + r.Body
}

// Decision classifies a record during a sync run by comparing the current
// fetch against the prior staged snapshot. Decisions are derived fresh on
// every run and never persisted.
type Decision int

const (
	// DecisionNew marks a record present in the current fetch only.
	DecisionNew Decision = iota + 1
	// DecisionChanged marks a record whose content differs from the snapshot.
	DecisionChanged
	// DecisionUnchanged marks a record identical to the snapshot copy.
	DecisionUnchanged
	// DecisionDeleted marks a record present in the prior snapshot only.
	DecisionDeleted
)

// String returns the lowercase name of the decision.
func (d Decision) String() string {
	switch d {
	case DecisionNew:
		return "new"
	case DecisionChanged:
		return "changed"
	case DecisionUnchanged:
		return "unchanged"
	case DecisionDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}
