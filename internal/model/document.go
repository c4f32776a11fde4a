package model

// Document is the plain-text decision handed to the splitter.
// The splitter reads Text and PerCuriam only; the rest is carried for reporting.
type Document struct {
	ID        string `json:"id"`
	Text      string `json:"-"`
	PerCuriam bool   `json:"per_curiam"`
	Source    string `json:"source,omitempty"` // Path or adapter the document came from
	URL       string `json:"url,omitempty"`    // Canonical URL of the decision
	RawLength int    `json:"raw_length"`       // Length of the body before HTML stripping
}

// SkipReason explains why a document produced no opinions
type SkipReason string

const (
	SkipDismissal  SkipReason = "dismissal"   // Short text without a majority keyphrase
	SkipNoMajority SkipReason = "no_majority" // No majority boundary could be located
)

// Decision is the per-document outcome of a split
type Decision struct {
	Document Document   `json:"document"`
	Opinions []Opinion  `json:"opinions,omitempty"`
	Skipped  bool       `json:"skipped"`
	Reason   SkipReason `json:"reason,omitempty"`
	Cached   bool       `json:"cached,omitempty"`
}

// Record is a flattened export row, one per opinion
type Record struct {
	ID         string   `json:"id"`
	DocumentID string   `json:"document_id"`
	URL        string   `json:"url,omitempty"`
	PerCuriam  bool     `json:"per_curiam"`
	Position   int      `json:"position"` // 0-based order within the decision
	Author     *string  `json:"author"`
	Category   Category `json:"category"`
	Text       string   `json:"text"`
}
