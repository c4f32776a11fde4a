package model

// Category labels the role an opinion plays within a decision
type Category string

const (
	CategoryMajority         Category = "majority"          // Opinion of the court, signed
	CategoryConcurring       Category = "concurring"        // First concurrence
	CategoryDissenting       Category = "dissenting"        // First dissent
	CategorySecondDissenting Category = "second_dissenting" // Second dissent
	CategoryPerCuriam        Category = "per_curiam"        // Unsigned opinion of the court
)

// AuthorPerCuriam is the author value recorded for unsigned opinions
const AuthorPerCuriam = "per_curiam"

// Opinion is one labeled, separately authored segment of a decision
type Opinion struct {
	Author   *string  `json:"author"`   // Normalized justice name ("justice black"), nil if unattributable
	Category Category `json:"category"` // Role of the opinion
	Text     string   `json:"text"`     // Trimmed segment text
}

// AuthorName returns the author or "" when the opinion is unattributed
func (o Opinion) AuthorName() string {
	if o.Author == nil {
		return ""
	}
	return *o.Author
}

// IsLeading reports whether the opinion is the opinion of the court
func (o Opinion) IsLeading() bool {
	return o.Category == CategoryMajority || o.Category == CategoryPerCuriam
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
