package pipeline

import (
	"strings"

	"github.com/ppiankov/opinionsplit/internal/extract"
	"github.com/ppiankov/opinionsplit/internal/model"
)

// IsDismissal reports whether doc looks like a denial of certiorari or other
// dismissal: signed, short, and never saying who delivered the opinion.
func IsDismissal(doc model.Document, minLength int) bool {
	if doc.PerCuriam {
		return false
	}

	length := doc.RawLength
	if length == 0 {
		length = len(doc.Text)
	}
	if length >= minLength {
		return false
	}

	return !strings.Contains(strings.ToLower(doc.Text), extract.KeyMajority)
}
