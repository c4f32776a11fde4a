// Package extract splits the plain text of a court decision into its
// majority, concurring and dissenting opinions using the textual conventions
// that introduce them ("X, J., delivered the opinion of the court.",
// "X, J., concurring.", "X, J., dissenting.").
package extract

import (
	"strings"

	"github.com/ppiankov/opinionsplit/internal/model"
)

// Markers that open trailing matter after the last opinion
var trailingMarkers = []string{"NOTES", "APPENDIXES"}

// Opinion introductions that can bleed into the end of the previous span
var introSuffixes = []string{"concurring.", "dissenting."}

// Options selects which secondary opinions are emitted. They never change
// where boundaries are found.
type Options struct {
	IncludeConcurring    bool
	IncludeSecondDissent bool
}

// DefaultOptions includes every opinion the splitter can recover
func DefaultOptions() Options {
	return Options{
		IncludeConcurring:    true,
		IncludeSecondDissent: true,
	}
}

// OptionsFromModel converts configuration to splitter options
func OptionsFromModel(cfg model.SplitConfig) Options {
	return Options{
		IncludeConcurring:    cfg.IncludeConcurring,
		IncludeSecondDissent: cfg.IncludeSecondDissent,
	}
}

// Splitter cuts decisions into labeled opinions. It holds no state between
// calls and is safe for concurrent use.
type Splitter struct {
	opts Options
}

// NewSplitter creates a splitter with the given options
func NewSplitter(opts Options) *Splitter {
	return &Splitter{opts: opts}
}

// Options returns the splitter's options
func (s *Splitter) Options() Options {
	return s.opts
}

// span is a half-open range of the source text
type span struct {
	category model.Category
	start    int
	end      int
}

// Split returns the opinions of doc in document order. The boolean is false
// when no majority opinion was found, meaning doc is not a decision and
// should be dropped.
func (s *Splitter) Split(doc model.Document) ([]model.Opinion, bool) {
	return s.SplitBoundaries(doc, ResolveBoundaries(doc.Text, doc.PerCuriam))
}

// SplitBoundaries cuts doc at already resolved boundaries
func (s *Splitter) SplitBoundaries(doc model.Document, b Boundaries) ([]model.Opinion, bool) {
	text := doc.Text
	majority, ok := b.Offset(SlotMajority)
	if !ok {
		return nil, false
	}

	// endAt returns the first resolved offset among slots, or end of text
	endAt := func(slots ...Slot) int {
		for _, slot := range slots {
			if offset, ok := b.Offset(slot); ok {
				return offset
			}
		}
		return len(text)
	}

	leading := model.CategoryMajority
	if doc.PerCuriam {
		leading = model.CategoryPerCuriam
	}
	spans := []span{{
		category: leading,
		start:    majority,
		end:      endAt(SlotFirstConcurring, SlotFirstDissenting),
	}}

	if offset, ok := b.Offset(SlotFirstConcurring); ok && s.opts.IncludeConcurring {
		spans = append(spans, span{
			category: model.CategoryConcurring,
			start:    offset,
			end:      endAt(SlotSecondConcurring, SlotFirstDissenting),
		})
	}
	if offset, ok := b.Offset(SlotFirstDissenting); ok {
		spans = append(spans, span{
			category: model.CategoryDissenting,
			start:    offset,
			end:      endAt(SlotSecondDissenting),
		})
	}
	if offset, ok := b.Offset(SlotSecondDissenting); ok && s.opts.IncludeSecondDissent {
		spans = append(spans, span{
			category: model.CategorySecondDissenting,
			start:    offset,
			end:      len(text),
		})
	}

	opinions := make([]model.Opinion, len(spans))
	for i, sp := range spans {
		body := trimNextIntro(text[sp.start:sp.end])
		if i == len(spans)-1 {
			body = trimTrailingMatter(body)
		}

		opinions[i] = model.Opinion{
			Author:   s.author(doc, sp),
			Category: sp.category,
			Text:     strings.TrimSpace(body),
		}
	}

	return opinions, true
}

func (s *Splitter) author(doc model.Document, sp span) *string {
	if sp.category == model.CategoryPerCuriam {
		return model.StringPtr(model.AuthorPerCuriam)
	}
	// start-1 keeps the keyphrase's own period out of the sentence
	if name, ok := AttributePreceding(doc.Text, sp.start-1); ok {
		return &name
	}
	return nil
}

// trimNextIntro drops a trailing sentence that introduces the next opinion,
// e.g. "... our judgment. JUSTICE HOLMES, dissenting." keeps "... our judgment. "
func trimNextIntro(text string) string {
	matched := false
	for _, suffix := range introSuffixes {
		if strings.HasSuffix(text, suffix) {
			matched = true
			break
		}
	}
	if !matched {
		return text
	}

	p := lastSentenceBreak(text[:len(text)-1], "Mr.")
	if p < 0 {
		return ""
	}
	// Keep the terminator and the character after it
	end := p + 2
	if end > len(text) {
		end = len(text)
	}
	return text[:end]
}

// trimTrailingMatter cuts notes or appendixes following the last opinion
func trimTrailingMatter(text string) string {
	for _, marker := range trailingMarkers {
		if i := strings.Index(text, marker); i >= 0 {
			return text[:i]
		}
	}
	return text
}
