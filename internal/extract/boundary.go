package extract

import "strings"

// Slot names a boundary between opinions
type Slot int

const (
	SlotMajority Slot = iota
	SlotFirstConcurring
	SlotSecondConcurring
	SlotFirstDissenting
	SlotSecondDissenting

	slotCount
)

func (s Slot) String() string {
	switch s {
	case SlotMajority:
		return "majority"
	case SlotFirstConcurring:
		return "first_concurring"
	case SlotSecondConcurring:
		return "second_concurring"
	case SlotFirstDissenting:
		return "first_dissenting"
	case SlotSecondDissenting:
		return "second_dissenting"
	default:
		return "unknown"
	}
}

// Boundaries maps each slot to the offset where that opinion's text starts.
// Offsets are non-decreasing in slot order: every search starts at Bookmark,
// the largest offset resolved so far.
type Boundaries struct {
	offsets  [slotCount]int
	found    [slotCount]bool
	bookmark int
}

// Offset returns the start offset for slot, or false if it was not found
func (b Boundaries) Offset(s Slot) (int, bool) {
	if s < 0 || s >= slotCount || !b.found[s] {
		return 0, false
	}
	return b.offsets[s], true
}

// Has reports whether slot was resolved
func (b Boundaries) Has(s Slot) bool {
	_, ok := b.Offset(s)
	return ok
}

// Bookmark is the floor for the next search
func (b Boundaries) Bookmark() int {
	return b.bookmark
}

// with returns a copy of b with slot set and the bookmark advanced
func (b Boundaries) with(s Slot, offset int, ok bool) Boundaries {
	if !ok {
		return b
	}
	b.offsets[s] = offset
	b.found[s] = true
	if offset > b.bookmark {
		b.bookmark = offset
	}
	return b
}

// resolve searches for slot from the current bookmark
func (b Boundaries) resolve(text string, s Slot, keyphrase string, fallback ...string) Boundaries {
	offset, ok := Locate(text, b.bookmark, keyphrase, fallback...)
	return b.with(s, offset, ok)
}

// ResolveBoundaries locates every opinion boundary in text. When no majority
// opinion is found the other slots are left unresolved.
func ResolveBoundaries(text string, perCuriam bool) Boundaries {
	var b Boundaries

	if perCuriam {
		// Unsigned: no author to validate against
		i := strings.Index(foldCase(text), KeyPerCuriam)
		b = b.with(SlotMajority, i+len(KeyPerCuriam), i >= 0)
	} else {
		b = b.resolve(text, SlotMajority, KeyMajority, KeyMajorityJoin)
	}
	if !b.Has(SlotMajority) {
		return b
	}

	b = b.resolve(text, SlotFirstConcurring, KeyConcurring, KeyConcurringJudgment)
	if b.Has(SlotFirstConcurring) {
		b = b.resolve(text, SlotSecondConcurring, KeyConcurring)
	}

	b = b.resolve(text, SlotFirstDissenting, KeyDissenting)
	if b.Has(SlotFirstDissenting) {
		b = b.resolve(text, SlotSecondDissenting, KeyDissenting)
	}

	return b
}
