package extract

import (
	"testing"

	"github.com/ppiankov/opinionsplit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opinion(author string, category model.Category, text string) model.Opinion {
	op := model.Opinion{Category: category, Text: text}
	if author != "" {
		op.Author = model.StringPtr(author)
	}
	return op
}

func split(t *testing.T, opts Options, text string, perCuriam bool) []model.Opinion {
	t.Helper()
	opinions, ok := NewSplitter(opts).Split(model.Document{Text: text, PerCuriam: perCuriam})
	require.True(t, ok, "expected a decision")
	return opinions
}

func TestSplit_MajorityConcurringDissenting(t *testing.T) {
	text := "Syllabus omitted. JUSTICE BLACK delivered the opinion of the court. Majority text. " +
		"JUSTICE DOUGLAS, concurring. Concurring text. " +
		"JUSTICE HOLMES, dissenting. Dissenting text."

	got := split(t, DefaultOptions(), text, false)

	assert.Equal(t, []model.Opinion{
		opinion("justice black", model.CategoryMajority, "Majority text."),
		opinion("justice douglas", model.CategoryConcurring, "Concurring text."),
		opinion("justice holmes", model.CategoryDissenting, "Dissenting text."),
	}, got)
}

func TestSplit_PerCuriam(t *testing.T) {
	text := "SUPREME COURT OF THE UNITED STATES. Per Curiam. The judgment below is affirmed. " +
		"NOTES 1. See record."

	got := split(t, DefaultOptions(), text, true)

	assert.Equal(t, []model.Opinion{
		opinion(model.AuthorPerCuriam, model.CategoryPerCuriam, "The judgment below is affirmed."),
	}, got)
}

func TestSplit_PerCuriamWithDissent(t *testing.T) {
	text := "Per Curiam. Affirmed. Mr. Justice Douglas, dissenting. I would reverse."

	got := split(t, DefaultOptions(), text, true)

	assert.Equal(t, []model.Opinion{
		opinion(model.AuthorPerCuriam, model.CategoryPerCuriam, "Affirmed."),
		opinion("justice douglas", model.CategoryDissenting, "I would reverse."),
	}, got)
}

func TestSplit_NotADecision(t *testing.T) {
	splitter := NewSplitter(DefaultOptions())

	opinions, ok := splitter.Split(model.Document{Text: "Petition for writ of certiorari denied."})
	assert.False(t, ok)
	assert.Nil(t, opinions)

	opinions, ok = splitter.Split(model.Document{Text: "The judgment is affirmed.", PerCuriam: true})
	assert.False(t, ok)
	assert.Nil(t, opinions)

	_, ok = splitter.Split(model.Document{})
	assert.False(t, ok)
}

func TestSplit_CitationIsNotADissent(t *testing.T) {
	text := "Mr. Justice Black delivered the opinion of the Court. " +
		"The rule was criticized in Smith v. Jones, 1 U.S. 1 (Smith, dissenting.) We disagree. " +
		"Mr. Justice Holmes, dissenting. I dissent."

	got := split(t, DefaultOptions(), text, false)

	assert.Equal(t, []model.Opinion{
		opinion("justice black", model.CategoryMajority,
			"The rule was criticized in Smith v. Jones, 1 U.S. 1 (Smith, dissenting.) We disagree."),
		opinion("justice holmes", model.CategoryDissenting, "I dissent."),
	}, got)
}

func TestSplit_AllOpinions(t *testing.T) {
	got := split(t, DefaultOptions(), fullDecision, false)

	// The second concurrence has no slot of its own and is dropped
	assert.Equal(t, []model.Opinion{
		opinion("justice black", model.CategoryMajority, "Held."),
		opinion("justice douglas", model.CategoryConcurring, "First concurrence."),
		opinion("justice holmes", model.CategoryDissenting, "First dissent."),
		opinion("justice stone", model.CategorySecondDissenting, "Second dissent."),
	}, got)
}

func TestSplit_ExcludeConcurringKeepsDissentSpan(t *testing.T) {
	all := split(t, DefaultOptions(), fullDecision, false)
	got := split(t, Options{IncludeConcurring: false, IncludeSecondDissent: true}, fullDecision, false)

	require.Len(t, got, 3)
	assert.Equal(t, all[0], got[0])
	assert.Equal(t, all[2], got[1])
	assert.Equal(t, all[3], got[2])
}

func TestSplit_ExcludeSecondDissent(t *testing.T) {
	got := split(t, Options{IncludeConcurring: true, IncludeSecondDissent: false}, fullDecision, false)

	assert.Equal(t, []model.Opinion{
		opinion("justice black", model.CategoryMajority, "Held."),
		opinion("justice douglas", model.CategoryConcurring, "First concurrence."),
		opinion("justice holmes", model.CategoryDissenting, "First dissent."),
	}, got)
}

func TestSplit_ConcurringInTheJudgment(t *testing.T) {
	text := "Syllabus. Mr. Justice Black delivered the opinion of the Court. Reversed. " +
		"Mr. Justice White, concurring in the judgment. I agree with the result."

	got := split(t, DefaultOptions(), text, false)

	require.Len(t, got, 2)
	assert.Equal(t, model.CategoryMajority, got[0].Category)
	assert.Equal(t, "justice black", got[0].AuthorName())
	assert.Equal(t, opinion("justice white", model.CategoryConcurring, "I agree with the result."), got[1])
}

func TestSplit_TrailingMatterOnlyOnLastOpinion(t *testing.T) {
	text := "Syllabus. Mr. Justice Black delivered the opinion of the Court. See NOTES above. " +
		"Mr. Justice Holmes, dissenting. The holding affirmed. NOTES 1. Footnote text"

	got := split(t, DefaultOptions(), text, false)

	assert.Equal(t, []model.Opinion{
		opinion("justice black", model.CategoryMajority, "See NOTES above."),
		opinion("justice holmes", model.CategoryDissenting, "The holding affirmed."),
	}, got)
}

func TestSplit_Appendixes(t *testing.T) {
	text := "Syllabus. Mr. Justice Black delivered the opinion of the Court. Affirmed. APPENDIXES A. Statute."

	got := split(t, DefaultOptions(), text, false)

	assert.Equal(t, []model.Opinion{
		opinion("justice black", model.CategoryMajority, "Affirmed."),
	}, got)
}

func TestSplit_UnattributedAuthorKeepsSegment(t *testing.T) {
	text := "Syllabus. The Court delivered the opinion of the Court. Held."
	var b Boundaries
	b = b.with(SlotMajority, after(t, text, "of the Court."), true)

	got, ok := NewSplitter(DefaultOptions()).SplitBoundaries(model.Document{Text: text}, b)
	require.True(t, ok)
	assert.Equal(t, []model.Opinion{
		opinion("", model.CategoryMajority, "Held."),
	}, got)
}

func TestSplit_Idempotent(t *testing.T) {
	text := "Syllabus. Mr. Justice Black delivered the opinion of the Court. The order is reversed. " +
		"Mr. Justice Holmes, dissenting. I would affirm."
	splitter := NewSplitter(DefaultOptions())

	first := split(t, DefaultOptions(), text, false)
	majority := first[0]

	// Restate the majority under its own introduction and split again
	restated := majority.AuthorName() + " delivered the opinion of the court. " + majority.Text
	again, ok := splitter.Split(model.Document{Text: restated})
	require.True(t, ok)
	assert.Equal(t, []model.Opinion{majority}, again)

	perCuriam := split(t, DefaultOptions(), "Per Curiam. The judgment is affirmed.", true)
	again, ok = splitter.Split(model.Document{Text: "Per Curiam. " + perCuriam[0].Text, PerCuriam: true})
	require.True(t, ok)
	assert.Equal(t, perCuriam, again)
}

func TestSplit_OffsetsSurviveWideLowercase(t *testing.T) {
	// Ⱥ lowercases to a wider rune; offsets must still index the original
	text := "ȺȺȺ syllabus. Mr. Justice Black delivered the opinion of the Court. Held. " +
		"Mr. Justice Holmes, dissenting. Dissent."

	got := split(t, DefaultOptions(), text, false)

	assert.Equal(t, []model.Opinion{
		opinion("justice black", model.CategoryMajority, "Held."),
		opinion("justice holmes", model.CategoryDissenting, "Dissent."),
	}, got)
}

func TestTrimNextIntro(t *testing.T) {
	assert.Equal(t, " Held. ", trimNextIntro(" Held. Mr. Justice Holmes, dissenting."))
	assert.Equal(t, " Held. ", trimNextIntro(" Held. JUSTICE DOUGLAS, concurring."))
	assert.Equal(t, "", trimNextIntro("Justice Holmes, dissenting."))
	assert.Equal(t, " Held.", trimNextIntro(" Held."))
	// Suffix match is literal
	assert.Equal(t, " Held. X, DISSENTING.", trimNextIntro(" Held. X, DISSENTING."))
}

func TestTrimTrailingMatter(t *testing.T) {
	assert.Equal(t, "Affirmed. ", trimTrailingMatter("Affirmed. NOTES 1. text APPENDIXES"))
	assert.Equal(t, "Affirmed. ", trimTrailingMatter("Affirmed. APPENDIXES A"))
	assert.Equal(t, "Affirmed. notes", trimTrailingMatter("Affirmed. notes"))
}
