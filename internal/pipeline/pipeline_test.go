package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/opinionsplit/internal/cache"
	"github.com/ppiankov/opinionsplit/internal/ingest"
	"github.com/ppiankov/opinionsplit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const signedDecision = "Syllabus. Mr. Justice Black delivered the opinion of the Court. Held. " +
	"Mr. Justice Douglas, concurring. I concur. " +
	"Mr. Justice Holmes, dissenting. I dissent. NOTES 1. See record."

func testConfig(t *testing.T) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Dir = filepath.Join(t.TempDir(), "cache")
	cfg.Ingest.MinDecisionLength = 60
	return cfg
}

func TestPipeline_SplitDocument(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Enabled = false
	p := NewPipeline(cfg, ingest.NewRegistry(false), nil)

	d := p.SplitDocument(model.Document{ID: "1", Text: signedDecision})
	require.False(t, d.Skipped)
	require.Len(t, d.Opinions, 3)
	assert.Equal(t, model.CategoryMajority, d.Opinions[0].Category)
	assert.Equal(t, "I dissent.", d.Opinions[2].Text)
}

func TestPipeline_SplitDocumentHonorsSwitches(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Enabled = false
	cfg.Split.IncludeConcurring = false
	p := NewPipeline(cfg, ingest.NewRegistry(false), nil)

	d := p.SplitDocument(model.Document{ID: "1", Text: signedDecision})
	require.Len(t, d.Opinions, 2)
	assert.Equal(t, model.CategoryDissenting, d.Opinions[1].Category)
}

func TestPipeline_SkipsAndLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	cfg := testConfig(t)
	cfg.Cache.Enabled = false
	p := NewPipeline(cfg, ingest.NewRegistry(false), zap.New(core))

	dismissal := p.SplitDocument(model.Document{ID: "cert", Text: "Certiorari denied."})
	assert.True(t, dismissal.Skipped)
	assert.Equal(t, model.SkipDismissal, dismissal.Reason)

	long := strings.Repeat("The petition raises no federal question. ", 5)
	noMajority := p.SplitDocument(model.Document{ID: "odd", Text: long})
	assert.True(t, noMajority.Skipped)
	assert.Equal(t, model.SkipNoMajority, noMajority.Reason)

	entries := logs.FilterMessage("skipped document").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "cert", entries[0].ContextMap()["document"])
	assert.Equal(t, "no_majority", entries[1].ContextMap()["reason"])
}

func TestPipeline_UsesCache(t *testing.T) {
	cfg := testConfig(t)
	results := cache.NewResultCache(cache.NewMemoryCache(time.Minute, time.Minute), 0)
	p := NewPipeline(cfg, ingest.NewRegistry(false), nil).WithCache(results)

	doc := model.Document{ID: "1", Text: signedDecision}
	first := p.SplitDocument(doc)
	assert.False(t, first.Cached)

	second := p.SplitDocument(doc)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Opinions, second.Opinions)

	long := strings.Repeat("No opinion here at all. ", 5)
	_ = p.SplitDocument(model.Document{ID: "2", Text: long})
	again := p.SplitDocument(model.Document{ID: "2", Text: long})
	assert.True(t, again.Cached)
	assert.True(t, again.Skipped)
	assert.Equal(t, model.SkipNoMajority, again.Reason)
}

func TestPipeline_SplitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opinions.json")
	body, err := json.Marshal([]map[string]any{
		{"id": 1, "per_curiam": false, "plain_text": signedDecision},
		{"id": 2, "per_curiam": true, "html_with_citations": "<p>Per Curiam.</p><p> Affirmed.</p>"},
		{"id": 3, "per_curiam": false, "plain_text": "Denied."},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, body, 0644))

	p := NewPipeline(testConfig(t), ingest.NewRegistry(false), nil)
	decisions, err := p.SplitFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, decisions, 3)

	assert.Len(t, decisions[0].Opinions, 3)
	require.Len(t, decisions[1].Opinions, 1)
	assert.Equal(t, model.CategoryPerCuriam, decisions[1].Opinions[0].Category)
	assert.Equal(t, "Affirmed.", decisions[1].Opinions[0].Text)
	assert.True(t, decisions[2].Skipped)

	_, err = p.SplitFile(context.Background(), filepath.Join(dir, "notes.md"))
	assert.ErrorIs(t, err, ingest.ErrUnsupported)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.SplitFile(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsDismissal(t *testing.T) {
	assert.True(t, IsDismissal(model.Document{Text: "Certiorari denied."}, 5000))
	assert.False(t, IsDismissal(model.Document{Text: "Certiorari denied.", PerCuriam: true}, 5000))
	assert.False(t, IsDismissal(model.Document{Text: "Certiorari denied.", RawLength: 6000}, 5000))
	assert.False(t, IsDismissal(model.Document{
		Text: "Mr. Justice Black Delivered The Opinion Of The Court. Held.",
	}, 5000))
}

func TestRenderer_Records(t *testing.T) {
	r := NewRenderer(model.FormatJSONL)
	n := 0
	r.newID = func() string { n++; return "id-" + string(rune('0'+n)) }

	decisions := []model.Decision{
		{
			Document: model.Document{ID: "1", URL: "https://example.com/1"},
			Opinions: []model.Opinion{
				{Author: model.StringPtr("justice o`connor"), Category: model.CategoryMajority, Text: "Held."},
				{Author: nil, Category: model.CategoryDissenting, Text: "."},
				{Author: model.StringPtr("justice holmes"), Category: model.CategorySecondDissenting, Text: "No."},
			},
		},
		{Document: model.Document{ID: "2"}, Skipped: true, Reason: model.SkipNoMajority},
	}

	records := r.Records(decisions)
	require.Len(t, records, 2)
	assert.Equal(t, "id-1", records[0].ID)
	assert.Equal(t, "justice o'connor", *records[0].Author)
	assert.Equal(t, 0, records[0].Position)
	assert.Equal(t, 2, records[1].Position)
	assert.Equal(t, "https://example.com/1", records[1].URL)

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, records))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var rec model.Record
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	assert.Equal(t, model.CategorySecondDissenting, rec.Category)
}

func TestRenderer_WriteJSONAndErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(model.FormatJSON).Write(&buf, nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))

	assert.Error(t, NewRenderer("xml").Write(&buf, nil))

	path := filepath.Join(t.TempDir(), "out.json")
	records := []model.Record{{ID: "a", Category: model.CategoryPerCuriam, Text: "Affirmed."}}
	require.NoError(t, NewRenderer(model.FormatJSON).WriteFile(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []model.Record
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, records[0].Text, got[0].Text)
	assert.Nil(t, got[0].Author)
}

func TestSummary(t *testing.T) {
	s := NewSummary()
	s.Add([]model.Decision{
		{Opinions: []model.Opinion{{Category: model.CategoryMajority}, {Category: model.CategoryDissenting}}},
		{Skipped: true, Reason: model.SkipDismissal, Cached: true},
	})
	s.Failed++
	s.Records = 2

	assert.Equal(t, 1, s.Files)
	assert.Equal(t, 2, s.Documents)
	assert.Equal(t, 1, s.Decisions)
	assert.Equal(t, 1, s.Cached)
	assert.Equal(t, 1, s.SkippedTotal())

	var buf bytes.Buffer
	RenderSummary(&buf, s)
	out := buf.String()
	assert.Contains(t, out, "Decisions:  1")
	assert.Contains(t, out, "dismissal")
	assert.Contains(t, out, "dissenting")
}
