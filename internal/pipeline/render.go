package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/ppiankov/opinionsplit/internal/model"
)

// Mis-encoded apostrophes seen in author names
var apostropheFixer = strings.NewReplacer("â€™", "'", "`", "'")

// Renderer turns decisions into export records
type Renderer struct {
	format string
	newID  func() string
}

// NewRenderer creates a renderer for format (jsonl or json)
func NewRenderer(format string) *Renderer {
	return &Renderer{
		format: format,
		newID:  func() string { return uuid.NewString() },
	}
}

// Records flattens decisions into one record per opinion, in order.
// Skipped decisions contribute nothing and blank opinions are dropped.
func (r *Renderer) Records(decisions []model.Decision) []model.Record {
	var records []model.Record

	for _, d := range decisions {
		if d.Skipped {
			continue
		}
		for i, op := range d.Opinions {
			if len(op.Text) <= 1 {
				continue
			}

			author := op.Author
			if author != nil {
				author = model.StringPtr(apostropheFixer.Replace(*author))
			}

			records = append(records, model.Record{
				ID:         r.newID(),
				DocumentID: d.Document.ID,
				URL:        d.Document.URL,
				PerCuriam:  d.Document.PerCuriam,
				Position:   i,
				Author:     author,
				Category:   op.Category,
				Text:       op.Text,
			})
		}
	}

	return records
}

// Write encodes records to w in the renderer's format
func (r *Renderer) Write(w io.Writer, records []model.Record) error {
	switch r.format {
	case model.FormatJSON:
		if records == nil {
			records = []model.Record{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case model.FormatJSONL, "":
		enc := json.NewEncoder(w)
		for _, rec := range records {
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("encode record %s: %w", rec.ID, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", r.format)
	}
}

// WriteFile writes records to path, or to stdout when path is "" or "-"
func (r *Renderer) WriteFile(path string, records []model.Record) (err error) {
	if path == "" || path == "-" {
		return r.Write(os.Stdout, records)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}()

	return r.Write(f, records)
}

// Summary counts the outcome of a run
type Summary struct {
	Files      int
	Failed     int
	Documents  int
	Decisions  int
	Cached     int
	Skipped    map[model.SkipReason]int
	Categories map[model.Category]int
	Records    int
}

// NewSummary returns an empty summary
func NewSummary() *Summary {
	return &Summary{
		Skipped:    make(map[model.SkipReason]int),
		Categories: make(map[model.Category]int),
	}
}

// Add counts decisions from one file
func (s *Summary) Add(decisions []model.Decision) {
	s.Files++
	for _, d := range decisions {
		s.Documents++
		if d.Cached {
			s.Cached++
		}
		if d.Skipped {
			s.Skipped[d.Reason]++
			continue
		}
		s.Decisions++
		for _, op := range d.Opinions {
			s.Categories[op.Category]++
		}
	}
}

// SkippedTotal returns the number of skipped documents
func (s *Summary) SkippedTotal() int {
	total := 0
	for _, n := range s.Skipped {
		total += n
	}
	return total
}

// RenderSummary prints the summary block shown after a run
func RenderSummary(w io.Writer, s *Summary) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "  Split Complete\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Files:      %d (%d failed)\n", s.Files, s.Failed)
	fmt.Fprintf(w, "  Documents:  %d (%d from cache)\n", s.Documents, s.Cached)
	fmt.Fprintf(w, "  Decisions:  %d\n", s.Decisions)
	fmt.Fprintf(w, "  Skipped:    %d\n", s.SkippedTotal())
	for _, reason := range sortedKeys(s.Skipped) {
		fmt.Fprintf(w, "    %-18s %d\n", reason, s.Skipped[reason])
	}
	fmt.Fprintf(w, "  Records:    %d\n", s.Records)
	for _, category := range sortedKeys(s.Categories) {
		fmt.Fprintf(w, "    %-18s %d\n", category, s.Categories[category])
	}
	fmt.Fprintf(w, "\n")
}

func sortedKeys[K ~string](m map[K]int) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
