package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/opinionsplit/internal/model"
)

// PlainTextAdapter reads a decision already converted to plain text
type PlainTextAdapter struct {
	perCuriam bool
}

// NewPlainTextAdapter creates the adapter; perCuriam applies to every file
func NewPlainTextAdapter(perCuriam bool) *PlainTextAdapter {
	return &PlainTextAdapter{perCuriam: perCuriam}
}

// Name returns the adapter name
func (a *PlainTextAdapter) Name() string {
	return "text"
}

// CanHandle accepts .txt files
func (a *PlainTextAdapter) CanHandle(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}

// Load reads path as a single document
func (a *PlainTextAdapter) Load(path string) ([]model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyText)
	}

	return []model.Document{{
		ID:        strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Text:      text,
		PerCuriam: a.perCuriam,
		Source:    path,
		RawLength: len(data),
	}}, nil
}
