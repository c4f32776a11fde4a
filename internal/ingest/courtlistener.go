package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ppiankov/opinionsplit/internal/model"
)

const courtListenerHost = "https://www.courtlistener.com"

// opinionJSON is the subset of a CourtListener opinion record we read
type opinionJSON struct {
	ID                json.Number `json:"id"`
	PerCuriam         *bool       `json:"per_curiam"`
	HTMLWithCitations string      `json:"html_with_citations"`
	PlainText         string      `json:"plain_text"`
	AbsoluteURL       string      `json:"absolute_url"`
	ResourceURI       string      `json:"resource_uri"`
}

// CourtListenerAdapter reads CourtListener opinion dumps: one JSON object
// per file, or an array of them
type CourtListenerAdapter struct{}

// NewCourtListenerAdapter creates the adapter
func NewCourtListenerAdapter() *CourtListenerAdapter {
	return &CourtListenerAdapter{}
}

// Name returns the adapter name
func (a *CourtListenerAdapter) Name() string {
	return "courtlistener"
}

// CanHandle accepts .json files
func (a *CourtListenerAdapter) CanHandle(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Load parses path into documents
func (a *CourtListenerAdapter) Load(path string) ([]model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return a.Parse(data, path)
}

// Parse decodes opinion records from data. source names the input in errors
// and document IDs.
func (a *CourtListenerAdapter) Parse(data []byte, source string) ([]model.Document, error) {
	var records []opinionJSON

	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyText)
	case trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode %s: %w", source, err)
		}
	default:
		var record opinionJSON
		if err := json.Unmarshal(trimmed, &record); err != nil {
			return nil, fmt.Errorf("decode %s: %w", source, err)
		}
		records = append(records, record)
	}

	docs := make([]model.Document, 0, len(records))
	for i, record := range records {
		doc, err := a.toDocument(record, source, i)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (a *CourtListenerAdapter) toDocument(record opinionJSON, source string, index int) (model.Document, error) {
	id := record.ID.String()
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
		if index > 0 {
			id += "#" + strconv.Itoa(index)
		}
	}

	raw := record.HTMLWithCitations
	text := ""
	if strings.TrimSpace(raw) != "" {
		extracted, err := ExtractText(raw)
		if err != nil {
			return model.Document{}, fmt.Errorf("opinion %s: extract text: %w", id, err)
		}
		text = extracted
	} else {
		raw = record.PlainText
		text = strings.TrimSpace(raw)
	}
	if text == "" {
		return model.Document{}, fmt.Errorf("opinion %s: %w", id, ErrEmptyText)
	}

	url := record.AbsoluteURL
	if url == "" {
		url = record.ResourceURI
	}

	return model.Document{
		ID:        id,
		Text:      text,
		PerCuriam: record.PerCuriam != nil && *record.PerCuriam,
		Source:    source,
		URL:       NormalizeURL(url),
		RawLength: len(raw),
	}, nil
}

// NormalizeURL makes CourtListener links absolute https URLs and repairs the
// stray ":80" port some dumps carry
func NormalizeURL(url string) string {
	switch {
	case url == "":
		return ""
	case strings.HasPrefix(url, "/"):
		url = courtListenerHost + url
	case strings.HasPrefix(url, "http://"):
		url = "https://" + strings.TrimPrefix(url, "http://")
	}
	if rest, ok := strings.CutPrefix(url, courtListenerHost+":80"); ok {
		url = courtListenerHost + rest
	}
	return url
}
