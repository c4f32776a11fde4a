// Package ingest turns source files into plain-text documents for the
// splitter.
package ingest

import (
	"errors"
	"fmt"

	"github.com/ppiankov/opinionsplit/internal/model"
)

var (
	// ErrUnsupported is returned when no adapter can read a path
	ErrUnsupported = errors.New("unsupported input")

	// ErrEmptyText is returned for documents with no text after extraction
	ErrEmptyText = errors.New("empty document text")
)

// Adapter reads one kind of source file
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter can read the given path
	CanHandle(path string) bool

	// Load reads every document stored at path
	Load(path string) ([]model.Document, error)
}

// Registry picks an adapter for each path
type Registry struct {
	adapters []Adapter
	fallback Adapter
}

// NewRegistry creates a registry with the built-in adapters. Plain text files
// are treated as per-curiam when perCuriam is set.
func NewRegistry(perCuriam bool) *Registry {
	registry := &Registry{
		adapters: make([]Adapter, 0),
	}

	registry.Register(NewCourtListenerAdapter())
	registry.Register(NewPlainTextAdapter(perCuriam))

	return registry
}

// Register adds an adapter; earlier registrations win
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// SetFallback sets the adapter used when no other adapter matches
func (r *Registry) SetFallback(adapter Adapter) {
	r.fallback = adapter
}

// FindAdapter returns the adapter for path, or nil
func (r *Registry) FindAdapter(path string) Adapter {
	for _, adapter := range r.adapters {
		if adapter.CanHandle(path) {
			return adapter
		}
	}
	return r.fallback
}

// Load reads path with the matching adapter
func (r *Registry) Load(path string) ([]model.Document, error) {
	adapter := r.FindAdapter(path)
	if adapter == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}

	docs, err := adapter.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s adapter: %w", adapter.Name(), err)
	}
	return docs, nil
}

// CanHandle reports whether any adapter accepts path
func (r *Registry) CanHandle(path string) bool {
	return r.FindAdapter(path) != nil
}
