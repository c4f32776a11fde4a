package pipeline

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ppiankov/opinionsplit/internal/cache"
	"github.com/ppiankov/opinionsplit/internal/extract"
	"github.com/ppiankov/opinionsplit/internal/ingest"
	"github.com/ppiankov/opinionsplit/internal/model"
	"go.uber.org/zap"
)

// Pipeline loads documents, filters dismissals and splits the rest
type Pipeline struct {
	registry *ingest.Registry
	splitter *extract.Splitter
	results  *cache.ResultCache // nil when caching is disabled
	logger   *zap.Logger
	config   *model.Config
}

// NewPipeline creates a pipeline with the given configuration
func NewPipeline(cfg *model.Config, registry *ingest.Registry, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	var results *cache.ResultCache
	if cfg.Cache.Enabled {
		layered := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		results = cache.NewResultCache(layered, 0)
	}

	return &Pipeline{
		registry: registry,
		splitter: extract.NewSplitter(extract.OptionsFromModel(cfg.Split)),
		results:  results,
		logger:   logger,
		config:   cfg,
	}
}

// WithCache replaces the result cache; nil disables caching
func (p *Pipeline) WithCache(results *cache.ResultCache) *Pipeline {
	p.results = results
	return p
}

// SplitFile loads every document in path and splits each one
func (p *Pipeline) SplitFile(ctx context.Context, path string) ([]model.Decision, error) {
	docs, err := p.registry.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	decisions := make([]model.Decision, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return decisions, err
		}
		decisions = append(decisions, p.SplitDocument(doc))
	}
	return decisions, nil
}

// SplitDocument splits one document. Non-decisions come back with Skipped set.
func (p *Pipeline) SplitDocument(doc model.Document) model.Decision {
	decision := model.Decision{Document: doc}

	if p.config.Ingest.DropDismissals && IsDismissal(doc, p.config.Ingest.MinDecisionLength) {
		return p.skip(decision, model.SkipDismissal)
	}

	key := p.cacheKey(doc)
	if p.results != nil {
		if opinions, ok, found := p.results.Get(key); found {
			decision.Cached = true
			if !ok {
				return p.skip(decision, model.SkipNoMajority)
			}
			decision.Opinions = opinions
			return decision
		}
	}

	opinions, ok := p.splitter.Split(doc)
	if p.results != nil {
		if err := p.results.Put(key, opinions, ok); err != nil {
			p.logger.Warn("cache write failed", zap.String("document", doc.ID), zap.Error(err))
		}
	}
	if !ok {
		return p.skip(decision, model.SkipNoMajority)
	}

	decision.Opinions = opinions
	p.logger.Debug("split document",
		zap.String("document", doc.ID),
		zap.Bool("per_curiam", doc.PerCuriam),
		zap.Int("opinions", len(opinions)))
	return decision
}

func (p *Pipeline) skip(decision model.Decision, reason model.SkipReason) model.Decision {
	decision.Skipped = true
	decision.Reason = reason
	p.logger.Info("skipped document",
		zap.String("document", decision.Document.ID),
		zap.String("source", decision.Document.Source),
		zap.String("reason", string(reason)),
		zap.Bool("cached", decision.Cached))
	return decision
}

// cacheKey covers everything that changes the split for a document
func (p *Pipeline) cacheKey(doc model.Document) string {
	opts := p.splitter.Options()
	return cache.Key(
		doc.Text,
		strconv.FormatBool(doc.PerCuriam),
		strconv.FormatBool(opts.IncludeConcurring),
		strconv.FormatBool(opts.IncludeSecondDissent),
	)
}
