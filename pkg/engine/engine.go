// Package engine orchestrates the structuring pipeline: quality gate,
// cleanup, segmentation, article and disposition extraction, metadata
// derivation, and final assembly into a StructuredDocument. The engine holds
// no mutable state after construction and is safe for concurrent use.
package engine

import (
	"errors"
	"log/slog"

	"github.com/coolbeans/gaceta/pkg/config"
	"github.com/coolbeans/gaceta/pkg/document"
	"github.com/coolbeans/gaceta/pkg/metadata"
	"github.com/coolbeans/gaceta/pkg/quality"
	"github.com/coolbeans/gaceta/pkg/segment"
)

// ErrEmptyDocument is returned when a raw document carries no title, no text
// and no source URL — there is nothing to structure and nothing to report.
var ErrEmptyDocument = errors.New("engine: document has no title, text or URL")

// Engine structures raw gazette documents.
type Engine struct {
	cfg       config.Config
	gate      quality.Gate
	segmenter *segment.Segmenter
	meta      *metadata.Extractor
	logger    *slog.Logger
}

// Option customizes engine construction.
type Option func(*Engine)

// WithLogger sets the logger used for per-document diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New compiles the configuration into a ready engine.
func New(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	meta, err := metadata.New(cfg)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:       cfg,
		gate:      quality.NewGate(cfg.MinTextLength),
		segmenter: segment.New(),
		meta:      meta,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Summary derives the resumen for an already-structured document. Exposed
// separately because export rows need it while the structured record itself
// does not carry it.
func (e *Engine) Summary(doc *document.StructuredDocument) string {
	return e.meta.Summary(doc.Sections, doc.RawText)
}

// Record flattens a structured document into the canonical export row,
// including its derived resumen.
func (e *Engine) Record(doc *document.StructuredDocument) document.Record {
	return doc.Record(e.Summary(doc))
}
