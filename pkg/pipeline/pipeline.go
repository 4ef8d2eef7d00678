// Package pipeline provides the load → build → layout → emit pipeline shared
// by the CLI and the HTTP API.
//
// Centralizing the pipeline keeps filter semantics, translation, image
// rewriting, and caching identical across entry points.
//
// # Usage
//
//	runner := pipeline.NewRunner(src, cache, logger)
//	if err := runner.LoadDataset(ctx); err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, pipeline.Options{Focal: "Power Rod"})
//	if err != nil {
//	    return err
//	}
//	payload := result.Payload // drawing-library JSON
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/craftlens/craftlens/pkg/diagram"
	"github.com/craftlens/craftlens/pkg/errors"
	"github.com/craftlens/craftlens/pkg/relation"
)

// Options configures one pipeline run.
type Options struct {
	// Focal is the entity to diagram. Required.
	Focal string

	// Selection restricts visible relation categories. Nil means no
	// filtering; a non-nil empty selection renders the center alone.
	Selection relation.Selection

	// Locale picks a translation table loaded into the runner. Empty means
	// untranslated. Unknown locales fail with INVALID_LOCALE rather than
	// silently rendering untranslated.
	Locale string

	// Layout overrides the layout constants; zero fields use defaults.
	Layout diagram.Config

	// Refresh bypasses the cache for this run (the result is still stored).
	Refresh bool
}

// Validate checks required fields.
func (o *Options) Validate() error {
	if o.Focal == "" {
		return errors.New(errors.ErrCodeInvalidInput, "focal entity is required")
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the built diagram.
	Graph *diagram.Graph

	// Elements is the drawing-library shape of Graph.
	Elements diagram.Elements

	// Payload is Elements serialized to JSON, the form that is cached and
	// served.
	Payload []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether Payload came from the cache. A cached run
	// carries no Graph or Elements; callers needing the structure rebuild
	// with Refresh.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount int
	EdgeCount int
	BuildTime time.Duration
}

// discard is the fallback logger when none is supplied.
func discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
