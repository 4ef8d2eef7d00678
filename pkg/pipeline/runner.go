package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/craftlens/craftlens/pkg/cache"
	"github.com/craftlens/craftlens/pkg/dataset"
	"github.com/craftlens/craftlens/pkg/diagram"
	"github.com/craftlens/craftlens/pkg/errors"
	"github.com/craftlens/craftlens/pkg/source"
	"github.com/craftlens/craftlens/pkg/translate"
)

// Runner executes pipeline runs against a loaded dataset snapshot.
//
// The dataset and translation tables are set up once; each Execute call is
// then a pure in-memory build, safe for concurrent use. LoadDataset swaps in
// a fresh immutable snapshot; in-flight builds keep the one they started
// with.
type Runner struct {
	src    source.Source
	cache  cache.Cache
	logger *log.Logger

	imageRef func(string) string

	mu          sync.RWMutex
	lookup      dataset.Lookup
	datasetHash string
	locales     map[string]*translate.Table
}

// NewRunner creates a pipeline runner. A nil cache disables caching; a nil
// logger discards output.
func NewRunner(src source.Source, c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = discard()
	}
	return &Runner{
		src:     src,
		cache:   c,
		logger:  logger,
		locales: map[string]*translate.Table{},
	}
}

// SetImageRef installs the image reference rewriting convention applied to
// every node thumbnail (e.g. routing through the server's proxy endpoint).
func (r *Runner) SetImageRef(fn func(string) string) {
	r.imageRef = fn
}

// SetLocales installs the translation tables available to Execute.
func (r *Runner) SetLocales(tables map[string]*translate.Table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tables == nil {
		tables = map[string]*translate.Table{}
	}
	r.locales = tables
}

// LoadDataset pulls the full dataset from the source and indexes it.
// Subsequent Execute calls build against this snapshot until the next load.
func (r *Runner) LoadDataset(ctx context.Context) error {
	start := time.Now()
	records, err := r.src.Load(ctx)
	if err != nil {
		return err
	}
	lookup := dataset.BuildLookup(records)
	hash := lookup.Hash()

	r.mu.Lock()
	r.lookup = lookup
	r.datasetHash = hash
	r.mu.Unlock()

	r.logger.Info("dataset loaded",
		"entities", len(lookup),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// Lookup returns the current dataset snapshot.
func (r *Runner) Lookup() dataset.Lookup {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup
}

// Entities returns all entity names in sorted order.
func (r *Runner) Entities() []string {
	return r.Lookup().Names()
}

// Locales returns the names of the loaded translation tables.
func (r *Runner) Locales() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.locales))
	for l := range r.locales {
		names = append(names, l)
	}
	return names
}

// Execute runs one build pass: cache check, diagram build, layout, element
// serialization, cache store.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	lookup := r.lookup
	hash := r.datasetHash
	table, localeKnown := r.locales[opts.Locale]
	r.mu.RUnlock()

	if lookup == nil {
		return nil, errors.New(errors.ErrCodeInternal, "dataset not loaded")
	}
	if opts.Locale != "" && !localeKnown {
		return nil, errors.New(errors.ErrCodeInvalidLocale, "unknown locale %q", opts.Locale)
	}

	key := cache.ElementsKey(hash, keyOpts(opts))
	if !opts.Refresh {
		if payload, ok, err := r.cache.Get(ctx, key); err == nil && ok {
			r.logger.Debug("cache hit", "focal", opts.Focal)
			return &Result{Payload: payload, CacheHit: true}, nil
		} else if err != nil {
			// A broken cache degrades to a rebuild, never a failed render.
			r.logger.Warn("cache get failed", "err", err)
		}
	}

	start := time.Now()
	g, err := diagram.Build(opts.Focal, lookup, diagram.Options{
		Selection:         opts.Selection,
		TranslateRelation: table.Relation,
		TranslateName:     table.Entity,
		ImageRef:          r.imageRef,
		Config:            opts.Layout,
	})
	if err != nil {
		return nil, err
	}

	elements := g.Elements()
	payload, err := diagram.MarshalElements(elements)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode elements")
	}

	if err := r.cache.Set(ctx, key, payload, cache.ElementsTTL); err != nil {
		r.logger.Warn("cache set failed", "err", err)
	}

	stats := Stats{
		NodeCount: len(g.Nodes),
		EdgeCount: len(g.Edges),
		BuildTime: time.Since(start),
	}
	r.logger.Debug("diagram built",
		"focal", opts.Focal,
		"nodes", stats.NodeCount,
		"edges", stats.EdgeCount,
		"elapsed", stats.BuildTime.Round(time.Microsecond))

	return &Result{
		Graph:    g,
		Elements: elements,
		Payload:  payload,
		Stats:    stats,
	}, nil
}

// keyOpts translates build options into cache key components, preserving the
// absent-vs-empty filter distinction.
func keyOpts(opts Options) cache.ElementsKeyOpts {
	ko := cache.ElementsKeyOpts{
		Focal:  opts.Focal,
		Locale: opts.Locale,
	}
	if opts.Selection != nil {
		ko.Filtered = true
		ko.Categories = make([]string, 0, len(opts.Selection))
		for _, c := range opts.Selection.Categories() {
			ko.Categories = append(ko.Categories, string(c))
		}
	}
	return ko
}
