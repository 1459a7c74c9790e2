package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trunnel/pkg/cache"
	"github.com/matzehuels/trunnel/pkg/errors"
	"github.com/matzehuels/trunnel/pkg/observability"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/extract"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/layout"
)

// Runner encapsulates pipeline execution with caching.
//
// Apart from the cache and logger, a Runner remembers the most recent plan
// it produced so settings UIs can ask for the current item count. The plan
// is swapped atomically; concurrent Execute calls are safe.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger

	last atomic.Pointer[layout.Plan]
}

// NewRunner creates a runner. If cache is nil, a NullCache is used
// (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete extract → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{}

	start := time.Now()
	items, err := r.Extract(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	result.Items = items
	result.Stats.ExtractTime = time.Since(start)
	result.Stats.ItemCount = items.ItemCount
	result.Stats.LeafCount = items.LeafCount

	r.Logger.Info("extracted items",
		"items", items.ItemCount,
		"branches", items.BranchCount,
		"leaves", items.LeafCount,
		"duration", result.Stats.ExtractTime)

	start = time.Now()
	plan, err := r.Layout(ctx, items, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Plan = plan
	result.Stats.LayoutTime = time.Since(start)
	result.Stats.RibbonCount = len(plan.Ribbons)

	r.Logger.Info("computed layout",
		"ribbons", len(plan.Ribbons),
		"duration", result.Stats.LayoutTime)

	start = time.Now()
	artifacts, hit, err := r.Render(ctx, plan, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Extract pairs the data columns into items. The configured leaf count is
// clamped to the number of rows; in strict mode an out-of-range count fails.
func (r *Runner) Extract(ctx context.Context, opts Options) (extract.Items, error) {
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()

	hooks := observability.Pipeline()
	hooks.OnExtractStart(ctx, len(opts.Categories))
	start := time.Now()

	if opts.Strict {
		if err := opts.Settings.Validate(len(opts.Categories)); err != nil {
			hooks.OnExtractComplete(ctx, 0, 0, time.Since(start), err)
			return extract.Items{}, err
		}
	}

	leaves := opts.Settings.Dimensions.LeavesCount
	items, err := extract.Extract(opts.Categories, opts.Measures, leaves)
	hooks.OnExtractComplete(ctx, items.ItemCount, items.LeafCount, time.Since(start), err)
	if err != nil {
		return extract.Items{}, err
	}
	if items.LeafCount != leaves {
		opts.Logger.Warn("clamped setting", "field", "dimensions.leaves_count", "from", leaves, "to", items.LeafCount)
	}
	return items, nil
}

// Layout builds the plan for items and records it as the runner's last plan.
// Clamp adjustments are logged as warnings.
func (r *Runner) Layout(ctx context.Context, items extract.Items, opts Options) (layout.Plan, error) {
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, items.ItemCount)
	start := time.Now()

	plan, err := layout.Build(items, opts.Viewport(), opts.Settings.LayoutConfig())
	if err == nil && opts.Strict && len(plan.Ribbons) == 0 {
		err = errors.New(errors.ErrCodeDegenerateDomain, "nothing to draw: %v", plan.Degenerate)
	}
	hooks.OnLayoutComplete(ctx, len(plan.Ribbons), time.Since(start), err)
	if err != nil {
		return layout.Plan{}, err
	}

	for _, a := range plan.Adjustments {
		opts.Logger.Warn("clamped setting", "field", a.Field, "from", a.From, "to", a.To)
	}
	for _, d := range plan.Degenerate {
		opts.Logger.Warn("degenerate chart", "reason", d)
	}

	r.last.Store(&plan)
	return plan, nil
}

// LastPlan returns the most recent plan built by this runner.
func (r *Runner) LastPlan() (layout.Plan, bool) {
	p := r.last.Load()
	if p == nil {
		return layout.Plan{}, false
	}
	return *p, true
}

// MaxLeafCount returns the upper bound for the leaf count setting: the item
// count of the last plan, or 0 before any plan was built.
func (r *Runner) MaxLeafCount() int {
	if p, ok := r.LastPlan(); ok {
		return p.MaxLeafCount()
	}
	return 0
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
