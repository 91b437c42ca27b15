package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/taxocheck/pkg/buildinfo"
	"github.com/matzehuels/taxocheck/pkg/cache"
	"github.com/matzehuels/taxocheck/pkg/code"
	"github.com/matzehuels/taxocheck/pkg/dag"
	"github.com/matzehuels/taxocheck/pkg/observability"
	"github.com/matzehuels/taxocheck/pkg/source"
	"github.com/matzehuels/taxocheck/pkg/validate"
)

const keyTypeReport = "report"

// Runner encapsulates validation with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators - it doesn't store
// results. Multiple goroutines can safely use the same Runner.
type Runner struct {
	Source source.Source
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Hooks  observability.Hooks

	// Workers bounds concurrent folders in ValidateAll. Zero means NumCPU.
	Workers int

	// TTL is the lifetime of cached reports. Zero means [cache.TTLReport].
	TTL time.Duration
}

// NewRunner creates a runner reading folders through src.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(src source.Source, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Source: src,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Hooks:  observability.Hooks{}.WithDefaults(),
	}
}

// Load reads the taxonomy in dir through the runner's source.
func (r *Runner) Load(ctx context.Context, dir string) (*validate.Input, error) {
	if r.Source == nil {
		return nil, fmt.Errorf("runner has no source")
	}
	hooks := r.Hooks.WithDefaults()

	hooks.Validation.OnLoadStart(ctx, dir)
	start := time.Now()
	in, err := r.Source.Load(ctx, dir)
	rows := 0
	if in != nil {
		rows = len(in.Description) + len(in.Composition)
	}
	hooks.Validation.OnLoadComplete(ctx, dir, rows, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("loaded taxonomy",
		"dir", dir,
		"description", len(in.Description),
		"composition", len(in.Composition),
		"duration", time.Since(start))
	return in, nil
}

// Validate loads dir and validates it.
func (r *Runner) Validate(ctx context.Context, dir string, opts Options) (*Result, error) {
	start := time.Now()
	in, err := r.Load(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", dir, err)
	}
	if opts.Names == (validate.Names{}) {
		opts.Names = r.Source.Names()
	}

	res, err := r.run(ctx, dir, in, opts)
	if err != nil {
		return nil, err
	}
	res.Stats.LoadTime = time.Since(start) - res.Stats.ValidateTime
	return res, nil
}

// ValidateInput validates in-memory input with caching. Dir is left empty.
func (r *Runner) ValidateInput(ctx context.Context, in *validate.Input, opts Options) (*Result, error) {
	return r.run(ctx, "", in, opts)
}

func (r *Runner) run(ctx context.Context, dir string, in *validate.Input, opts Options) (*Result, error) {
	hooks := r.Hooks.WithDefaults()

	hash, err := cache.HashJSON(in)
	if err != nil {
		return nil, fmt.Errorf("hash input: %w", err)
	}
	res := &Result{
		RunID:     uuid.NewString(),
		Dir:       dir,
		InputHash: hash,
		Input:     in,
		Stats:     Stats{Rows: len(in.Description) + len(in.Composition)},
	}

	key := r.Keyer.ReportKey(hash, cache.ReportKeyOpts{
		Description: opts.Names.Description,
		Composition: opts.Names.Composition,
		Version:     buildinfo.Version,
	})

	if !opts.Refresh {
		var cached validate.Report
		if err := cache.GetJSON(ctx, r.Cache, key, &cached); err == nil {
			hooks.Cache.OnCacheHit(ctx, keyTypeReport)
			restoreTree(&cached)
			res.Report = &cached
			res.CacheHit = true
			res.Stats.NodeCount = cached.Summary.Nodes
			res.Stats.EdgeCount = cached.Summary.Edges
			r.logResult(res)
			return res, nil
		}
		hooks.Cache.OnCacheMiss(ctx, keyTypeReport)
	}

	start := time.Now()
	g := dag.Build(in.Composition)
	res.Report = validate.ValidateGraph(g, in.Description, opts.Names)
	res.Stats.ValidateTime = time.Since(start)
	res.Stats.NodeCount = g.NodeCount()
	res.Stats.EdgeCount = g.EdgeCount()
	hooks.Validation.OnValidateComplete(ctx, dir, len(res.Report.Findings), res.Stats.ValidateTime)

	if err := cache.SetJSON(ctx, r.Cache, key, res.Report, r.ttl()); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	} else {
		hooks.Cache.OnCacheSet(ctx, keyTypeReport, res.Stats.Rows)
	}

	r.logResult(res)
	return res, nil
}

// ValidateAll validates every folder concurrently, at most Workers at a time.
// Results follow the order of dirs. A folder that fails to load gets a Result
// with Err set and does not stop the others. The returned error is non-nil
// only when ctx is canceled before every folder started.
func (r *Runner) ValidateAll(ctx context.Context, dirs []string, opts Options) ([]*Result, error) {
	results := make([]*Result, len(dirs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for i, dir := range dirs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = &Result{Dir: dir, Err: err}
				return err
			}
			res, err := r.Validate(gctx, dir, opts)
			if err != nil {
				r.Logger.Error("validation failed", "dir", dir, "err", err)
				res = &Result{RunID: uuid.NewString(), Dir: dir, Err: err}
			}
			results[i] = res
			return nil
		})
	}
	return results, g.Wait()
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.NumCPU()
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLReport
}

func (r *Runner) logResult(res *Result) {
	r.Logger.Info("validated",
		"dir", res.Dir,
		"run", res.RunID,
		"findings", len(res.Report.Findings),
		"cached", res.CacheHit,
		"duration", res.Stats.ValidateTime)
}

// restoreTree rebuilds the tree of a decoded report from its hierarchy edges.
func restoreTree(rep *validate.Report) {
	if len(rep.Hierarchy) == 0 {
		return
	}
	rep.Tree = &dag.Tree{Graph: dag.FromEdges(rep.Hierarchy), Root: code.Root}
}
