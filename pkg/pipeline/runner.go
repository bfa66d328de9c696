package pipeline

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mycofab/imprint/pkg/cache"
	"github.com/mycofab/imprint/pkg/errors"
	"github.com/mycofab/imprint/pkg/imposition"
	"github.com/mycofab/imprint/pkg/imposition/seal"
	"github.com/mycofab/imprint/pkg/observability"
	"github.com/mycofab/imprint/pkg/qr/dotmatrix"
	"github.com/mycofab/imprint/pkg/render/svg"
)

// Runner executes print jobs with artifact caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store job results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Overlay and Composer are optional external stages, invoked after the
	// render stage when set.
	Overlay  Overlay
	Composer Composer
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
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
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete validate → layout → render job.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		JobID:      uuid.NewString(),
		Artifacts:  make(map[string][]byte, len(opts.Tokens)),
		Geometries: make(map[string]dotmatrix.Geometry, len(opts.Tokens)),
	}

	// Oversized jobs are clamped, never rejected.
	tokens := opts.Tokens
	if clamped := imposition.ClampQuantity(len(tokens)); clamped < len(tokens) {
		r.Logger.Warn("token count clamped to per-job maximum",
			"requested", len(tokens), "max", imposition.MaxQuantityPerJob)
		tokens = tokens[:clamped]
	}
	result.ClampedCount = len(tokens)
	result.Stats.TokenCount = len(tokens)

	// Stage 1: Layout
	layoutStart := time.Now()
	observability.Job().OnLayoutStart(ctx, result.JobID, "seal")
	layout := seal.Layout(opts.SealConfig())
	result.Layout = layout
	result.Positions = seal.Positions(layout, opts.SealConfig(), 0)
	result.SheetsRequired = seal.SheetCount(len(tokens), layout.SealsPerSheet)
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Job().OnLayoutComplete(ctx, result.JobID, layout.SealsPerSheet, result.Stats.LayoutTime, nil)

	r.Logger.Info("computed layout",
		"columns", layout.Columns,
		"rows", layout.Rows,
		"per_sheet", layout.SealsPerSheet,
		"sheets", result.SheetsRequired,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render, fanned out across workers. Each render is pure
	// computation on its own data, so no coordination beyond the result
	// lock is needed.
	renderStart := time.Now()
	observability.Job().OnRenderStart(ctx, result.JobID, len(tokens))
	err := r.renderAll(ctx, tokens, opts, result)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Job().OnRenderComplete(ctx, result.JobID, len(tokens), result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("rendered artifacts",
		"tokens", len(tokens),
		"format", opts.Format,
		"cache_hits", result.CacheInfo.RenderHits,
		"duration", result.Stats.RenderTime)

	// Stage 3 (optional): external overlay and document composition.
	if r.Overlay != nil {
		for _, token := range tokens {
			if err := r.Overlay.Apply(ctx, token, result.Geometries[token]); err != nil {
				return nil, errors.Wrap(errors.CodeOrInternal(err), err, "overlay token %q", token)
			}
		}
	}
	if r.Composer != nil {
		doc, err := r.Composer.Compose(ctx, result)
		if err != nil {
			return nil, errors.Wrap(errors.CodeOrInternal(err), err, "compose document")
		}
		result.Document = doc
	}

	return result, nil
}

// renderAll renders every token, reusing cached artifacts where possible.
func (r *Runner) renderAll(ctx context.Context, tokens []string, opts Options, result *Result) error {
	workers := opts.Workers
	if workers > len(tokens) {
		workers = len(tokens)
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	// Buffered and pre-filled so workers that bail out on error never
	// leave the producer blocked on a send.
	jobs := make(chan string, len(tokens))
	for _, token := range tokens {
		jobs <- token
	}
	close(jobs)

	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for token := range jobs {
				if ctx.Err() != nil {
					setErr(ctx.Err())
					return
				}
				artifact, geom, hit, err := r.renderToken(ctx, token, opts)
				if err != nil {
					setErr(errors.Wrap(errors.CodeOrInternal(err), err, "render token %q", token))
					return
				}
				mu.Lock()
				result.Artifacts[token] = artifact
				result.Geometries[token] = geom
				if hit {
					result.CacheInfo.RenderHits++
				} else {
					result.CacheInfo.RenderMisses++
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	return firstErr
}

// renderToken produces one artifact, consulting the cache first. Renders
// are deterministic, so a hit is always byte-identical to a fresh render;
// geometry is recomputed either way because the overlay stage needs it and
// it is cheap next to serialization.
func (r *Runner) renderToken(ctx context.Context, token string, opts Options) ([]byte, dotmatrix.Geometry, bool, error) {
	res, err := dotmatrix.Render(opts.Source, token, opts.Radius, opts.RenderOptions())
	if err != nil {
		return nil, dotmatrix.Geometry{}, false, err
	}

	key := r.Keyer.ArtifactKey(token, cache.RenderKeyOpts{
		Radius:        opts.Radius,
		ContrastBoost: opts.ContrastBoost,
		Format:        opts.Format,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, res.Geometry, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	artifact, err := serialize(res, opts.Format)
	if err != nil {
		return nil, dotmatrix.Geometry{}, false, err
	}

	if err := r.Cache.Set(ctx, key, artifact, cache.TTLArtifact); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(artifact))
	}

	return artifact, res.Geometry, false, nil
}

// serialize converts a render result to the requested output format.
func serialize(res dotmatrix.Result, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(res, "", "  ")
	case FormatSVG:
		return svg.Render(res), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
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
