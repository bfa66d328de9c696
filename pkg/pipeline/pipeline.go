// Package pipeline orchestrates complete seal print jobs.
//
// This package implements the validate → layout → render pipeline used by
// the CLI and the HTTP API. By centralizing this logic, both entry points
// behave identically and caching works the same everywhere.
//
// # Architecture
//
// A job runs in three stages:
//
//  1. Validate: the seal configuration is checked; any violation aborts
//     the job before geometry is computed.
//  2. Layout: the sheet grid and the row-major position sequence are
//     computed once per job.
//  3. Render: each unique token is encoded and rendered to circular dot
//     primitives, then serialized per the requested format. Renders are
//     independent, so this stage fans out across workers.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Tokens:   tokens,
//	    Diameter: 1.5,
//	    Spacing:  0.25,
//	    Margin:   0.25,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts[tokens[0]]
package pipeline

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mycofab/imprint/pkg/errors"
	"github.com/mycofab/imprint/pkg/imposition"
	"github.com/mycofab/imprint/pkg/imposition/seal"
	"github.com/mycofab/imprint/pkg/qr"
	"github.com/mycofab/imprint/pkg/qr/dotmatrix"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultRadius is the QR half-side in scene units.
	DefaultRadius = 100.0

	// DefaultContrastBoost is the neutral dot-area multiplier.
	DefaultContrastBoost = 1.0

	// DefaultDiameter is the default seal diameter in inches.
	DefaultDiameter = 1.5

	// DefaultSpacing is the default edge-to-edge seal spacing in inches.
	DefaultSpacing = 0.25

	// DefaultMargin is the default sheet margin in inches.
	DefaultMargin = 0.25

	// DefaultWorkers bounds the render fan-out. Renders are pure CPU, so
	// a small fixed pool is enough; per-item geometry has no cross-item
	// dependency.
	DefaultWorkers = 4
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// =============================================================================
// External Stages
// =============================================================================

// Overlay receives the geometry contract for each rendered token. The
// decorative overlay itself lives outside this engine; implementations get
// everything they need to position themselves from the Geometry value.
type Overlay interface {
	Apply(ctx context.Context, token string, geom dotmatrix.Geometry) error
}

// Composer assembles the finished artifacts and sheet plan into a single
// print document. Page template composition lives outside this engine.
type Composer interface {
	Compose(ctx context.Context, result *Result) ([]byte, error)
}

// =============================================================================
// Options - Job Configuration
// =============================================================================

// Options contains all configuration for one print job.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Tokens are the opaque strings to encode, one seal each.
	Tokens []string `json:"tokens"`

	// Seal geometry
	Diameter float64          `json:"diameter_in,omitempty"`
	Spacing  float64          `json:"spacing_in,omitempty"`
	Margin   float64          `json:"margin_in,omitempty"`
	Paper    imposition.Paper `json:"paper,omitempty"`

	// Render options
	Radius        float64 `json:"radius,omitempty"`
	ContrastBoost float64 `json:"contrast_boost,omitempty"`
	Format        string  `json:"format,omitempty"`

	// Workers bounds the render fan-out; 0 means DefaultWorkers.
	Workers int `json:"workers,omitempty"`

	// Refresh bypasses the artifact cache.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger     `json:"-"`
	Source qr.MatrixSource `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if len(o.Tokens) == 0 {
		return errors.New(errors.ErrCodeInvalidToken, "at least one token is required")
	}
	for i, token := range o.Tokens {
		if token == "" {
			return errors.New(errors.ErrCodeInvalidToken, "token %d is empty", i)
		}
	}

	if o.Diameter == 0 {
		o.Diameter = DefaultDiameter
	}
	if o.Spacing == 0 {
		o.Spacing = DefaultSpacing
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if !o.Paper.Valid() {
		o.Paper = imposition.Letter
	}
	if o.Radius == 0 {
		o.Radius = DefaultRadius
	}
	if o.ContrastBoost == 0 {
		o.ContrastBoost = DefaultContrastBoost
	}
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Source == nil {
		o.Source = qr.NewEncoder()
	}

	// The layout validator enumerates every violated constraint; report
	// them all in one error so the caller can fix the request once.
	if problems := seal.Validate(o.SealConfig()); len(problems) > 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid seal configuration: %s", strings.Join(problems, "; "))
	}

	o.validated = true
	return nil
}

// SealConfig extracts the layout calculator's configuration.
func (o *Options) SealConfig() seal.Config {
	return seal.Config{
		DiameterIn: o.Diameter,
		SpacingIn:  o.Spacing,
		MarginIn:   o.Margin,
		Paper:      o.Paper,
	}
}

// RenderOptions extracts the dot renderer's options.
func (o *Options) RenderOptions() dotmatrix.Options {
	return dotmatrix.Options{ContrastBoost: o.ContrastBoost}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of one job run.
type Result struct {
	// JobID uniquely identifies this run.
	JobID string `json:"job_id"`

	// Layout is the computed sheet grid.
	Layout seal.GridLayout `json:"layout"`

	// Positions is the full-sheet position sequence in reading order.
	Positions []seal.Position `json:"positions"`

	// SheetsRequired is how many sheets the clamped job needs.
	SheetsRequired int `json:"sheets_required"`

	// ClampedCount is the token count after per-job clamping.
	ClampedCount int `json:"clamped_count"`

	// Artifacts holds one rendered output per token.
	Artifacts map[string][]byte `json:"-"`

	// Geometries holds the overlay contract per token.
	Geometries map[string]dotmatrix.Geometry `json:"-"`

	// Document is the composed print document, present only when the
	// runner has a Composer.
	Document []byte `json:"-"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`

	// CacheInfo tracks artifact cache effectiveness.
	CacheInfo CacheInfo `json:"cache_info"`
}

// Stats contains job execution statistics.
type Stats struct {
	TokenCount int           `json:"token_count"`
	LayoutTime time.Duration `json:"layout_time"`
	RenderTime time.Duration `json:"render_time"`
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHits   int `json:"render_hits"`
	RenderMisses int `json:"render_misses"`
}
