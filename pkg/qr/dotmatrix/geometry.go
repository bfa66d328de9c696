package dotmatrix

import (
	"github.com/mycofab/imprint/pkg/qr"
)

// Scene and raster coordinate spaces.
//
// Scene units are the native units of the seal artwork; the raster canvas is
// the fixed pixel surface the overlay stage draws on. Both representations
// are precomputed in [Geometry] so the two codebases never duplicate the
// conversion.
const (
	// RasterScale converts scene units to raster pixels.
	RasterScale = 4.0

	// RasterCanvasPx is the side length of the fixed raster canvas.
	RasterCanvasPx = 1024.0

	// SceneSize is the side length of the scene square in scene units.
	SceneSize = RasterCanvasPx / RasterScale
)

// Dot and finder tunables, all in module-size units.
//
// The two-element finder motif (outer ring + filled core, omitting the
// standard middle light ring) is a deliberate visual simplification. The
// exact ring and stroke ratios are tunables to be validated against real
// scanners, not constants safe to change without a scan test.
const (
	// BaseRadiusFactor scales a data dot's radius relative to its module.
	BaseRadiusFactor = 0.42

	// FinderRingInset pulls the outer ring inside the finder block edge.
	FinderRingInset = 0.15

	// FinderStrokeFactor is the outer ring's stroke width.
	FinderStrokeFactor = 0.85

	// FinderCoreFactor is the filled center dot's radius.
	FinderCoreFactor = 1.5

	// finderSpan is the side of a finder block in modules.
	finderSpan = 7
)

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FinderInfo describes one finder pattern in scene coordinates.
// OuterRadius is the outermost inked radius, ring stroke included.
type FinderInfo struct {
	CenterX     float64 `json:"center_x"`
	CenterY     float64 `json:"center_y"`
	OuterRadius float64 `json:"outer_radius"`
}

// Geometry is the contract handed to the external overlay stage. It is
// produced once per render and read-only afterward: no back-references, no
// shared mutable buffers, every field internally consistent
// (ModuleSizePx == ModuleSize * RasterScale, ModuleCount == Matrix.Size).
type Geometry struct {
	// Radius is the QR's half-side in scene units.
	Radius float64 `json:"radius"`

	// CenterX, CenterY locate the QR center in scene units.
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`

	// Finders lists the three finder patterns: top-left, top-right,
	// bottom-left, in that order.
	Finders [3]FinderInfo `json:"finders"`

	// ModuleSize is the side of one module in scene units.
	ModuleSize float64 `json:"module_size"`

	// Matrix is the full module grid the primitives were derived from.
	Matrix qr.ModuleMatrix `json:"matrix"`

	// ModuleCount is the matrix side length in modules.
	ModuleCount int `json:"module_count"`

	// ModuleSizePx is ModuleSize expressed in raster pixels.
	ModuleSizePx float64 `json:"module_size_px"`

	// TopLeftPx is the QR's top-left corner on the raster canvas.
	TopLeftPx Point `json:"top_left_px"`
}

// finderCenters returns the geometric centers of the three finder blocks in
// module coordinates (fractional column, row), ordered top-left, top-right,
// bottom-left.
func finderCenters(size int) [3][2]float64 {
	half := float64(finderSpan) / 2
	far := float64(size) - half
	return [3][2]float64{
		{half, half}, // top-left
		{far, half},  // top-right
		{half, far},  // bottom-left
	}
}

// inFinderZone reports whether the module at (row, col) belongs to one of
// the three fixed 7x7 finder blocks.
func inFinderZone(row, col, size int) bool {
	top := row < finderSpan
	left := col < finderSpan
	bottom := row >= size-finderSpan
	right := col >= size-finderSpan
	return (top && left) || (top && right) || (bottom && left)
}
