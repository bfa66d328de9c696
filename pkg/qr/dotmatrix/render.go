package dotmatrix

import (
	"math"

	"github.com/mycofab/imprint/pkg/errors"
	"github.com/mycofab/imprint/pkg/qr"
)

// ECLevel is the fixed error-correction tier for seal rendering. The dot
// motif removes ink from every module, so this mode never negotiates a lower
// tier to gain capacity.
const ECLevel = qr.ECMedium

// minMatrixSize is the version-1 QR symbol size. Anything smaller cannot
// hold three disjoint finder blocks.
const minMatrixSize = 21

// PrimitiveKind distinguishes the two circle primitives.
type PrimitiveKind int

const (
	// KindDot is a filled circle.
	KindDot PrimitiveKind = iota

	// KindRing is a stroke-only circle.
	KindRing
)

// String returns the primitive kind name used in serialized output.
func (k PrimitiveKind) String() string {
	if k == KindRing {
		return "ring"
	}
	return "dot"
}

// Primitive is one circular drawing instruction in scene coordinates.
// StrokeWidth is zero for filled dots.
type Primitive struct {
	Kind        PrimitiveKind `json:"kind"`
	CX          float64       `json:"cx"`
	CY          float64       `json:"cy"`
	R           float64       `json:"r"`
	StrokeWidth float64       `json:"stroke_width,omitempty"`
}

// Options control rendering.
type Options struct {
	// ContrastBoost scales dot area linearly; 1.0 (or zero) is neutral.
	// The dot radius grows with sqrt(ContrastBoost) so that ink coverage,
	// not radius, is what scales - avoiding bleed at high boost values.
	ContrastBoost float64
}

// Result is a complete render: the primitive list, the geometry descriptor
// for the overlay stage, and the module count.
type Result struct {
	Primitives  []Primitive `json:"primitives"`
	Geometry    Geometry    `json:"geometry"`
	ModuleCount int         `json:"module_count"`
}

// Render encodes token at the fixed error-correction level and renders the
// resulting matrix. targetRadius is the QR half-side in scene units; the QR
// is centered on the scene square.
func Render(src qr.MatrixSource, token string, targetRadius float64, opts Options) (Result, error) {
	matrix, err := src.Encode(token, ECLevel)
	if err != nil {
		return Result{}, err
	}
	return RenderMatrix(matrix, targetRadius, opts)
}

// RenderMatrix renders an already-encoded matrix. Exposed separately so
// batch callers can reuse a matrix and tests can inject synthetic grids.
func RenderMatrix(matrix qr.ModuleMatrix, targetRadius float64, opts Options) (Result, error) {
	if err := matrix.Validate(); err != nil {
		return Result{}, err
	}
	if matrix.Size < minMatrixSize {
		return Result{}, errors.New(errors.ErrCodeInvalidMatrix,
			"matrix size %d below minimum %d", matrix.Size, minMatrixSize)
	}
	if targetRadius <= 0 {
		return Result{}, errors.New(errors.ErrCodeInvalidInput,
			"target radius must be positive, got %g", targetRadius)
	}
	if 2*targetRadius > SceneSize {
		return Result{}, errors.New(errors.ErrCodeInvalidInput,
			"target radius %g exceeds scene bounds (max %g)", targetRadius, SceneSize/2)
	}

	boost := opts.ContrastBoost
	if boost == 0 {
		boost = 1.0
	}
	if boost < 0 {
		return Result{}, errors.New(errors.ErrCodeInvalidInput,
			"contrast boost must be positive, got %g", boost)
	}

	size := matrix.Size
	moduleSize := 2 * targetRadius / float64(size)
	centerX := SceneSize / 2.0
	centerY := SceneSize / 2.0
	qrLeft := centerX - targetRadius
	qrTop := centerY - targetRadius

	// Finder primitives: a stroked outer ring and a filled core per block,
	// ordered top-left, top-right, bottom-left.
	var finders [3]FinderInfo
	primitives := make([]Primitive, 0, 6+matrix.DarkCount())
	ringRadius := (float64(finderSpan)/2 - FinderRingInset) * moduleSize
	ringStroke := FinderStrokeFactor * moduleSize
	coreRadius := FinderCoreFactor * moduleSize

	for i, c := range finderCenters(size) {
		fx := qrLeft + c[0]*moduleSize
		fy := qrTop + c[1]*moduleSize
		finders[i] = FinderInfo{
			CenterX:     fx,
			CenterY:     fy,
			OuterRadius: ringRadius + ringStroke/2,
		}
		primitives = append(primitives,
			Primitive{Kind: KindRing, CX: fx, CY: fy, R: ringRadius, StrokeWidth: ringStroke},
			Primitive{Kind: KindDot, CX: fx, CY: fy, R: coreRadius},
		)
	}

	// Data dots: one filled circle per dark module outside the finder
	// zones, row-major so output order is reproducible.
	dotRadius := moduleSize * BaseRadiusFactor * math.Sqrt(boost)
	dots := 0
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if inFinderZone(row, col, size) || !matrix.Dark(row, col) {
				continue
			}
			primitives = append(primitives, Primitive{
				Kind: KindDot,
				CX:   qrLeft + (float64(col)+0.5)*moduleSize,
				CY:   qrTop + (float64(row)+0.5)*moduleSize,
				R:    dotRadius,
			})
			dots++
		}
	}

	// Hard failure, no silent fallback: this mode's contract is "always
	// circles", and an empty dot field means the matrix is degenerate.
	if dots == 0 {
		return Result{}, errors.New(errors.ErrCodeRenderEmpty,
			"no circular module primitives produced for %dx%d matrix", size, size)
	}

	geom := Geometry{
		Radius:       targetRadius,
		CenterX:      centerX,
		CenterY:      centerY,
		Finders:      finders,
		ModuleSize:   moduleSize,
		Matrix:       matrix,
		ModuleCount:  size,
		ModuleSizePx: moduleSize * RasterScale,
		TopLeftPx: Point{
			X: qrLeft * RasterScale,
			Y: qrTop * RasterScale,
		},
	}

	return Result{
		Primitives:  primitives,
		Geometry:    geom,
		ModuleCount: size,
	}, nil
}
