package dotmatrix

import (
	"math"
	"reflect"
	"testing"

	"github.com/mycofab/imprint/pkg/errors"
	"github.com/mycofab/imprint/pkg/qr"
)

const floatEps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= floatEps
}

// matrixOf builds a size x size matrix where fn decides darkness.
func matrixOf(size int, fn func(row, col int) bool) qr.ModuleMatrix {
	modules := make([][]bool, size)
	for r := range modules {
		modules[r] = make([]bool, size)
		for c := range modules[r] {
			modules[r][c] = fn(r, c)
		}
	}
	return qr.ModuleMatrix{Modules: modules, Size: size}
}

// checkerboard is a synthetic matrix with dark modules on the even diagonal,
// everywhere including the finder zones (the renderer must ignore those).
func checkerboard(size int) qr.ModuleMatrix {
	return matrixOf(size, func(r, c int) bool { return (r+c)%2 == 0 })
}

func TestRenderMatrixDeterminism(t *testing.T) {
	m := checkerboard(21)

	a, err := RenderMatrix(m, 100, Options{ContrastBoost: 1.2})
	if err != nil {
		t.Fatalf("RenderMatrix: %v", err)
	}
	b, err := RenderMatrix(m, 100, Options{ContrastBoost: 1.2})
	if err != nil {
		t.Fatalf("RenderMatrix: %v", err)
	}

	if !reflect.DeepEqual(a.Primitives, b.Primitives) {
		t.Error("primitive lists differ between identical renders")
	}
	if !reflect.DeepEqual(a.Geometry, b.Geometry) {
		t.Error("geometry differs between identical renders")
	}
}

func TestRenderMatrixCoverage(t *testing.T) {
	m := checkerboard(21)
	res, err := RenderMatrix(m, 100, Options{})
	if err != nil {
		t.Fatalf("RenderMatrix: %v", err)
	}

	// Count the dark modules outside finder zones; each must map to exactly
	// one dot, and the finder blocks contribute exactly six primitives.
	wantDots := 0
	for r := 0; r < m.Size; r++ {
		for c := 0; c < m.Size; c++ {
			if m.Dark(r, c) && !inFinderZone(r, c, m.Size) {
				wantDots++
			}
		}
	}
	if got := len(res.Primitives); got != wantDots+6 {
		t.Errorf("len(Primitives) = %d, want %d data dots + 6 finder primitives", got, wantDots)
	}

	// Every data dot must sit at its cell midpoint.
	moduleSize := res.Geometry.ModuleSize
	qrLeft := res.Geometry.CenterX - res.Geometry.Radius
	qrTop := res.Geometry.CenterY - res.Geometry.Radius
	seen := make(map[[2]int]int)
	for _, p := range res.Primitives[6:] {
		col := int((p.CX - qrLeft) / moduleSize)
		row := int((p.CY - qrTop) / moduleSize)
		seen[[2]int{row, col}]++
		wantX := qrLeft + (float64(col)+0.5)*moduleSize
		wantY := qrTop + (float64(row)+0.5)*moduleSize
		if !almostEqual(p.CX, wantX) || !almostEqual(p.CY, wantY) {
			t.Fatalf("dot for (%d,%d) at (%g,%g), want cell midpoint (%g,%g)", row, col, p.CX, p.CY, wantX, wantY)
		}
		if !m.Dark(row, col) {
			t.Fatalf("dot emitted for light module (%d,%d)", row, col)
		}
		if inFinderZone(row, col, m.Size) {
			t.Fatalf("dot emitted inside finder zone at (%d,%d)", row, col)
		}
	}
	for cell, n := range seen {
		if n != 1 {
			t.Errorf("module %v mapped to %d dots, want 1", cell, n)
		}
	}
}

func TestRenderMatrixFinderInvariants(t *testing.T) {
	res, err := RenderMatrix(checkerboard(25), 80, Options{})
	if err != nil {
		t.Fatalf("RenderMatrix: %v", err)
	}

	g := res.Geometry
	left := g.CenterX - g.Radius
	right := g.CenterX + g.Radius
	top := g.CenterY - g.Radius
	bottom := g.CenterY + g.Radius

	for i, f := range g.Finders {
		if f.OuterRadius <= 0 {
			t.Errorf("finder %d OuterRadius = %g, want > 0", i, f.OuterRadius)
		}
		if f.CenterX < left || f.CenterX > right || f.CenterY < top || f.CenterY > bottom {
			t.Errorf("finder %d center (%g,%g) outside QR bounding square", i, f.CenterX, f.CenterY)
		}
	}

	// Order is top-left, top-right, bottom-left.
	if !(g.Finders[0].CenterX < g.Finders[1].CenterX) {
		t.Error("finder 1 should be right of finder 0")
	}
	if !(g.Finders[0].CenterY < g.Finders[2].CenterY) {
		t.Error("finder 2 should be below finder 0")
	}

	// The first six primitives are ring/dot pairs at the finder centers.
	for i := 0; i < 3; i++ {
		ring, core := res.Primitives[2*i], res.Primitives[2*i+1]
		if ring.Kind != KindRing || core.Kind != KindDot {
			t.Fatalf("finder %d primitives are (%v, %v), want (ring, dot)", i, ring.Kind, core.Kind)
		}
		if ring.StrokeWidth <= 0 {
			t.Errorf("finder %d ring stroke = %g, want > 0", i, ring.StrokeWidth)
		}
		if !almostEqual(ring.CX, g.Finders[i].CenterX) || !almostEqual(ring.CY, g.Finders[i].CenterY) {
			t.Errorf("finder %d ring center mismatch", i)
		}
	}
}

func TestRenderMatrixGeometryConsistency(t *testing.T) {
	const radius = 96.0
	m := checkerboard(29)
	res, err := RenderMatrix(m, radius, Options{})
	if err != nil {
		t.Fatalf("RenderMatrix: %v", err)
	}

	g := res.Geometry
	if g.ModuleCount != m.Size {
		t.Errorf("ModuleCount = %d, want %d", g.ModuleCount, m.Size)
	}
	if res.ModuleCount != m.Size {
		t.Errorf("Result.ModuleCount = %d, want %d", res.ModuleCount, m.Size)
	}
	if want := 2 * radius / float64(m.Size); !almostEqual(g.ModuleSize, want) {
		t.Errorf("ModuleSize = %g, want %g", g.ModuleSize, want)
	}
	if !almostEqual(g.ModuleSizePx, g.ModuleSize*RasterScale) {
		t.Errorf("ModuleSizePx = %g, want ModuleSize * RasterScale = %g", g.ModuleSizePx, g.ModuleSize*RasterScale)
	}
	if want := (g.CenterX - radius) * RasterScale; !almostEqual(g.TopLeftPx.X, want) {
		t.Errorf("TopLeftPx.X = %g, want %g", g.TopLeftPx.X, want)
	}
	if !almostEqual(g.CenterX, SceneSize/2) || !almostEqual(g.CenterY, SceneSize/2) {
		t.Errorf("center = (%g,%g), want scene midpoint", g.CenterX, g.CenterY)
	}
}

func TestRenderMatrixAllLightFails(t *testing.T) {
	m := matrixOf(21, func(int, int) bool { return false })

	_, err := RenderMatrix(m, 100, Options{})
	if err == nil {
		t.Fatal("RenderMatrix succeeded on all-light matrix, want RENDER_EMPTY")
	}
	if !errors.Is(err, errors.ErrCodeRenderEmpty) {
		t.Errorf("error code = %v, want RENDER_EMPTY", errors.GetCode(err))
	}
}

func TestRenderMatrixFinderOnlyDarkFails(t *testing.T) {
	// Dark modules only inside finder zones still leave zero data dots.
	m := matrixOf(21, func(r, c int) bool { return inFinderZone(r, c, 21) })

	_, err := RenderMatrix(m, 100, Options{})
	if !errors.Is(err, errors.ErrCodeRenderEmpty) {
		t.Errorf("error = %v, want RENDER_EMPTY", err)
	}
}

func TestRenderMatrixContrastBoostAreaScaling(t *testing.T) {
	m := checkerboard(21)

	base, err := RenderMatrix(m, 100, Options{ContrastBoost: 1.0})
	if err != nil {
		t.Fatalf("RenderMatrix: %v", err)
	}
	boosted, err := RenderMatrix(m, 100, Options{ContrastBoost: 1.44})
	if err != nil {
		t.Fatalf("RenderMatrix: %v", err)
	}

	// sqrt(1.44) = 1.2: radius scales with the square root so dot area
	// grows linearly with the boost.
	baseR := base.Primitives[6].R
	boostedR := boosted.Primitives[6].R
	if ratio := boostedR / baseR; !almostEqual(ratio, 1.2) {
		t.Errorf("radius ratio = %g, want 1.2", ratio)
	}
}

func TestRenderMatrixBadInputs(t *testing.T) {
	tests := []struct {
		name   string
		matrix qr.ModuleMatrix
		radius float64
		opts   Options
		code   errors.Code
	}{
		{"zero radius", checkerboard(21), 0, Options{}, errors.ErrCodeInvalidInput},
		{"negative radius", checkerboard(21), -5, Options{}, errors.ErrCodeInvalidInput},
		{"radius beyond scene", checkerboard(21), SceneSize, Options{}, errors.ErrCodeInvalidInput},
		{"negative boost", checkerboard(21), 100, Options{ContrastBoost: -1}, errors.ErrCodeInvalidInput},
		{"matrix too small", checkerboard(15), 100, Options{}, errors.ErrCodeInvalidMatrix},
		{"empty matrix", qr.ModuleMatrix{}, 100, Options{}, errors.ErrCodeInvalidMatrix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RenderMatrix(tt.matrix, tt.radius, tt.opts)
			if err == nil {
				t.Fatal("RenderMatrix succeeded, want error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestRenderWithEncoder(t *testing.T) {
	res, err := Render(qr.NewEncoder(), "MFB-RUN-2026-0042", 100, Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if res.ModuleCount < 21 {
		t.Errorf("ModuleCount = %d, want >= 21", res.ModuleCount)
	}
	if len(res.Primitives) <= 6 {
		t.Errorf("len(Primitives) = %d, want data dots beyond the 6 finder primitives", len(res.Primitives))
	}

	// Render twice; encoded output is deterministic end to end.
	again, err := Render(qr.NewEncoder(), "MFB-RUN-2026-0042", 100, Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !reflect.DeepEqual(res.Primitives, again.Primitives) {
		t.Error("primitives differ between identical end-to-end renders")
	}
}

func TestInFinderZone(t *testing.T) {
	const size = 21
	tests := []struct {
		name     string
		row, col int
		want     bool
	}{
		{"top-left corner", 0, 0, true},
		{"top-left far edge", 6, 6, true},
		{"just outside top-left", 7, 7, false},
		{"separator row", 7, 0, false},
		{"top-right corner", 0, 20, true},
		{"top-right near edge", 6, 14, true},
		{"bottom-left corner", 20, 0, true},
		{"bottom-right is data", 20, 20, false},
		{"center", 10, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inFinderZone(tt.row, tt.col, size); got != tt.want {
				t.Errorf("inFinderZone(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.want)
			}
		})
	}
}
