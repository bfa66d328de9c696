// Package seal computes centered sheet layouts for circular QR seals.
//
// Seals are rotation-invariant, so unlike the label calculator only one
// orientation is ever considered. The grid is explicitly centered in the
// usable area and positions are emitted in row-major reading order.
package seal

import (
	"fmt"
	"math"

	"github.com/mycofab/imprint/pkg/imposition"
)

// AllowedDiametersIn is the discrete set of seal sizes the die cutter
// supports.
var AllowedDiametersIn = []float64{1.0, 1.5, 2.0}

// Spacing and margin bounds, in inches.
const (
	MinSpacingIn = 0.0625
	MaxSpacingIn = 1.0
	MaxMarginIn  = 2.0
)

// diameterEps absorbs float noise when matching the discrete size set.
const diameterEps = 1e-6

// Config describes one seal print request.
type Config struct {
	DiameterIn float64          `json:"diameter_in"`
	SpacingIn  float64          `json:"spacing_in"`
	MarginIn   float64          `json:"margin_in"`
	Paper      imposition.Paper `json:"paper"`
}

// GridLayout is a computed seal grid on one sheet.
type GridLayout struct {
	Columns        int     `json:"columns"`
	Rows           int     `json:"rows"`
	SealsPerSheet  int     `json:"seals_per_sheet"`
	CellSizeIn     float64 `json:"cell_size_in"`
	GridOffsetXIn  float64 `json:"grid_offset_x_in"`
	GridOffsetYIn  float64 `json:"grid_offset_y_in"`
	UsableWidthIn  float64 `json:"usable_width_in"`
	UsableHeightIn float64 `json:"usable_height_in"`
}

// Position is one seal slot on a sheet. Coordinates are the seal's center,
// not its corner. Positions form a finite, restartable, deterministic
// sequence in reading order: row 0 left to right, then row 1, and so on.
type Position struct {
	Index     int     `json:"index"`
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	CenterXIn float64 `json:"center_x_in"`
	CenterYIn float64 `json:"center_y_in"`
}

// Layout computes the centered seal grid for the config.
//
// The cell size is diameter plus edge-to-edge spacing. Left/right margins
// use the requested margin; top/bottom margins are raised to the
// registration minimum. Leftover usable space is split evenly on both axes
// so the grid is centered.
func Layout(cfg Config) GridLayout {
	cell := cfg.DiameterIn + cfg.SpacingIn
	marginLR := cfg.MarginIn
	marginTB := imposition.RegistrationMargin(cfg.MarginIn)

	usableW := cfg.Paper.WidthIn - 2*marginLR
	usableH := cfg.Paper.HeightIn - 2*marginTB

	l := GridLayout{
		CellSizeIn:     cell,
		UsableWidthIn:  usableW,
		UsableHeightIn: usableH,
	}
	if cell <= 0 || usableW <= 0 || usableH <= 0 {
		return l
	}

	l.Columns = int(math.Floor(usableW / cell))
	l.Rows = int(math.Floor(usableH / cell))
	if l.Columns < 0 {
		l.Columns = 0
	}
	if l.Rows < 0 {
		l.Rows = 0
	}
	l.SealsPerSheet = l.Columns * l.Rows

	gridW := float64(l.Columns) * cell
	gridH := float64(l.Rows) * cell
	l.GridOffsetXIn = marginLR + (usableW-gridW)/2
	l.GridOffsetYIn = marginTB + (usableH-gridH)/2

	return l
}

// Positions generates seal centers in row-major order. count limits the
// sequence; a non-positive count yields one full sheet.
func Positions(l GridLayout, cfg Config, count int) []Position {
	if l.SealsPerSheet <= 0 {
		return nil
	}
	if count <= 0 || count > l.SealsPerSheet {
		count = l.SealsPerSheet
	}

	positions := make([]Position, 0, count)
	for i := 0; i < count; i++ {
		row := i / l.Columns
		col := i % l.Columns
		positions = append(positions, Position{
			Index:     i,
			Row:       row,
			Col:       col,
			CenterXIn: l.GridOffsetXIn + float64(col)*l.CellSizeIn + cfg.DiameterIn/2,
			CenterYIn: l.GridOffsetYIn + float64(row)*l.CellSizeIn + cfg.DiameterIn/2,
		})
	}
	return positions
}

// SheetCount returns how many sheets a job of total seals needs.
func SheetCount(total, perSheet int) int {
	return imposition.SheetCount(total, perSheet)
}

// Validate enumerates every violated constraint without stopping at the
// first. An empty slice means the config is valid.
func Validate(cfg Config) []string {
	var problems []string

	if !allowedDiameter(cfg.DiameterIn) {
		problems = append(problems, fmt.Sprintf(
			"seal diameter %.3f in is not in the supported set %v", cfg.DiameterIn, AllowedDiametersIn))
	}
	if cfg.SpacingIn < MinSpacingIn || cfg.SpacingIn > MaxSpacingIn {
		problems = append(problems, fmt.Sprintf(
			"spacing must be between %.4f and %.2f inches, got %.3f", MinSpacingIn, MaxSpacingIn, cfg.SpacingIn))
	}
	if cfg.MarginIn < 0 || cfg.MarginIn > MaxMarginIn {
		problems = append(problems, fmt.Sprintf(
			"margin must be between 0 and %.2f inches, got %.3f", MaxMarginIn, cfg.MarginIn))
	}
	if !cfg.Paper.Valid() {
		problems = append(problems, fmt.Sprintf(
			"paper dimensions must be positive, got %.2f x %.2f", cfg.Paper.WidthIn, cfg.Paper.HeightIn))
	}

	// Only run the fit check when the individual parameters are sane;
	// otherwise it would just repeat the problems above.
	if len(problems) == 0 {
		if l := Layout(cfg); l.SealsPerSheet == 0 {
			problems = append(problems,
				"no seals fit the sheet; reduce the seal size, spacing, or margins")
		}
	}

	return problems
}

func allowedDiameter(d float64) bool {
	for _, allowed := range AllowedDiametersIn {
		if math.Abs(d-allowed) < diameterEps {
			return true
		}
	}
	return false
}
