// Package label computes best-fit sheet layouts for rectangular labels.
//
// The calculator tries the label unrotated and rotated 90 degrees and keeps
// whichever orientation fits strictly more labels per sheet; ties keep the
// unrotated orientation, since label templates assume an unrotated reading
// direction and rotation is a last resort.
package label

import (
	"math"

	"github.com/mycofab/imprint/pkg/imposition"
)

// GridLayout is a computed label grid on one sheet. Derived purely from the
// label dimensions and margins; it carries no hidden state.
type GridLayout struct {
	Columns        int     `json:"columns"`
	Rows           int     `json:"rows"`
	PerSheet       int     `json:"per_sheet"`
	RotationUsed   bool    `json:"rotation_used"`
	MarginLeftIn   float64 `json:"margin_left_in"`
	MarginRightIn  float64 `json:"margin_right_in"`
	MarginTopIn    float64 `json:"margin_top_in"`
	MarginBottomIn float64 `json:"margin_bottom_in"`
	UsableWidthIn  float64 `json:"usable_width_in"`
	UsableHeightIn float64 `json:"usable_height_in"`
}

// Layout computes the best-fit grid for a label on Letter paper.
// marginTBIn is the requested top/bottom margin; it is raised to the
// registration minimum when smaller. Left/right margins are fixed.
func Layout(labelWidthIn, labelHeightIn, marginTBIn float64) GridLayout {
	return LayoutOn(imposition.Letter, labelWidthIn, labelHeightIn, marginTBIn)
}

// LayoutOn computes the best-fit grid for a label on the given paper.
func LayoutOn(paper imposition.Paper, labelWidthIn, labelHeightIn, marginTBIn float64) GridLayout {
	marginTB := imposition.RegistrationMargin(marginTBIn)
	usableW := paper.WidthIn - 2*imposition.SideMarginIn
	usableH := paper.HeightIn - 2*marginTB

	l := GridLayout{
		MarginLeftIn:   imposition.SideMarginIn,
		MarginRightIn:  imposition.SideMarginIn,
		MarginTopIn:    marginTB,
		MarginBottomIn: marginTB,
		UsableWidthIn:  usableW,
		UsableHeightIn: usableH,
	}

	if labelWidthIn <= 0 || labelHeightIn <= 0 || usableW <= 0 || usableH <= 0 {
		return l
	}

	cols, rows := gridFit(usableW, usableH, labelWidthIn, labelHeightIn)
	rotCols, rotRows := gridFit(usableW, usableH, labelHeightIn, labelWidthIn)

	// Rotation wins only on strictly greater capacity.
	if rotCols*rotRows > cols*rows {
		l.Columns = rotCols
		l.Rows = rotRows
		l.RotationUsed = true
	} else {
		l.Columns = cols
		l.Rows = rows
	}
	l.PerSheet = l.Columns * l.Rows

	return l
}

// gridFit returns how many items of size w x h tile the usable area.
func gridFit(usableW, usableH, w, h float64) (cols, rows int) {
	cols = int(math.Floor(usableW / w))
	rows = int(math.Floor(usableH / h))
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return cols, rows
}

// ItemWidthIn returns the placed width of one label, accounting for rotation.
func (l GridLayout) ItemWidthIn(labelWidthIn, labelHeightIn float64) float64 {
	if l.RotationUsed {
		return labelHeightIn
	}
	return labelWidthIn
}

// ItemHeightIn returns the placed height of one label, accounting for rotation.
func (l GridLayout) ItemHeightIn(labelWidthIn, labelHeightIn float64) float64 {
	if l.RotationUsed {
		return labelWidthIn
	}
	return labelHeightIn
}
