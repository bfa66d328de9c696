package seal_test

import (
	"fmt"

	"github.com/mycofab/imprint/pkg/imposition"
	"github.com/mycofab/imprint/pkg/imposition/seal"
)

// ExampleLayout computes the centered grid for 1.5 inch seals on Letter.
func ExampleLayout() {
	cfg := seal.Config{
		DiameterIn: 1.5,
		SpacingIn:  0.25,
		MarginIn:   0.25,
		Paper:      imposition.Letter,
	}
	l := seal.Layout(cfg)

	fmt.Printf("cell: %.2f in\n", l.CellSizeIn)
	fmt.Printf("grid: %dx%d\n", l.Columns, l.Rows)
	fmt.Printf("per sheet: %d\n", l.SealsPerSheet)
	// Output:
	// cell: 1.75 in
	// grid: 4x5
	// per sheet: 20
}

// ExamplePositions lists the first seal centers in reading order.
func ExamplePositions() {
	cfg := seal.Config{
		DiameterIn: 1.5,
		SpacingIn:  0.25,
		MarginIn:   0.25,
		Paper:      imposition.Letter,
	}
	l := seal.Layout(cfg)

	for _, p := range seal.Positions(l, cfg, 2) {
		fmt.Printf("#%d row %d col %d\n", p.Index, p.Row, p.Col)
	}
	// Output:
	// #0 row 0 col 0
	// #1 row 0 col 1
}
