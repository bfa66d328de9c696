package label_test

import (
	"fmt"

	"github.com/mycofab/imprint/pkg/imposition/label"
)

// ExampleLayout computes the sheet grid for a standard 2x1 inch label.
func ExampleLayout() {
	l := label.Layout(2.0, 1.0, 0.5)

	fmt.Printf("grid: %dx%d\n", l.Columns, l.Rows)
	fmt.Printf("per sheet: %d\n", l.PerSheet)
	fmt.Printf("rotated: %v\n", l.RotationUsed)
	// Output:
	// grid: 4x10
	// per sheet: 40
	// rotated: false
}

// ExampleValidate shows quantity clamping on an oversized order.
func ExampleValidate() {
	report := label.Validate(2.0, 1.0, 0.5, 1500)

	fmt.Printf("valid: %v\n", report.Valid)
	fmt.Printf("quantity: %d\n", report.ClampedQuantity)
	fmt.Printf("sheets: %d\n", report.SheetsRequired)
	fmt.Printf("warnings: %d\n", len(report.Warnings))
	// Output:
	// valid: true
	// quantity: 1000
	// sheets: 25
	// warnings: 1
}
