// Package qr defines the module-matrix contract between the QR encoder and
// the geometry renderer.
//
// The encoder itself is external: any implementation of [MatrixSource] that
// deterministically maps a token string to a square boolean grid will do. The
// default implementation wraps github.com/skip2/go-qrcode with the quiet-zone
// border disabled, so the three finder blocks sit exactly at the matrix
// corners.
package qr

import (
	"github.com/mycofab/imprint/pkg/errors"
)

// ECLevel selects the error-correction redundancy tier.
type ECLevel int

// Error-correction levels, in increasing order of damage resilience.
// Capacity decreases as the level rises.
const (
	ECLow      ECLevel = iota // ~7% recovery
	ECMedium                  // ~15% recovery
	ECQuartile                // ~25% recovery
	ECHigh                    // ~30% recovery
)

// String returns the conventional single-letter name for the level.
func (l ECLevel) String() string {
	switch l {
	case ECLow:
		return "L"
	case ECMedium:
		return "M"
	case ECQuartile:
		return "Q"
	case ECHigh:
		return "H"
	}
	return "?"
}

// ModuleMatrix is a square grid of QR modules. Modules[row][col] is true for
// a dark module. A matrix is immutable once produced; callers must not share
// the backing slices across renders.
type ModuleMatrix struct {
	Modules [][]bool
	Size    int
}

// Dark reports whether the module at (row, col) is dark.
// Out-of-range coordinates are light.
func (m ModuleMatrix) Dark(row, col int) bool {
	if row < 0 || row >= m.Size || col < 0 || col >= m.Size {
		return false
	}
	return m.Modules[row][col]
}

// DarkCount returns the number of dark modules in the matrix.
func (m ModuleMatrix) DarkCount() int {
	n := 0
	for _, row := range m.Modules {
		for _, dark := range row {
			if dark {
				n++
			}
		}
	}
	return n
}

// Validate checks that the matrix is square and its size matches the module
// grid. Returns a structured error on mismatch.
func (m ModuleMatrix) Validate() error {
	if m.Size <= 0 {
		return errors.New(errors.ErrCodeInvalidMatrix, "matrix size must be positive, got %d", m.Size)
	}
	if len(m.Modules) != m.Size {
		return errors.New(errors.ErrCodeInvalidMatrix, "matrix has %d rows, want %d", len(m.Modules), m.Size)
	}
	for i, row := range m.Modules {
		if len(row) != m.Size {
			return errors.New(errors.ErrCodeInvalidMatrix, "row %d has %d columns, want %d", i, len(row), m.Size)
		}
	}
	return nil
}

// MatrixSource produces a module matrix for a token. Implementations must be
// deterministic: the same (token, level) pair always yields the same grid.
type MatrixSource interface {
	Encode(token string, level ECLevel) (ModuleMatrix, error)
}
