// Package imposition provides the shared numeric guards and paper geometry
// used by the sheet layout calculators.
//
// All physical dimensions are inches as float64. The package defines the
// paper-size registry, the registration-mark minimum margin, quantity
// clamping, and the structured validation types the calculators return.
// Expected bad input is always reported as data (errors and warnings in the
// result), never thrown; only truly exceptional states, such as a custom
// paper profile without explicit dimensions, use the error path.
//
// The two calculators live in the subpackages label (rectangular items,
// binary 0/90 degree rotation) and seal (circular items, rotation-invariant).
package imposition
