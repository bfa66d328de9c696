// Package dotmatrix renders a QR module matrix as circular drawing
// primitives with exact per-module geometry.
//
// The renderer replaces the standard square-module look with a dot-matrix
// motif: every dark data module becomes a filled circle, and each of the
// three finder patterns becomes a stroked outer ring plus a filled core
// ("radar" motif). Decoders identify finder patterns by the dark-light-dark
// concentric contrast ratio, which the ring and core preserve together.
//
// Alongside the primitive list the renderer produces a [Geometry] value: a
// frozen, self-describing descriptor (center, radius, module size in scene
// units and raster pixels, finder positions, the full matrix) consumed by the
// downstream overlay stage so it can keep decoration out of dark modules and
// finder exclusion zones.
//
// Rendering is pure computation: identical inputs always produce identical
// primitive lists and geometry, and concurrent calls need no coordination.
//
// The renderer never falls back to square modules. If a matrix would produce
// zero data dots, Render fails with an RENDER_EMPTY error instead of silently
// emitting an artifact the downstream stages cannot trust.
package dotmatrix
