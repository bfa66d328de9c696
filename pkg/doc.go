// Package pkg provides the core libraries for Imprint seal rendering and
// print imposition.
//
// # Overview
//
// Imprint turns opaque batch-tracking tokens into circular dot-matrix QR
// artwork and plans how labels and seals are imposed on print sheets. The
// pkg directory is organized into four main areas:
//
//  1. [qr] - QR encoding and dot-geometry rendering
//  2. [imposition] - Sheet planning for labels and seals
//  3. [render] - Artifact serialization (SVG)
//  4. [pipeline] - Orchestration (validate → layout → render)
//
// # Architecture
//
// The typical data flow through Imprint:
//
//	Batch tokens
//	     ↓
//	[qr] package (encode to module matrix)
//	     ↓
//	[qr/dotmatrix] package (finder rings + data dots)
//	     ↓
//	[render/svg] package (serialize primitives)
//	     ↓
//	[imposition/seal] package (place artifacts on the sheet)
//
// # Quick Start
//
// Render one seal and plan a sheet:
//
//	import (
//	    "github.com/mycofab/imprint/pkg/imposition"
//	    "github.com/mycofab/imprint/pkg/imposition/seal"
//	    "github.com/mycofab/imprint/pkg/qr"
//	    "github.com/mycofab/imprint/pkg/qr/dotmatrix"
//	    "github.com/mycofab/imprint/pkg/render/svg"
//	)
//
//	// 1. Render the dot geometry
//	res, _ := dotmatrix.Render(qr.NewEncoder(), "MFB-RUN-2026-0001", 100, dotmatrix.Options{})
//
//	// 2. Serialize to SVG
//	artwork := svg.Render(res)
//
//	// 3. Plan the sheet
//	cfg := seal.Config{DiameterIn: 1.5, SpacingIn: 0.25, MarginIn: 0.25, Paper: imposition.Letter}
//	layout := seal.Layout(cfg)
//	positions := seal.Positions(layout, cfg, 0)
//
// # Main Packages
//
// [qr] - Token encoding into boolean module matrices with selectable error
// correction, built on skip2/go-qrcode.
//
// [qr/dotmatrix] - The dot-geometry renderer: finder zones become concentric
// rings with a filled core, dark data cells become filled circles. Emits
// primitives plus the geometry contract used by overlay clients.
//
// [imposition] - Shared sheet vocabulary: paper sizes, margins, quantity
// clamping, sheet counting.
//
// [imposition/label] - Best-fit grids for rectangular labels, including 90°
// rotation and structured validation reports.
//
// [imposition/seal] - Centered grids and row-major position sequences for
// circular seals, with enumerate-all validation.
//
// [render/svg] - Deterministic SVG serialization of render results.
//
// [pipeline] - Complete job pipeline (validate → layout → render) used by
// CLI and API. Ensures consistent behavior across all entry points.
//
// [cache] - Content-addressed artifact cache with file and null backends.
//
// [config] - TOML profile loading for print defaults and paper sizes.
//
// [observability] - Job and cache lifecycle hooks for metrics collection.
//
// [errors] - Structured errors with machine-readable codes.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/qr/...       # Specific package
//	go test -run Example       # Examples only
//
// [qr]: https://pkg.go.dev/github.com/mycofab/imprint/pkg/qr
// [qr/dotmatrix]: https://pkg.go.dev/github.com/mycofab/imprint/pkg/qr/dotmatrix
// [imposition]: https://pkg.go.dev/github.com/mycofab/imprint/pkg/imposition
// [imposition/label]: https://pkg.go.dev/github.com/mycofab/imprint/pkg/imposition/label
// [imposition/seal]: https://pkg.go.dev/github.com/mycofab/imprint/pkg/imposition/seal
// [render]: https://pkg.go.dev/github.com/mycofab/imprint/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/mycofab/imprint/pkg/render/svg
// [pipeline]: https://pkg.go.dev/github.com/mycofab/imprint/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/mycofab/imprint/pkg/cache
// [config]: https://pkg.go.dev/github.com/mycofab/imprint/pkg/config
// [observability]: https://pkg.go.dev/github.com/mycofab/imprint/pkg/observability
// [errors]: https://pkg.go.dev/github.com/mycofab/imprint/pkg/errors
package pkg
