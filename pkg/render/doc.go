// Package render provides artifact serialization for rendered seal geometry.
//
// # Overview
//
// This package holds the output side of the rendering pipeline. The dot
// renderer in qr/dotmatrix produces resolution-independent primitives; the
// subpackages here turn them into concrete artifacts:
//
//   - [svg]: scalable vector output for print composition
//
// JSON output lives in the pipeline, since it serializes the full render
// result rather than drawing it.
//
// # Usage
//
//	res, err := dotmatrix.Render(qr.NewEncoder(), token, 100, dotmatrix.Options{})
//	if err != nil {
//	    return err
//	}
//	artwork := svg.Render(res, svg.WithForeground("#1a1a2e"))
//
// [svg]: https://pkg.go.dev/github.com/mycofab/imprint/pkg/render/svg
package render
