// Package svg renders dot-matrix primitives as a standalone SVG document.
//
// This is the preview surface used by the CLI and the HTTP API. Page-level
// template composition (placing many seals on a physical sheet) is a
// downstream concern and stays outside this package.
package svg

import (
	"bytes"
	"fmt"

	"github.com/mycofab/imprint/pkg/qr/dotmatrix"
)

// Default colors. Scan contrast needs dark-on-light; anything fancier is the
// overlay stage's problem.
const (
	defaultForeground = "#1a1a1a"
	defaultBackground = "#ffffff"
)

// Option configures the renderer.
type Option func(*renderer)

type renderer struct {
	foreground  string
	background  string
	transparent bool
}

// WithForeground sets the ink color for dots and rings.
func WithForeground(color string) Option {
	return func(r *renderer) { r.foreground = color }
}

// WithBackground sets the backdrop fill color.
func WithBackground(color string) Option {
	return func(r *renderer) { r.background = color }
}

// WithTransparentBackground omits the backdrop rectangle entirely.
func WithTransparentBackground() Option {
	return func(r *renderer) { r.transparent = true }
}

// Render serializes a dot-matrix render result as an SVG document sized to
// the scene square. The output is deterministic: primitives are emitted in
// the order the renderer produced them.
func Render(res dotmatrix.Result, opts ...Option) []byte {
	r := renderer{
		foreground: defaultForeground,
		background: defaultBackground,
	}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g" width="%g" height="%g">`+"\n",
		dotmatrix.SceneSize, dotmatrix.SceneSize, dotmatrix.RasterCanvasPx, dotmatrix.RasterCanvasPx)

	if !r.transparent {
		fmt.Fprintf(&buf, `  <rect width="%g" height="%g" fill="%s"/>`+"\n",
			dotmatrix.SceneSize, dotmatrix.SceneSize, r.background)
	}

	for _, p := range res.Primitives {
		switch p.Kind {
		case dotmatrix.KindRing:
			fmt.Fprintf(&buf, `  <circle cx="%.4f" cy="%.4f" r="%.4f" fill="none" stroke="%s" stroke-width="%.4f"/>`+"\n",
				p.CX, p.CY, p.R, r.foreground, p.StrokeWidth)
		default:
			fmt.Fprintf(&buf, `  <circle cx="%.4f" cy="%.4f" r="%.4f" fill="%s"/>`+"\n",
				p.CX, p.CY, p.R, r.foreground)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
