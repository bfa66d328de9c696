package imposition

import (
	"strings"

	"github.com/mycofab/imprint/pkg/errors"
)

// Paper is a physical sheet size in inches.
type Paper struct {
	Name     string  `json:"name"`
	WidthIn  float64 `json:"width_in"`
	HeightIn float64 `json:"height_in"`
}

// Standard paper sizes.
var (
	Letter = Paper{Name: "letter", WidthIn: 8.5, HeightIn: 11.0}
	Legal  = Paper{Name: "legal", WidthIn: 8.5, HeightIn: 14.0}
	A4     = Paper{Name: "a4", WidthIn: 8.27, HeightIn: 11.69}
)

// papers is the registry of named paper sizes.
var papers = map[string]Paper{
	Letter.Name: Letter,
	Legal.Name:  Legal,
	A4.Name:     A4,
}

// PaperByName looks up a registered paper size. Names are case-insensitive.
func PaperByName(name string) (Paper, bool) {
	p, ok := papers[strings.ToLower(name)]
	return p, ok
}

// PaperNames returns the registered paper names for display.
func PaperNames() []string {
	return []string{Letter.Name, Legal.Name, A4.Name}
}

// CustomPaper builds a one-off paper size. Explicit dimensions are required:
// requesting a custom sheet without them is a configuration bug, not bad
// user input, so this is the fatal path.
func CustomPaper(widthIn, heightIn float64) (Paper, error) {
	if widthIn <= 0 || heightIn <= 0 {
		return Paper{}, errors.New(errors.ErrCodeInvalidPaper,
			"custom paper requires explicit positive dimensions, got %.2f x %.2f", widthIn, heightIn)
	}
	return Paper{Name: "custom", WidthIn: widthIn, HeightIn: heightIn}, nil
}

// Valid reports whether the paper has positive dimensions.
func (p Paper) Valid() bool {
	return p.WidthIn > 0 && p.HeightIn > 0
}
