package label

import (
	"fmt"

	"github.com/mycofab/imprint/pkg/imposition"
)

// Report is the full validation result for a label print request.
// Layout is nil when a blocking error prevented computation; callers must
// check Valid before trusting it for printing.
type Report struct {
	Valid           bool                           `json:"valid"`
	Errors          []imposition.ValidationError   `json:"errors"`
	Warnings        []imposition.ValidationWarning `json:"warnings"`
	Layout          *GridLayout                    `json:"layout,omitempty"`
	SheetsRequired  int                            `json:"sheets_required"`
	ClampedQuantity int                            `json:"clamped_quantity"`
}

// Validate checks a label print request against Letter paper.
func Validate(labelWidthIn, labelHeightIn, marginTBIn float64, quantity int) Report {
	return ValidateOn(imposition.Letter, labelWidthIn, labelHeightIn, marginTBIn, quantity)
}

// ValidateOn checks a label print request against the given paper.
//
// Hard errors (non-positive dimensions, a label that fits in neither
// orientation, an out-of-range margin, a non-positive quantity, a zero-
// capacity layout) block computation. Warnings (tiny labels, dense sheets,
// extreme aspect ratios, clamped quantity) are advisory only.
func ValidateOn(paper imposition.Paper, labelWidthIn, labelHeightIn, marginTBIn float64, quantity int) Report {
	r := Report{}

	if labelWidthIn <= 0 {
		r.addError("labelWidthIn", fmt.Sprintf("label width must be positive, got %.3f", labelWidthIn))
	}
	if labelHeightIn <= 0 {
		r.addError("labelHeightIn", fmt.Sprintf("label height must be positive, got %.3f", labelHeightIn))
	}
	if marginTBIn < imposition.MinMarginIn || marginTBIn > imposition.MaxMarginIn {
		r.addError("marginTBIn", fmt.Sprintf("margin must be between %.2f and %.2f inches, got %.3f",
			imposition.MinMarginIn, imposition.MaxMarginIn, marginTBIn))
	}
	if quantity <= 0 {
		r.addError("quantity", fmt.Sprintf("quantity must be positive, got %d", quantity))
	}

	// Generic fit check against the usable bounds, both orientations.
	if labelWidthIn > 0 && labelHeightIn > 0 {
		usableW := paper.WidthIn - 2*imposition.SideMarginIn
		usableH := paper.HeightIn - 2*imposition.RegistrationMargin(marginTBIn)
		if !imposition.FitsEitherOrientation(labelWidthIn, labelHeightIn, usableW, usableH) {
			r.addError("labelWidthIn", fmt.Sprintf(
				"label %.2f x %.2f in does not fit %s paper in either orientation",
				labelWidthIn, labelHeightIn, paper.Name))
		}
	}

	if len(r.Errors) > 0 {
		return r
	}

	layout := LayoutOn(paper, labelWidthIn, labelHeightIn, marginTBIn)
	if layout.PerSheet == 0 {
		r.addError("layout", "label is too large to fit the sheet with current margins")
		return r
	}
	r.Layout = &layout

	r.ClampedQuantity = imposition.ClampQuantity(quantity)
	if r.ClampedQuantity < quantity {
		r.addWarning("quantity", fmt.Sprintf("quantity %d exceeds the per-job maximum %d and was clamped",
			quantity, imposition.MaxQuantityPerJob))
	}
	r.SheetsRequired = imposition.SheetCount(r.ClampedQuantity, layout.PerSheet)

	if min(labelWidthIn, labelHeightIn) < imposition.LegibilityThresholdIn {
		r.addWarning("labelHeightIn", fmt.Sprintf("labels under %.2f in may not print legibly",
			imposition.LegibilityThresholdIn))
	}
	if layout.PerSheet > imposition.PerSheetWarningThreshold {
		r.addWarning("layout", fmt.Sprintf("%d labels per sheet may slow document composition",
			layout.PerSheet))
	}
	if aspect := aspectRatio(labelWidthIn, labelHeightIn); aspect > imposition.AspectRatioWarningThreshold {
		r.addWarning("labelWidthIn", fmt.Sprintf("aspect ratio %.1f:1 is extreme for a label", aspect))
	}

	r.Valid = true
	return r
}

func (r *Report) addError(field, message string) {
	r.Errors = append(r.Errors, imposition.ValidationError{Field: field, Message: message})
}

func (r *Report) addWarning(field, message string) {
	r.Warnings = append(r.Warnings, imposition.ValidationWarning{Field: field, Message: message})
}

func aspectRatio(w, h float64) float64 {
	if w > h {
		return w / h
	}
	return h / w
}
