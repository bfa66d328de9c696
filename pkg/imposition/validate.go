package imposition

// Shared layout constants. All inches unless noted.
const (
	// SideMarginIn is the fixed left/right margin for label sheets.
	SideMarginIn = 0.25

	// RegistrationMarginIn is the minimum top/bottom margin. Registration
	// marks need this strip regardless of what the user asks for.
	RegistrationMarginIn = 0.375

	// MinMarginIn and MaxMarginIn bound a requested top/bottom margin.
	MinMarginIn = 0.0
	MaxMarginIn = 3.0

	// MaxQuantityPerJob caps a single print job. Requests above the cap are
	// clamped and reported as a warning, never rejected.
	MaxQuantityPerJob = 1000

	// LegibilityThresholdIn flags labels too small to print crisply.
	LegibilityThresholdIn = 0.5

	// PerSheetWarningThreshold flags dense sheets that slow composition.
	PerSheetWarningThreshold = 100

	// AspectRatioWarningThreshold flags extreme label proportions.
	AspectRatioWarningThreshold = 5.0
)

// ValidationError is a blocking problem with a layout request. A layout
// computed despite errors must not be trusted for printing.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationWarning is an advisory problem. Warnings never block a job.
type ValidationWarning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ClampQuantity limits a quantity to the per-job maximum. Idempotent:
// clamping twice yields the same value.
func ClampQuantity(quantity int) int {
	if quantity > MaxQuantityPerJob {
		return MaxQuantityPerJob
	}
	return quantity
}

// RegistrationMargin returns the effective top/bottom margin: the requested
// value, never below the registration minimum.
func RegistrationMargin(requestedIn float64) float64 {
	if requestedIn < RegistrationMarginIn {
		return RegistrationMarginIn
	}
	return requestedIn
}

// FitsEitherOrientation reports whether an item of the given size fits the
// usable area unrotated or rotated 90 degrees.
func FitsEitherOrientation(itemWIn, itemHIn, usableWIn, usableHIn float64) bool {
	unrotated := itemWIn <= usableWIn && itemHIn <= usableHIn
	rotated := itemHIn <= usableWIn && itemWIn <= usableHIn
	return unrotated || rotated
}

// SheetCount returns ceil(total / perSheet). Zero when either argument is
// non-positive, since no valid job has zero-capacity sheets.
func SheetCount(total, perSheet int) int {
	if total <= 0 || perSheet <= 0 {
		return 0
	}
	return (total + perSheet - 1) / perSheet
}
