package qr

import (
	qrcode "github.com/skip2/go-qrcode"

	"github.com/mycofab/imprint/pkg/errors"
)

// Encoder is the default MatrixSource backed by skip2/go-qrcode.
// The zero value is ready to use.
type Encoder struct{}

// NewEncoder returns the default encoder.
func NewEncoder() Encoder {
	return Encoder{}
}

// Encode produces the module matrix for token at the given error-correction
// level. The quiet-zone border is stripped so the finder blocks occupy the
// matrix corners; callers that need a quiet zone add it in their own
// coordinate space.
func (Encoder) Encode(token string, level ECLevel) (ModuleMatrix, error) {
	if token == "" {
		return ModuleMatrix{}, errors.New(errors.ErrCodeInvalidToken, "token must not be empty")
	}

	code, err := qrcode.New(token, recoveryLevel(level))
	if err != nil {
		return ModuleMatrix{}, errors.Wrap(errors.ErrCodeEncodeFailed, err, "encode token")
	}
	code.DisableBorder = true

	bitmap := code.Bitmap()
	m := ModuleMatrix{
		Modules: bitmap,
		Size:    len(bitmap),
	}
	if err := m.Validate(); err != nil {
		return ModuleMatrix{}, err
	}
	return m, nil
}

// recoveryLevel maps our ECLevel to the skip2 recovery constants.
func recoveryLevel(level ECLevel) qrcode.RecoveryLevel {
	switch level {
	case ECLow:
		return qrcode.Low
	case ECQuartile:
		return qrcode.High
	case ECHigh:
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// Ensure Encoder implements MatrixSource.
var _ MatrixSource = Encoder{}
