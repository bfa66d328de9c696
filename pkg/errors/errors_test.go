package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidDimension, "bad width: %.1f", -2.0)

	if err.Code != ErrCodeInvalidDimension {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidDimension)
	}

	if err.Message != "bad width: -2.0" {
		t.Errorf("Message = %v, want %v", err.Message, "bad width: -2.0")
	}

	expected := "INVALID_DIMENSION: bad width: -2.0"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeEncodeFailed, cause, "encode failed")

	if err.Code != ErrCodeEncodeFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeEncodeFailed)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeRenderEmpty, "test"),
			code:     ErrCodeRenderEmpty,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeRenderEmpty, "test"),
			code:     ErrCodeInfeasible,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "wrapped structured error",
			err:      Wrap(ErrCodeInfeasible, errors.New("inner"), "outer"),
			code:     ErrCodeInfeasible,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidPaper, "x")); got != ErrCodeInvalidPaper {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidPaper)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidMargin, "margin out of range")
	if got := UserMessage(err); got != "margin out of range" {
		t.Errorf("UserMessage() = %v", got)
	}
	plain := errors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %v", got)
	}
}
