package engine

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput marks a non-positive price/ADV/position, a malformed record or
	// an out-of-range parameter. It is returned at the point of use, never coerced.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientData marks inputs too short for a meaningful simulation,
	// e.g. rolling windows that never populate or an empty schedule.
	ErrInsufficientData = errors.New("insufficient data")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func insufficientf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInsufficientData, fmt.Sprintf(format, args...))
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
