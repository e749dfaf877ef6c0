package nutrition

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput is returned for non-positive, negative or non-finite numeric input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrGoalZero is returned when a percentage is requested against a zero goal.
	ErrGoalZero = errors.New("goal is zero")
)

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// round1 rounds half away from zero to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
