package stockfolio

import (
	"math"
	"strings"
)

// The same finiteness and positivity preconditions recur across every
// constructor and mutator, so they live here as shared helpers instead of
// being re-implemented per type. They guard data integrity: a violation
// aborts the call, it is never clamped.

// validPositivePrice checks that v is a finite number strictly greater than zero.
func validPositivePrice(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errValidationf("%s must be a finite number, got %v", name, v)
	}
	if v <= 0 {
		return errValidationf("%s must be greater than zero, got %v", name, v)
	}
	return nil
}

// validNonNegativeAmount checks that v is a finite number greater than or equal to zero.
func validNonNegativeAmount(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errValidationf("%s must be a finite number, got %v", name, v)
	}
	if v < 0 {
		return errValidationf("%s cannot be negative, got %v", name, v)
	}
	return nil
}

// validPositiveQuantity checks that q is strictly greater than zero.
func validPositiveQuantity(name string, q int64) error {
	if q <= 0 {
		return errValidationf("%s must be greater than zero, got %d", name, q)
	}
	return nil
}

// validIdentifier checks that s is non-empty after trimming and returns the
// trimmed value. Identity is case-sensitive, so only whitespace is normalized.
func validIdentifier(name, s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", errValidationf("%s cannot be empty", name)
	}
	return t, nil
}
