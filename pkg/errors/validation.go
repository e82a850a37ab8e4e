package errors

import (
	"math"
	"unicode"
)

// maxNodeIDLength bounds node identifiers accepted from files and the API.
const maxNodeIDLength = 256

// ValidateNodeID validates a node identifier.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidInput, "node id too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id %q contains invalid control characters", id)
		}
	}

	return nil
}

// ValidateFinite rejects NaN and infinite values for the named field.
func ValidateFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be a finite number, got %v", field, v)
	}
	return nil
}

// ValidatePositive rejects values that are not finite and strictly positive.
func ValidatePositive(field string, v float64) error {
	if err := ValidateFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %v", field, v)
	}
	return nil
}

// ValidateExtent checks an optional [lo, hi] domain override.
// An empty slice means "not set" and is valid; otherwise exactly two finite
// values are required.
func ValidateExtent(field string, extent []float64) error {
	if len(extent) == 0 {
		return nil
	}
	if len(extent) != 2 {
		return New(ErrCodeInvalidConfig, "%s must have exactly 2 values, got %d", field, len(extent))
	}
	for _, v := range extent {
		if err := ValidateFinite(field, v); err != nil {
			return err
		}
	}
	return nil
}
