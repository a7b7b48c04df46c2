// Package units provides the duration units used by reported metrics.
package units

import (
	"fmt"
	"strings"
)

// Unit constants
const (
	MS = "ms"
	S  = "s"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{MS, S}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, u := range ValidUnits {
		if unit == u {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return strings.Join(ValidUnits, ", ")
}

// FromMillis converts a duration in milliseconds to the target unit.
// Metrics are computed in milliseconds.
func FromMillis(ms float64, target string) (float64, error) {
	switch target {
	case MS:
		return ms, nil
	case S:
		return ms / 1000, nil
	default:
		return 0, fmt.Errorf("unknown duration unit %q (valid: %s)", target, GetValidUnitsString())
	}
}

// ToMillis converts a duration in unit back to milliseconds.
func ToMillis(v float64, unit string) (float64, error) {
	switch unit {
	case MS:
		return v, nil
	case S:
		return v * 1000, nil
	default:
		return 0, fmt.Errorf("unknown duration unit %q (valid: %s)", unit, GetValidUnitsString())
	}
}

// Seconds is FromMillis(ms, S) without the error.
func Seconds(ms float64) float64 {
	return ms / 1000
}
