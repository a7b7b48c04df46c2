package l5events

import "fmt"

// Refinement methods.
const (
	RefineMaxDerivative = "max-derivative"
	RefineLevelCrossing = "level-crossing"
	RefineNone          = "none"
)

// Config holds the event extraction parameters.
type Config struct {
	Refinement      string  // "max-derivative", "level-crossing" or "none" (default: max-derivative)
	RefineWindow    int     // frames added either side of the search run (default: 3)
	Level           float64 // crossing level on the smoothed score (default: 0.5)
	DerivativeScale float64 // step size that earns full refinement confidence (default: 0.3)
	MinIntervalMs   float64 // shortest landing-to-takeoff interval paired (default: 50)
	MinGCTMs        float64 // default: 50
	MaxGCTMs        float64 // default: 450
	MinFlightMs     float64 // default: 100
	MaxFlightMs     float64 // default: 900
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Refinement:      RefineMaxDerivative,
		RefineWindow:    3,
		Level:           0.5,
		DerivativeScale: 0.3,
		MinIntervalMs:   50,
		MinGCTMs:        50,
		MaxGCTMs:        450,
		MinFlightMs:     100,
		MaxFlightMs:     900,
	}
}

// Validate checks that the configuration values are usable.
func (c Config) Validate() error {
	switch c.Refinement {
	case RefineMaxDerivative, RefineLevelCrossing, RefineNone:
	default:
		return fmt.Errorf("unknown refinement %q", c.Refinement)
	}
	if c.RefineWindow < 0 {
		return fmt.Errorf("refine window must be non-negative, got %d", c.RefineWindow)
	}
	if c.Level <= 0 || c.Level >= 1 {
		return fmt.Errorf("crossing level must be in (0, 1), got %f", c.Level)
	}
	if c.DerivativeScale <= 0 {
		return fmt.Errorf("derivative scale must be positive, got %f", c.DerivativeScale)
	}
	if c.MinIntervalMs < 0 {
		return fmt.Errorf("min interval must be non-negative, got %f", c.MinIntervalMs)
	}
	if c.MinGCTMs < 0 || c.MaxGCTMs <= c.MinGCTMs {
		return fmt.Errorf("GCT bounds must satisfy 0 <= min < max, got [%f, %f]", c.MinGCTMs, c.MaxGCTMs)
	}
	if c.MinFlightMs < 0 || c.MaxFlightMs <= c.MinFlightMs {
		return fmt.Errorf("flight bounds must satisfy 0 <= min < max, got [%f, %f]", c.MinFlightMs, c.MaxFlightMs)
	}
	return nil
}
