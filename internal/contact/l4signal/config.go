package l4signal

import "fmt"

// Normalization methods.
const (
	NormalizationPercentile = "percentile"
	NormalizationMAD        = "mad"
)

// Config holds the contact-signal parameters.
type Config struct {
	Normalization   string  // "percentile" or "mad" (default: percentile)
	PercentileLow   float64 // lower anchor of the percentile map (default: 0.05)
	PercentileHigh  float64 // upper anchor of the percentile map (default: 0.95)
	Alpha           float64 // EMA smoothing factor (default: 0.2)
	EnterThreshold  float64 // smoothed score that enters contact (default: 0.3)
	ExitThreshold   float64 // smoothed score below which contact ends (default: 0.15)
	DwellFrames     int     // frames a flip must persist before it commits (default: 2)
	MinDynamicRange float64 // smoothed range required to trust the signal (default: 0.1)
	MinCrossFrames  int     // frames required above enter and below exit (default: 2)
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Normalization:   NormalizationPercentile,
		PercentileLow:   0.05,
		PercentileHigh:  0.95,
		Alpha:           0.2,
		EnterThreshold:  0.3,
		ExitThreshold:   0.15,
		DwellFrames:     2,
		MinDynamicRange: 0.1,
		MinCrossFrames:  2,
	}
}

// Validate checks that the configuration values are usable.
func (c Config) Validate() error {
	if c.Normalization != NormalizationPercentile && c.Normalization != NormalizationMAD {
		return fmt.Errorf("unknown normalization %q", c.Normalization)
	}
	if c.PercentileLow < 0 || c.PercentileHigh > 1 || c.PercentileLow >= c.PercentileHigh {
		return fmt.Errorf("percentile anchors must satisfy 0 <= low < high <= 1, got %f/%f", c.PercentileLow, c.PercentileHigh)
	}
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in (0, 1], got %f", c.Alpha)
	}
	if c.ExitThreshold >= c.EnterThreshold {
		return fmt.Errorf("exit threshold %f must be below enter threshold %f", c.ExitThreshold, c.EnterThreshold)
	}
	if c.DwellFrames < 1 {
		return fmt.Errorf("dwell frames must be at least 1, got %d", c.DwellFrames)
	}
	if c.MinDynamicRange < 0 || c.MinCrossFrames < 0 {
		return fmt.Errorf("safeguard thresholds must be non-negative")
	}
	return nil
}
