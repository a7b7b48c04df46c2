package l2ground

import "fmt"

// Config holds the ground detector thresholds.
type Config struct {
	EdgeSigma     float64 // edge threshold = mean + EdgeSigma*stddev of gradient magnitude (default: 1.5)
	MinMagnitude  float64 // absolute floor on edge magnitude (default: 1)
	ThetaStepDeg  float64 // Hough angular resolution (default: 1)
	TopK          int     // candidate lines kept per frame (default: 10)
	NMSThetaDeg   float64 // peak suppression half-window in angle (default: 5)
	NMSRho        float64 // peak suppression half-window in offset (default: 8)
	MergeThetaDeg float64 // cluster merge tolerance in angle (default: 15)
	MergeRho      float64 // cluster merge tolerance in offset (default: 20)
	MinConfidence float64 // report a line only at or above this (default: 0.3)
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		EdgeSigma:     1.5,
		MinMagnitude:  1,
		ThetaStepDeg:  1,
		TopK:          10,
		NMSThetaDeg:   5,
		NMSRho:        8,
		MergeThetaDeg: 15,
		MergeRho:      20,
		MinConfidence: 0.3,
	}
}

// Validate checks that the configuration values are usable.
func (c Config) Validate() error {
	if c.EdgeSigma < 0 {
		return fmt.Errorf("edge sigma must be non-negative, got %f", c.EdgeSigma)
	}
	if c.ThetaStepDeg <= 0 || c.ThetaStepDeg > 45 {
		return fmt.Errorf("theta step must be in (0, 45] degrees, got %f", c.ThetaStepDeg)
	}
	if c.TopK < 1 || c.TopK > MaxTopK {
		return fmt.Errorf("top-k must be in [1, %d], got %d", MaxTopK, c.TopK)
	}
	if c.MergeThetaDeg <= 0 || c.MergeRho <= 0 {
		return fmt.Errorf("merge tolerances must be positive, got %f deg / %f px", c.MergeThetaDeg, c.MergeRho)
	}
	if c.NMSThetaDeg < 0 || c.NMSRho < 0 {
		return fmt.Errorf("suppression windows must be non-negative")
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min confidence must be in [0, 1], got %f", c.MinConfidence)
	}
	return nil
}
