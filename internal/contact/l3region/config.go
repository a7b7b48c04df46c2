package l3region

import "fmt"

// Config holds the region search geometry and feature thresholds.
type Config struct {
	RectW, RectH     int     // candidate rectangle size (default: 32x24)
	StrideX, StrideY int     // slide step (default: 8x4)
	BandHeight       float64 // search band height above the ground line (default: 48)
	MaxPairs         int     // most recent frame pairs used for energy (default: 64)
	MinFrames        int     // frames required to attempt a search (default: 3)
	TopDeltas        int     // positive energy deltas averaged for sharpness (default: 3)
	PeakSigma        float64 // peak threshold = mean + PeakSigma*stddev (default: 0.5)
	MinPeaks         int     // peaks required for a cadence score (default: 3)
	SearchRadius     int     // tracking search half-window in px (default: 6)
	TrackMargin      int     // context added around the region while tracking (default: 8)
	MinConfidence    float64 // reject below this (default: 0.35)

	// Diagnostic tag thresholds.
	LowFeature   float64 // sharpness/cadence/concentration/proximity below this are tagged (default: 0.3)
	HighBodyCorr float64 // body correlation above this is tagged (default: 0.5)
	MinStability float64 // stability below this is tagged (default: 0.5)
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		RectW:         32,
		RectH:         24,
		StrideX:       8,
		StrideY:       4,
		BandHeight:    48,
		MaxPairs:      64,
		MinFrames:     3,
		TopDeltas:     3,
		PeakSigma:     0.5,
		MinPeaks:      3,
		SearchRadius:  6,
		TrackMargin:   8,
		MinConfidence: 0.35,
		LowFeature:    0.3,
		HighBodyCorr:  0.5,
		MinStability:  0.5,
	}
}

// Validate checks that the configuration values are usable.
func (c Config) Validate() error {
	if c.RectW < 2 || c.RectH < 2 {
		return fmt.Errorf("region must be at least 2x2, got %dx%d", c.RectW, c.RectH)
	}
	if c.StrideX < 1 || c.StrideY < 1 {
		return fmt.Errorf("strides must be positive, got %dx%d", c.StrideX, c.StrideY)
	}
	if c.BandHeight < float64(c.RectH)/2 {
		return fmt.Errorf("band height %.1f cannot hold half a %d px region", c.BandHeight, c.RectH)
	}
	if c.MaxPairs < 2 {
		return fmt.Errorf("max pairs must be at least 2, got %d", c.MaxPairs)
	}
	if c.MinFrames < 3 {
		return fmt.Errorf("min frames must be at least 3, got %d", c.MinFrames)
	}
	if c.TopDeltas < 1 || c.MinPeaks < 3 {
		return fmt.Errorf("top deltas must be >= 1 and min peaks >= 3")
	}
	if c.SearchRadius < 0 || c.TrackMargin < 0 {
		return fmt.Errorf("search radius and track margin must be non-negative")
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min confidence must be in [0, 1], got %f", c.MinConfidence)
	}
	return nil
}
