package l6gate

import "fmt"

// Config holds the gate policy. Floors are compared with >=, bounds are
// inclusive.
type Config struct {
	MinConfidence       float64 // overall floor with dense frame samples (default: 0.35)
	MinSparseConfidence float64 // overall floor with events only (default: 0.6)

	RequireView    bool // hard fail without a ground line (default: true)
	RequireRegion  bool // hard fail without a tracked contact region (default: true)
	RequireContact bool // hard fail without a detected contact signal (default: true)

	// Sanity bounds. Anything outside is physically implausible and fails
	// the whole result.
	SanityMinGCTMs    float64 // default: 20
	SanityMaxGCTMs    float64 // default: 1000
	SanityMinFlightMs float64 // default: 20
	SanityMaxFlightMs float64 // default: 2000

	// Per-metric floors and reporting bounds for the soft tier.
	MinGCTConfidence    float64 // default: 0.4
	MinFlightConfidence float64 // default: 0.4
	MinEventsConfidence float64 // default: 0.3
	MinAngleConfidence  float64 // default: 0.3
	ReportMinGCTMs      float64 // default: 50
	ReportMaxGCTMs      float64 // default: 450
	ReportMinFlightMs   float64 // default: 100
	ReportMaxFlightMs   float64 // default: 900
	MinReportedHops     int     // default: 1
	MaxAngleDeg         float64 // largest reported contact-patch tilt (default: 30)

	AllowPartial         bool // keep a complete status after soft redaction (default: true)
	MaxDiagnosticSamples int  // samples kept on a hard fail (default: 64)
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MinConfidence:        0.35,
		MinSparseConfidence:  0.6,
		RequireView:          true,
		RequireRegion:        true,
		RequireContact:       true,
		SanityMinGCTMs:       20,
		SanityMaxGCTMs:       1000,
		SanityMinFlightMs:    20,
		SanityMaxFlightMs:    2000,
		MinGCTConfidence:     0.4,
		MinFlightConfidence:  0.4,
		MinEventsConfidence:  0.3,
		MinAngleConfidence:   0.3,
		ReportMinGCTMs:       50,
		ReportMaxGCTMs:       450,
		ReportMinFlightMs:    100,
		ReportMaxFlightMs:    900,
		MinReportedHops:      1,
		MaxAngleDeg:          30,
		AllowPartial:         true,
		MaxDiagnosticSamples: 64,
	}
}

// Validate checks that the configuration values are usable.
func (c Config) Validate() error {
	floors := []struct {
		name string
		v    float64
	}{
		{"min_confidence", c.MinConfidence},
		{"min_sparse_confidence", c.MinSparseConfidence},
		{"min_gct_confidence", c.MinGCTConfidence},
		{"min_flight_confidence", c.MinFlightConfidence},
		{"min_events_confidence", c.MinEventsConfidence},
		{"min_angle_confidence", c.MinAngleConfidence},
	}
	for _, f := range floors {
		if f.v < 0 || f.v > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %f", f.name, f.v)
		}
	}
	if c.MinSparseConfidence < c.MinConfidence {
		return fmt.Errorf("sparse confidence floor %f is below the dense floor %f", c.MinSparseConfidence, c.MinConfidence)
	}
	if c.SanityMinGCTMs < 0 || c.SanityMaxGCTMs <= c.SanityMinGCTMs {
		return fmt.Errorf("GCT sanity bounds must satisfy 0 <= min < max, got [%f, %f]", c.SanityMinGCTMs, c.SanityMaxGCTMs)
	}
	if c.SanityMinFlightMs < 0 || c.SanityMaxFlightMs <= c.SanityMinFlightMs {
		return fmt.Errorf("flight sanity bounds must satisfy 0 <= min < max, got [%f, %f]", c.SanityMinFlightMs, c.SanityMaxFlightMs)
	}
	if c.ReportMaxGCTMs <= c.ReportMinGCTMs {
		return fmt.Errorf("GCT reporting bounds are empty: [%f, %f]", c.ReportMinGCTMs, c.ReportMaxGCTMs)
	}
	if c.ReportMaxFlightMs <= c.ReportMinFlightMs {
		return fmt.Errorf("flight reporting bounds are empty: [%f, %f]", c.ReportMinFlightMs, c.ReportMaxFlightMs)
	}
	if c.MinReportedHops < 0 {
		return fmt.Errorf("min reported hops must be non-negative, got %d", c.MinReportedHops)
	}
	if c.MaxAngleDeg <= 0 || c.MaxAngleDeg > 90 {
		return fmt.Errorf("max angle must be in (0, 90], got %f", c.MaxAngleDeg)
	}
	if c.MaxDiagnosticSamples < 0 {
		return fmt.Errorf("max diagnostic samples must be non-negative, got %d", c.MaxDiagnosticSamples)
	}
	return nil
}
