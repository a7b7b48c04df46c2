package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// maxFileSize caps config files at 1MB.
const maxFileSize = 1 * 1024 * 1024

// TuningConfig represents the root configuration for the analysis pipeline.
// Every field is optional: nil means "use the default", which the matching
// Get* method supplies. The same keys are accepted in JSON and YAML.
type TuningConfig struct {
	// Ground line detection params
	EdgeSigma           *float64 `json:"edge_sigma,omitempty" yaml:"edge_sigma,omitempty"`
	MinEdgeMagnitude    *float64 `json:"min_edge_magnitude,omitempty" yaml:"min_edge_magnitude,omitempty"`
	ThetaStepDeg        *float64 `json:"theta_step_deg,omitempty" yaml:"theta_step_deg,omitempty"`
	HoughTopK           *int     `json:"hough_top_k,omitempty" yaml:"hough_top_k,omitempty"`
	NMSThetaDeg         *float64 `json:"nms_theta_deg,omitempty" yaml:"nms_theta_deg,omitempty"`
	NMSRho              *float64 `json:"nms_rho,omitempty" yaml:"nms_rho,omitempty"`
	MergeThetaDeg       *float64 `json:"merge_theta_deg,omitempty" yaml:"merge_theta_deg,omitempty"`
	MergeRho            *float64 `json:"merge_rho,omitempty" yaml:"merge_rho,omitempty"`
	MinGroundConfidence *float64 `json:"min_ground_confidence,omitempty" yaml:"min_ground_confidence,omitempty"`

	// Contact region params
	RectWidth           *int     `json:"rect_width,omitempty" yaml:"rect_width,omitempty"`
	RectHeight          *int     `json:"rect_height,omitempty" yaml:"rect_height,omitempty"`
	StrideX             *int     `json:"stride_x,omitempty" yaml:"stride_x,omitempty"`
	StrideY             *int     `json:"stride_y,omitempty" yaml:"stride_y,omitempty"`
	BandHeight          *float64 `json:"band_height,omitempty" yaml:"band_height,omitempty"`
	MaxPairs            *int     `json:"max_pairs,omitempty" yaml:"max_pairs,omitempty"`
	RegionMinFrames     *int     `json:"region_min_frames,omitempty" yaml:"region_min_frames,omitempty"`
	TopDeltas           *int     `json:"top_deltas,omitempty" yaml:"top_deltas,omitempty"`
	PeakSigma           *float64 `json:"peak_sigma,omitempty" yaml:"peak_sigma,omitempty"`
	MinPeaks            *int     `json:"min_peaks,omitempty" yaml:"min_peaks,omitempty"`
	SearchRadius        *int     `json:"search_radius,omitempty" yaml:"search_radius,omitempty"`
	TrackMargin         *int     `json:"track_margin,omitempty" yaml:"track_margin,omitempty"`
	MinRegionConfidence *float64 `json:"min_region_confidence,omitempty" yaml:"min_region_confidence,omitempty"`
	LowFeature          *float64 `json:"low_feature,omitempty" yaml:"low_feature,omitempty"`
	HighBodyCorr        *float64 `json:"high_body_corr,omitempty" yaml:"high_body_corr,omitempty"`
	MinStability        *float64 `json:"min_stability,omitempty" yaml:"min_stability,omitempty"`

	// Contact signal params
	Normalization   *string  `json:"normalization,omitempty" yaml:"normalization,omitempty"`
	PercentileLow   *float64 `json:"percentile_low,omitempty" yaml:"percentile_low,omitempty"`
	PercentileHigh  *float64 `json:"percentile_high,omitempty" yaml:"percentile_high,omitempty"`
	EMAAlpha        *float64 `json:"ema_alpha,omitempty" yaml:"ema_alpha,omitempty"`
	EnterThreshold  *float64 `json:"enter_threshold,omitempty" yaml:"enter_threshold,omitempty"`
	ExitThreshold   *float64 `json:"exit_threshold,omitempty" yaml:"exit_threshold,omitempty"`
	DwellFrames     *int     `json:"dwell_frames,omitempty" yaml:"dwell_frames,omitempty"`
	MinDynamicRange *float64 `json:"min_dynamic_range,omitempty" yaml:"min_dynamic_range,omitempty"`
	MinCrossFrames  *int     `json:"min_cross_frames,omitempty" yaml:"min_cross_frames,omitempty"`

	// Event extraction params
	Refinement      *string  `json:"refinement,omitempty" yaml:"refinement,omitempty"`
	RefineWindow    *int     `json:"refine_window,omitempty" yaml:"refine_window,omitempty"`
	CrossingLevel   *float64 `json:"crossing_level,omitempty" yaml:"crossing_level,omitempty"`
	DerivativeScale *float64 `json:"derivative_scale,omitempty" yaml:"derivative_scale,omitempty"`
	MinIntervalMs   *float64 `json:"min_interval_ms,omitempty" yaml:"min_interval_ms,omitempty"`
	MinGCTMs        *float64 `json:"min_gct_ms,omitempty" yaml:"min_gct_ms,omitempty"`
	MaxGCTMs        *float64 `json:"max_gct_ms,omitempty" yaml:"max_gct_ms,omitempty"`
	MinFlightMs     *float64 `json:"min_flight_ms,omitempty" yaml:"min_flight_ms,omitempty"`
	MaxFlightMs     *float64 `json:"max_flight_ms,omitempty" yaml:"max_flight_ms,omitempty"`

	// Confidence gate params
	MinConfidence        *float64 `json:"min_confidence,omitempty" yaml:"min_confidence,omitempty"`
	MinSparseConfidence  *float64 `json:"min_sparse_confidence,omitempty" yaml:"min_sparse_confidence,omitempty"`
	RequireView          *bool    `json:"require_view,omitempty" yaml:"require_view,omitempty"`
	RequireRegion        *bool    `json:"require_region,omitempty" yaml:"require_region,omitempty"`
	RequireContact       *bool    `json:"require_contact,omitempty" yaml:"require_contact,omitempty"`
	SanityMinGCTMs       *float64 `json:"sanity_min_gct_ms,omitempty" yaml:"sanity_min_gct_ms,omitempty"`
	SanityMaxGCTMs       *float64 `json:"sanity_max_gct_ms,omitempty" yaml:"sanity_max_gct_ms,omitempty"`
	SanityMinFlightMs    *float64 `json:"sanity_min_flight_ms,omitempty" yaml:"sanity_min_flight_ms,omitempty"`
	SanityMaxFlightMs    *float64 `json:"sanity_max_flight_ms,omitempty" yaml:"sanity_max_flight_ms,omitempty"`
	MinGCTConfidence     *float64 `json:"min_gct_confidence,omitempty" yaml:"min_gct_confidence,omitempty"`
	MinFlightConfidence  *float64 `json:"min_flight_confidence,omitempty" yaml:"min_flight_confidence,omitempty"`
	MinEventsConfidence  *float64 `json:"min_events_confidence,omitempty" yaml:"min_events_confidence,omitempty"`
	MinAngleConfidence   *float64 `json:"min_angle_confidence,omitempty" yaml:"min_angle_confidence,omitempty"`
	ReportMinGCTMs       *float64 `json:"report_min_gct_ms,omitempty" yaml:"report_min_gct_ms,omitempty"`
	ReportMaxGCTMs       *float64 `json:"report_max_gct_ms,omitempty" yaml:"report_max_gct_ms,omitempty"`
	ReportMinFlightMs    *float64 `json:"report_min_flight_ms,omitempty" yaml:"report_min_flight_ms,omitempty"`
	ReportMaxFlightMs    *float64 `json:"report_max_flight_ms,omitempty" yaml:"report_max_flight_ms,omitempty"`
	MinReportedHops      *int     `json:"min_reported_hops,omitempty" yaml:"min_reported_hops,omitempty"`
	MaxAngleDeg          *float64 `json:"max_angle_deg,omitempty" yaml:"max_angle_deg,omitempty"`
	AllowPartial         *bool    `json:"allow_partial,omitempty" yaml:"allow_partial,omitempty"`
	MaxDiagnosticSamples *int     `json:"max_diagnostic_samples,omitempty" yaml:"max_diagnostic_samples,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a .json, .yaml or .yml file.
// Fields omitted from the file keep their defaults, so partial configs are
// safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if ext == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from internal/contact/pipeline/
		"../../../../" + DefaultConfigPath, // from internal/contact/storage/sqlite/
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks the values that are set. Cross-field checks use the
// effective values, so a partial config is validated against the defaults.
func (c *TuningConfig) Validate() error {
	if c.Normalization != nil {
		switch *c.Normalization {
		case "percentile", "mad":
		default:
			return fmt.Errorf("normalization must be \"percentile\" or \"mad\", got %q", *c.Normalization)
		}
	}
	if c.Refinement != nil {
		switch *c.Refinement {
		case "max-derivative", "level-crossing", "none":
		default:
			return fmt.Errorf("refinement must be \"max-derivative\", \"level-crossing\" or \"none\", got %q", *c.Refinement)
		}
	}

	if a := c.GetEMAAlpha(); a <= 0 || a > 1 {
		return fmt.Errorf("ema_alpha must be in (0, 1], got %f", a)
	}
	if lo, hi := c.GetPercentileLow(), c.GetPercentileHigh(); lo < 0 || hi > 1 || lo >= hi {
		return fmt.Errorf("percentile_low/percentile_high must satisfy 0 <= low < high <= 1, got %f/%f", lo, hi)
	}
	if enter, exit := c.GetEnterThreshold(), c.GetExitThreshold(); exit >= enter {
		return fmt.Errorf("exit_threshold %f must be below enter_threshold %f", exit, enter)
	}
	if lo, hi := c.GetMinGCTMs(), c.GetMaxGCTMs(); lo < 0 || hi <= lo {
		return fmt.Errorf("min_gct_ms/max_gct_ms must satisfy 0 <= min < max, got %f/%f", lo, hi)
	}
	if lo, hi := c.GetMinFlightMs(), c.GetMaxFlightMs(); lo < 0 || hi <= lo {
		return fmt.Errorf("min_flight_ms/max_flight_ms must satisfy 0 <= min < max, got %f/%f", lo, hi)
	}
	if lo, hi := c.GetMinConfidence(), c.GetMinSparseConfidence(); hi < lo {
		return fmt.Errorf("min_sparse_confidence %f must not be below min_confidence %f", hi, lo)
	}

	positive := []struct {
		name string
		v    int
	}{
		{"rect_width", c.GetRectWidth()},
		{"rect_height", c.GetRectHeight()},
		{"stride_x", c.GetStrideX()},
		{"stride_y", c.GetStrideY()},
		{"hough_top_k", c.GetHoughTopK()},
		{"max_pairs", c.GetMaxPairs()},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", p.name, p.v)
		}
	}
	nonNegative := []struct {
		name string
		v    int
	}{
		{"dwell_frames", c.GetDwellFrames()},
		{"refine_window", c.GetRefineWindow()},
		{"min_reported_hops", c.GetMinReportedHops()},
		{"max_diagnostic_samples", c.GetMaxDiagnosticSamples()},
	}
	for _, p := range nonNegative {
		if p.v < 0 {
			return fmt.Errorf("%s must be non-negative, got %d", p.name, p.v)
		}
	}
	return nil
}

// GetEdgeSigma returns the edge_sigma value or the default.
func (c *TuningConfig) GetEdgeSigma() float64 {
	if c.EdgeSigma == nil {
		return 1.5
	}
	return *c.EdgeSigma
}

// GetMinEdgeMagnitude returns the min_edge_magnitude value or the default.
func (c *TuningConfig) GetMinEdgeMagnitude() float64 {
	if c.MinEdgeMagnitude == nil {
		return 1
	}
	return *c.MinEdgeMagnitude
}

// GetThetaStepDeg returns the theta_step_deg value or the default.
func (c *TuningConfig) GetThetaStepDeg() float64 {
	if c.ThetaStepDeg == nil {
		return 1
	}
	return *c.ThetaStepDeg
}

// GetHoughTopK returns the hough_top_k value or the default.
func (c *TuningConfig) GetHoughTopK() int {
	if c.HoughTopK == nil {
		return 10
	}
	return *c.HoughTopK
}

// GetNMSThetaDeg returns the nms_theta_deg value or the default.
func (c *TuningConfig) GetNMSThetaDeg() float64 {
	if c.NMSThetaDeg == nil {
		return 5
	}
	return *c.NMSThetaDeg
}

// GetNMSRho returns the nms_rho value or the default.
func (c *TuningConfig) GetNMSRho() float64 {
	if c.NMSRho == nil {
		return 8
	}
	return *c.NMSRho
}

// GetMergeThetaDeg returns the merge_theta_deg value or the default.
func (c *TuningConfig) GetMergeThetaDeg() float64 {
	if c.MergeThetaDeg == nil {
		return 15
	}
	return *c.MergeThetaDeg
}

// GetMergeRho returns the merge_rho value or the default.
func (c *TuningConfig) GetMergeRho() float64 {
	if c.MergeRho == nil {
		return 20
	}
	return *c.MergeRho
}

// GetMinGroundConfidence returns the min_ground_confidence value or the default.
func (c *TuningConfig) GetMinGroundConfidence() float64 {
	if c.MinGroundConfidence == nil {
		return 0.3
	}
	return *c.MinGroundConfidence
}

// GetRectWidth returns the rect_width value or the default.
func (c *TuningConfig) GetRectWidth() int {
	if c.RectWidth == nil {
		return 32
	}
	return *c.RectWidth
}

// GetRectHeight returns the rect_height value or the default.
func (c *TuningConfig) GetRectHeight() int {
	if c.RectHeight == nil {
		return 24
	}
	return *c.RectHeight
}

// GetStrideX returns the stride_x value or the default.
func (c *TuningConfig) GetStrideX() int {
	if c.StrideX == nil {
		return 8
	}
	return *c.StrideX
}

// GetStrideY returns the stride_y value or the default.
func (c *TuningConfig) GetStrideY() int {
	if c.StrideY == nil {
		return 4
	}
	return *c.StrideY
}

// GetBandHeight returns the band_height value or the default.
func (c *TuningConfig) GetBandHeight() float64 {
	if c.BandHeight == nil {
		return 48
	}
	return *c.BandHeight
}

// GetMaxPairs returns the max_pairs value or the default.
func (c *TuningConfig) GetMaxPairs() int {
	if c.MaxPairs == nil {
		return 64
	}
	return *c.MaxPairs
}

// GetRegionMinFrames returns the region_min_frames value or the default.
func (c *TuningConfig) GetRegionMinFrames() int {
	if c.RegionMinFrames == nil {
		return 3
	}
	return *c.RegionMinFrames
}

// GetTopDeltas returns the top_deltas value or the default.
func (c *TuningConfig) GetTopDeltas() int {
	if c.TopDeltas == nil {
		return 3
	}
	return *c.TopDeltas
}

// GetPeakSigma returns the peak_sigma value or the default.
func (c *TuningConfig) GetPeakSigma() float64 {
	if c.PeakSigma == nil {
		return 0.5
	}
	return *c.PeakSigma
}

// GetMinPeaks returns the min_peaks value or the default.
func (c *TuningConfig) GetMinPeaks() int {
	if c.MinPeaks == nil {
		return 3
	}
	return *c.MinPeaks
}

// GetSearchRadius returns the search_radius value or the default.
func (c *TuningConfig) GetSearchRadius() int {
	if c.SearchRadius == nil {
		return 6
	}
	return *c.SearchRadius
}

// GetTrackMargin returns the track_margin value or the default.
func (c *TuningConfig) GetTrackMargin() int {
	if c.TrackMargin == nil {
		return 8
	}
	return *c.TrackMargin
}

// GetMinRegionConfidence returns the min_region_confidence value or the default.
func (c *TuningConfig) GetMinRegionConfidence() float64 {
	if c.MinRegionConfidence == nil {
		return 0.35
	}
	return *c.MinRegionConfidence
}

// GetLowFeature returns the low_feature value or the default.
func (c *TuningConfig) GetLowFeature() float64 {
	if c.LowFeature == nil {
		return 0.3
	}
	return *c.LowFeature
}

// GetHighBodyCorr returns the high_body_corr value or the default.
func (c *TuningConfig) GetHighBodyCorr() float64 {
	if c.HighBodyCorr == nil {
		return 0.5
	}
	return *c.HighBodyCorr
}

// GetMinStability returns the min_stability value or the default.
func (c *TuningConfig) GetMinStability() float64 {
	if c.MinStability == nil {
		return 0.5
	}
	return *c.MinStability
}

// GetNormalization returns the normalization value or the default.
func (c *TuningConfig) GetNormalization() string {
	if c.Normalization == nil {
		return "percentile"
	}
	return *c.Normalization
}

// GetPercentileLow returns the percentile_low value or the default.
func (c *TuningConfig) GetPercentileLow() float64 {
	if c.PercentileLow == nil {
		return 0.05
	}
	return *c.PercentileLow
}

// GetPercentileHigh returns the percentile_high value or the default.
func (c *TuningConfig) GetPercentileHigh() float64 {
	if c.PercentileHigh == nil {
		return 0.95
	}
	return *c.PercentileHigh
}

// GetEMAAlpha returns the ema_alpha value or the default.
func (c *TuningConfig) GetEMAAlpha() float64 {
	if c.EMAAlpha == nil {
		return 0.2
	}
	return *c.EMAAlpha
}

// GetEnterThreshold returns the enter_threshold value or the default.
func (c *TuningConfig) GetEnterThreshold() float64 {
	if c.EnterThreshold == nil {
		return 0.3
	}
	return *c.EnterThreshold
}

// GetExitThreshold returns the exit_threshold value or the default.
func (c *TuningConfig) GetExitThreshold() float64 {
	if c.ExitThreshold == nil {
		return 0.15
	}
	return *c.ExitThreshold
}

// GetDwellFrames returns the dwell_frames value or the default.
func (c *TuningConfig) GetDwellFrames() int {
	if c.DwellFrames == nil {
		return 2
	}
	return *c.DwellFrames
}

// GetMinDynamicRange returns the min_dynamic_range value or the default.
func (c *TuningConfig) GetMinDynamicRange() float64 {
	if c.MinDynamicRange == nil {
		return 0.1
	}
	return *c.MinDynamicRange
}

// GetMinCrossFrames returns the min_cross_frames value or the default.
func (c *TuningConfig) GetMinCrossFrames() int {
	if c.MinCrossFrames == nil {
		return 2
	}
	return *c.MinCrossFrames
}

// GetRefinement returns the refinement value or the default.
func (c *TuningConfig) GetRefinement() string {
	if c.Refinement == nil {
		return "max-derivative"
	}
	return *c.Refinement
}

// GetRefineWindow returns the refine_window value or the default.
func (c *TuningConfig) GetRefineWindow() int {
	if c.RefineWindow == nil {
		return 3
	}
	return *c.RefineWindow
}

// GetCrossingLevel returns the crossing_level value or the default.
func (c *TuningConfig) GetCrossingLevel() float64 {
	if c.CrossingLevel == nil {
		return 0.5
	}
	return *c.CrossingLevel
}

// GetDerivativeScale returns the derivative_scale value or the default.
func (c *TuningConfig) GetDerivativeScale() float64 {
	if c.DerivativeScale == nil {
		return 0.3
	}
	return *c.DerivativeScale
}

// GetMinIntervalMs returns the min_interval_ms value or the default.
func (c *TuningConfig) GetMinIntervalMs() float64 {
	if c.MinIntervalMs == nil {
		return 50
	}
	return *c.MinIntervalMs
}

// GetMinGCTMs returns the min_gct_ms value or the default.
func (c *TuningConfig) GetMinGCTMs() float64 {
	if c.MinGCTMs == nil {
		return 50
	}
	return *c.MinGCTMs
}

// GetMaxGCTMs returns the max_gct_ms value or the default.
func (c *TuningConfig) GetMaxGCTMs() float64 {
	if c.MaxGCTMs == nil {
		return 450
	}
	return *c.MaxGCTMs
}

// GetMinFlightMs returns the min_flight_ms value or the default.
func (c *TuningConfig) GetMinFlightMs() float64 {
	if c.MinFlightMs == nil {
		return 100
	}
	return *c.MinFlightMs
}

// GetMaxFlightMs returns the max_flight_ms value or the default.
func (c *TuningConfig) GetMaxFlightMs() float64 {
	if c.MaxFlightMs == nil {
		return 900
	}
	return *c.MaxFlightMs
}

// GetMinConfidence returns the min_confidence value or the default.
func (c *TuningConfig) GetMinConfidence() float64 {
	if c.MinConfidence == nil {
		return 0.35
	}
	return *c.MinConfidence
}

// GetMinSparseConfidence returns the min_sparse_confidence value or the default.
func (c *TuningConfig) GetMinSparseConfidence() float64 {
	if c.MinSparseConfidence == nil {
		return 0.6
	}
	return *c.MinSparseConfidence
}

// GetRequireView returns the require_view value or the default.
func (c *TuningConfig) GetRequireView() bool {
	if c.RequireView == nil {
		return true
	}
	return *c.RequireView
}

// GetRequireRegion returns the require_region value or the default.
func (c *TuningConfig) GetRequireRegion() bool {
	if c.RequireRegion == nil {
		return true
	}
	return *c.RequireRegion
}

// GetRequireContact returns the require_contact value or the default.
func (c *TuningConfig) GetRequireContact() bool {
	if c.RequireContact == nil {
		return true
	}
	return *c.RequireContact
}

// GetSanityMinGCTMs returns the sanity_min_gct_ms value or the default.
func (c *TuningConfig) GetSanityMinGCTMs() float64 {
	if c.SanityMinGCTMs == nil {
		return 20
	}
	return *c.SanityMinGCTMs
}

// GetSanityMaxGCTMs returns the sanity_max_gct_ms value or the default.
func (c *TuningConfig) GetSanityMaxGCTMs() float64 {
	if c.SanityMaxGCTMs == nil {
		return 1000
	}
	return *c.SanityMaxGCTMs
}

// GetSanityMinFlightMs returns the sanity_min_flight_ms value or the default.
func (c *TuningConfig) GetSanityMinFlightMs() float64 {
	if c.SanityMinFlightMs == nil {
		return 20
	}
	return *c.SanityMinFlightMs
}

// GetSanityMaxFlightMs returns the sanity_max_flight_ms value or the default.
func (c *TuningConfig) GetSanityMaxFlightMs() float64 {
	if c.SanityMaxFlightMs == nil {
		return 2000
	}
	return *c.SanityMaxFlightMs
}

// GetMinGCTConfidence returns the min_gct_confidence value or the default.
func (c *TuningConfig) GetMinGCTConfidence() float64 {
	if c.MinGCTConfidence == nil {
		return 0.4
	}
	return *c.MinGCTConfidence
}

// GetMinFlightConfidence returns the min_flight_confidence value or the default.
func (c *TuningConfig) GetMinFlightConfidence() float64 {
	if c.MinFlightConfidence == nil {
		return 0.4
	}
	return *c.MinFlightConfidence
}

// GetMinEventsConfidence returns the min_events_confidence value or the default.
func (c *TuningConfig) GetMinEventsConfidence() float64 {
	if c.MinEventsConfidence == nil {
		return 0.3
	}
	return *c.MinEventsConfidence
}

// GetMinAngleConfidence returns the min_angle_confidence value or the default.
func (c *TuningConfig) GetMinAngleConfidence() float64 {
	if c.MinAngleConfidence == nil {
		return 0.3
	}
	return *c.MinAngleConfidence
}

// GetReportMinGCTMs returns the report_min_gct_ms value or the default.
func (c *TuningConfig) GetReportMinGCTMs() float64 {
	if c.ReportMinGCTMs == nil {
		return 50
	}
	return *c.ReportMinGCTMs
}

// GetReportMaxGCTMs returns the report_max_gct_ms value or the default.
func (c *TuningConfig) GetReportMaxGCTMs() float64 {
	if c.ReportMaxGCTMs == nil {
		return 450
	}
	return *c.ReportMaxGCTMs
}

// GetReportMinFlightMs returns the report_min_flight_ms value or the default.
func (c *TuningConfig) GetReportMinFlightMs() float64 {
	if c.ReportMinFlightMs == nil {
		return 100
	}
	return *c.ReportMinFlightMs
}

// GetReportMaxFlightMs returns the report_max_flight_ms value or the default.
func (c *TuningConfig) GetReportMaxFlightMs() float64 {
	if c.ReportMaxFlightMs == nil {
		return 900
	}
	return *c.ReportMaxFlightMs
}

// GetMinReportedHops returns the min_reported_hops value or the default.
func (c *TuningConfig) GetMinReportedHops() int {
	if c.MinReportedHops == nil {
		return 1
	}
	return *c.MinReportedHops
}

// GetMaxAngleDeg returns the max_angle_deg value or the default.
func (c *TuningConfig) GetMaxAngleDeg() float64 {
	if c.MaxAngleDeg == nil {
		return 30
	}
	return *c.MaxAngleDeg
}

// GetAllowPartial returns the allow_partial value or the default.
func (c *TuningConfig) GetAllowPartial() bool {
	if c.AllowPartial == nil {
		return true
	}
	return *c.AllowPartial
}

// GetMaxDiagnosticSamples returns the max_diagnostic_samples value or the default.
func (c *TuningConfig) GetMaxDiagnosticSamples() int {
	if c.MaxDiagnosticSamples == nil {
		return 64
	}
	return *c.MaxDiagnosticSamples
}
