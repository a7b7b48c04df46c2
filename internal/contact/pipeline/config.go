package pipeline

import (
	"fmt"

	"github.com/banshee-data/contact.report/internal/config"
	"github.com/banshee-data/contact.report/internal/contact/l2ground"
	"github.com/banshee-data/contact.report/internal/contact/l3region"
	"github.com/banshee-data/contact.report/internal/contact/l4signal"
	"github.com/banshee-data/contact.report/internal/contact/l5events"
	"github.com/banshee-data/contact.report/internal/contact/l6gate"
)

// Config holds one configuration per stage. Nothing is read from globals.
type Config struct {
	Ground l2ground.Config
	Region l3region.Config
	Signal l4signal.Config
	Events l5events.Config
	Gate   l6gate.Config
}

// DefaultConfig returns every stage's defaults.
func DefaultConfig() Config {
	return Config{
		Ground: l2ground.DefaultConfig(),
		Region: l3region.DefaultConfig(),
		Signal: l4signal.DefaultConfig(),
		Events: l5events.DefaultConfig(),
		Gate:   l6gate.DefaultConfig(),
	}
}

// Validate checks every stage configuration.
func (c Config) Validate() error {
	if err := c.Ground.Validate(); err != nil {
		return fmt.Errorf("ground: %w", err)
	}
	if err := c.Region.Validate(); err != nil {
		return fmt.Errorf("region: %w", err)
	}
	if err := c.Signal.Validate(); err != nil {
		return fmt.Errorf("signal: %w", err)
	}
	if err := c.Events.Validate(); err != nil {
		return fmt.Errorf("events: %w", err)
	}
	if err := c.Gate.Validate(); err != nil {
		return fmt.Errorf("gate: %w", err)
	}
	return nil
}

// ConfigFromTuning maps a tuning file onto the stage configurations. Keys
// absent from t take their defaults.
func ConfigFromTuning(t *config.TuningConfig) Config {
	if t == nil {
		t = config.EmptyTuningConfig()
	}
	return Config{
		Ground: l2ground.Config{
			EdgeSigma:     t.GetEdgeSigma(),
			MinMagnitude:  t.GetMinEdgeMagnitude(),
			ThetaStepDeg:  t.GetThetaStepDeg(),
			TopK:          t.GetHoughTopK(),
			NMSThetaDeg:   t.GetNMSThetaDeg(),
			NMSRho:        t.GetNMSRho(),
			MergeThetaDeg: t.GetMergeThetaDeg(),
			MergeRho:      t.GetMergeRho(),
			MinConfidence: t.GetMinGroundConfidence(),
		},
		Region: l3region.Config{
			RectW:         t.GetRectWidth(),
			RectH:         t.GetRectHeight(),
			StrideX:       t.GetStrideX(),
			StrideY:       t.GetStrideY(),
			BandHeight:    t.GetBandHeight(),
			MaxPairs:      t.GetMaxPairs(),
			MinFrames:     t.GetRegionMinFrames(),
			TopDeltas:     t.GetTopDeltas(),
			PeakSigma:     t.GetPeakSigma(),
			MinPeaks:      t.GetMinPeaks(),
			SearchRadius:  t.GetSearchRadius(),
			TrackMargin:   t.GetTrackMargin(),
			MinConfidence: t.GetMinRegionConfidence(),
			LowFeature:    t.GetLowFeature(),
			HighBodyCorr:  t.GetHighBodyCorr(),
			MinStability:  t.GetMinStability(),
		},
		Signal: l4signal.Config{
			Normalization:   t.GetNormalization(),
			PercentileLow:   t.GetPercentileLow(),
			PercentileHigh:  t.GetPercentileHigh(),
			Alpha:           t.GetEMAAlpha(),
			EnterThreshold:  t.GetEnterThreshold(),
			ExitThreshold:   t.GetExitThreshold(),
			DwellFrames:     t.GetDwellFrames(),
			MinDynamicRange: t.GetMinDynamicRange(),
			MinCrossFrames:  t.GetMinCrossFrames(),
		},
		Events: l5events.Config{
			Refinement:      t.GetRefinement(),
			RefineWindow:    t.GetRefineWindow(),
			Level:           t.GetCrossingLevel(),
			DerivativeScale: t.GetDerivativeScale(),
			MinIntervalMs:   t.GetMinIntervalMs(),
			MinGCTMs:        t.GetMinGCTMs(),
			MaxGCTMs:        t.GetMaxGCTMs(),
			MinFlightMs:     t.GetMinFlightMs(),
			MaxFlightMs:     t.GetMaxFlightMs(),
		},
		Gate: l6gate.Config{
			MinConfidence:        t.GetMinConfidence(),
			MinSparseConfidence:  t.GetMinSparseConfidence(),
			RequireView:          t.GetRequireView(),
			RequireRegion:        t.GetRequireRegion(),
			RequireContact:       t.GetRequireContact(),
			SanityMinGCTMs:       t.GetSanityMinGCTMs(),
			SanityMaxGCTMs:       t.GetSanityMaxGCTMs(),
			SanityMinFlightMs:    t.GetSanityMinFlightMs(),
			SanityMaxFlightMs:    t.GetSanityMaxFlightMs(),
			MinGCTConfidence:     t.GetMinGCTConfidence(),
			MinFlightConfidence:  t.GetMinFlightConfidence(),
			MinEventsConfidence:  t.GetMinEventsConfidence(),
			MinAngleConfidence:   t.GetMinAngleConfidence(),
			ReportMinGCTMs:       t.GetReportMinGCTMs(),
			ReportMaxGCTMs:       t.GetReportMaxGCTMs(),
			ReportMinFlightMs:    t.GetReportMinFlightMs(),
			ReportMaxFlightMs:    t.GetReportMaxFlightMs(),
			MinReportedHops:      t.GetMinReportedHops(),
			MaxAngleDeg:          t.GetMaxAngleDeg(),
			AllowPartial:         t.GetAllowPartial(),
			MaxDiagnosticSamples: t.GetMaxDiagnosticSamples(),
		},
	}
}
