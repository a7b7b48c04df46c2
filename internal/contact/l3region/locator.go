package l3region

import (
	"math"

	"github.com/banshee-data/contact.report/internal/contact/l1frames"
	"github.com/banshee-data/contact.report/internal/contact/l2ground"
	"github.com/banshee-data/contact.report/internal/mathutil"
	"github.com/banshee-data/contact.report/internal/monitoring"
)

// Reason tags attached to every Location.
const (
	ReasonNoGround           = "NO_GROUND"
	ReasonInsufficientFrames = "INSUFFICIENT_FRAMES"
	ReasonNoCandidates       = "NO_CANDIDATES"
	ReasonLowSharpness       = "LOW_SHARPNESS"
	ReasonInsufficientPeaks  = "INSUFFICIENT_PEAKS"
	ReasonLowCadence         = "LOW_CADENCE"
	ReasonLowConcentration   = "LOW_CONCENTRATION"
	ReasonFarFromGround      = "FAR_FROM_GROUND"
	ReasonHighBodyCorr       = "HIGH_BODY_CORR"
	ReasonUnstableTrack      = "UNSTABLE_TRACK"
	ReasonLowConfidence      = "LOW_CONFIDENCE"
)

// Region is the chosen contact rectangle in frame pixels.
type Region struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	W          int     `json:"w"`
	H          int     `json:"h"`
	Footness   float64 `json:"footness"`
	Stability  float64 `json:"stability"`
	Confidence float64 `json:"confidence"`
}

// Location is the locator output. Region holds the best candidate whenever
// one was scored; Found reports whether it passed MinConfidence.
type Location struct {
	Region     Region   `json:"region"`
	Found      bool     `json:"found"`
	Features   Features `json:"features"`
	Candidates int      `json:"candidates"`
	Reasons    []string `json:"reasons,omitempty"`
}

type candidate struct {
	x, y   int
	energy []float64
	mean   float64
	height float64
}

// Locate searches the band above the ground line for the rectangle whose
// motion energy most resembles foot strikes.
func Locate(frames []l1frames.Frame, ground l2ground.Model, cfg Config) Location {
	var loc Location
	if !ground.Known() {
		loc.Reasons = []string{ReasonNoGround}
		return loc
	}
	if len(frames) < cfg.MinFrames {
		loc.Reasons = []string{ReasonInsufficientFrames}
		return loc
	}

	tables := energyTables(frames, cfg.MaxPairs)
	window := frames[len(frames)-len(tables)-1:]
	w, h := frames[0].Width, frames[0].Height

	cands := bandCandidates(tables, ground, w, h, cfg)
	loc.Candidates = len(cands)
	if len(cands) == 0 {
		loc.Reasons = []string{ReasonNoCandidates}
		return loc
	}

	var bandMean float64
	for _, c := range cands {
		bandMean += c.mean
	}
	bandMean /= float64(len(cands))
	if bandMean == 0 {
		// Nothing moved anywhere in the band.
		loc.Reasons = []string{ReasonNoCandidates}
		return loc
	}

	bestIdx, bestFoot := -1, -1.0
	var bestFeat Features
	for i, c := range cands {
		f := Features{
			Sharpness:     sharpness(c.energy, cfg.TopDeltas),
			Concentration: concentration(c.mean, bandMean),
			Proximity:     proximity(c.height, cfg.BandHeight),
		}
		peaks := peakIndices(c.energy, cfg.PeakSigma)
		f.Peaks = len(peaks)
		f.Cadence = cadence(peaks, cfg.MinPeaks)
		if c.y-cfg.RectH >= 0 {
			above := series(tables, c.x, c.y-cfg.RectH, cfg.RectW, cfg.RectH)
			f.BodyCorrelation = math.Max(0, mathutil.Pearson(c.energy, above))
		}
		if fn := f.Footness(); fn > bestFoot {
			bestIdx, bestFoot, bestFeat = i, fn, f
		}
	}

	best := cands[bestIdx]
	r := Region{X: best.x, Y: best.y, W: cfg.RectW, H: cfg.RectH, Footness: bestFoot}
	r.Stability = trackStability(window, r, cfg.SearchRadius, cfg.TrackMargin)
	r.Confidence = mathutil.Clamp01(0.5*r.Footness + 0.5*r.Stability)

	loc.Region = r
	loc.Features = bestFeat
	loc.Found = r.Confidence >= cfg.MinConfidence
	loc.Reasons = featureReasons(bestFeat, r, loc.Found, cfg)
	monitoring.Tracef("region: best (%d,%d) footness=%.3f stability=%.3f conf=%.3f of %d candidates",
		r.X, r.Y, r.Footness, r.Stability, r.Confidence, len(cands))
	return loc
}

// bandCandidates slides the rectangle across the band above the ground,
// left to right and top to bottom. Rectangle centroids range from
// BandHeight-RectH/2 above the line down to the line itself.
func bandCandidates(tables []energyTable, ground l2ground.Model, w, h int, cfg Config) []candidate {
	var out []candidate
	for x := 0; x+cfg.RectW <= w; x += cfg.StrideX {
		cx := float64(x) + float64(cfg.RectW)/2
		gy := ground.YAt(cx)
		if math.IsNaN(gy) {
			continue
		}
		top := int(math.Floor(gy - cfg.BandHeight))
		last := int(math.Floor(gy - float64(cfg.RectH)/2))
		for y := top; y <= last; y += cfg.StrideY {
			if y < 0 || y+cfg.RectH > h {
				continue
			}
			e := series(tables, x, y, cfg.RectW, cfg.RectH)
			out = append(out, candidate{
				x:      x,
				y:      y,
				energy: e,
				mean:   mathutil.Mean(e),
				height: ground.HeightAbove(cx, float64(y)+float64(cfg.RectH)/2),
			})
		}
	}
	return out
}

func featureReasons(f Features, r Region, found bool, cfg Config) []string {
	var reasons []string
	if f.Sharpness < cfg.LowFeature {
		reasons = append(reasons, ReasonLowSharpness)
	}
	if f.Peaks < cfg.MinPeaks {
		reasons = append(reasons, ReasonInsufficientPeaks)
	} else if f.Cadence < cfg.LowFeature {
		reasons = append(reasons, ReasonLowCadence)
	}
	if f.Concentration < cfg.LowFeature {
		reasons = append(reasons, ReasonLowConcentration)
	}
	if f.Proximity < cfg.LowFeature {
		reasons = append(reasons, ReasonFarFromGround)
	}
	if f.BodyCorrelation > cfg.HighBodyCorr {
		reasons = append(reasons, ReasonHighBodyCorr)
	}
	if r.Stability < cfg.MinStability {
		reasons = append(reasons, ReasonUnstableTrack)
	}
	if !found {
		reasons = append(reasons, ReasonLowConfidence)
	}
	return reasons
}
