package l5events

import (
	"math"

	"github.com/banshee-data/contact.report/internal/mathutil"
)

// unrefinedConfidence is assigned to events left at their frame timestamp.
const unrefinedConfidence = 0.5

// crossing interpolates where s crosses level between frames j-1 and j.
// The fraction is clamped to the step when level lies outside it.
func crossing(s, ts []float64, j int, level float64) float64 {
	a, b := s[j-1], s[j]
	t := 0.0
	if b != a {
		t = mathutil.Clamp01((level - a) / (b - a))
	}
	return ts[j-1] + t*(ts[j]-ts[j-1])
}

// excursionStart walks back from frame i while s keeps moving in the
// transition's direction and returns the first frame of that run.
func excursionStart(i int, rising bool, s []float64) int {
	k := i
	for k > 1 && ((rising && s[k-1] < s[k]) || (!rising && s[k-1] > s[k])) {
		k--
	}
	return k
}

// refine returns the refined timestamp and confidence of a transition at
// frame i. rising selects landings.
//
// The smoothed score only reaches a hysteresis threshold some frames after
// the underlying step, and a falling score takes longest. The search
// therefore covers the whole monotone run leading into frame i, padded by
// RefineWindow on both sides.
func refine(i int, rising bool, s, ts []float64, cfg Config) (float64, float64) {
	if s == nil || cfg.Refinement == RefineNone || i < 1 {
		return ts[i], unrefinedConfidence
	}
	lo := max(1, excursionStart(i, rising, s)-cfg.RefineWindow)
	hi := min(len(s)-1, i+cfg.RefineWindow)

	switch cfg.Refinement {
	case RefineMaxDerivative:
		best, bestStep := -1, 0.0
		for j := lo; j <= hi; j++ {
			step := s[j] - s[j-1]
			if !rising {
				step = -step
			}
			if step > bestStep {
				best, bestStep = j, step
			}
		}
		if best < 0 {
			return ts[i], unrefinedConfidence
		}
		return crossing(s, ts, best, cfg.Level), mathutil.Clamp01(bestStep / cfg.DerivativeScale)

	case RefineLevelCrossing:
		for j := lo; j <= hi; j++ {
			up := s[j-1] < cfg.Level && s[j] >= cfg.Level
			down := s[j-1] >= cfg.Level && s[j] < cfg.Level
			if (rising && up) || (!rising && down) {
				at := crossing(s, ts, j, cfg.Level)
				frame := ts[i] - ts[i-1]
				errFrames := 0.0
				if frame > 0 {
					errFrames = math.Abs(at-ts[i]) / frame
				}
				return at, 1 / (1 + errFrames)
			}
		}
	}
	return ts[i], unrefinedConfidence
}
