package l3region

import (
	"math"
	"sort"

	"github.com/banshee-data/contact.report/internal/mathutil"
)

// Features are the footness terms of one candidate rectangle, each in [0, 1]
// except Peaks.
type Features struct {
	Sharpness       float64 `json:"sharpness"`
	Cadence         float64 `json:"cadence"`
	Concentration   float64 `json:"concentration"`
	Proximity       float64 `json:"proximity"`
	BodyCorrelation float64 `json:"bodyCorrelation"`
	Peaks           int     `json:"peaks"`
}

// Footness combines the features with fixed weights, clamped to [0, 1].
func (f Features) Footness() float64 {
	return mathutil.Clamp01(0.35*f.Sharpness + 0.25*f.Cadence + 0.2*f.Concentration +
		0.1*f.Proximity - 0.25*f.BodyCorrelation)
}

// sharpness compares the strongest rises in energy with the typical
// frame-to-frame change: 1 - median|delta| / mean(top positive deltas).
// Smooth drift scores near 0, isolated impacts near 1.
func sharpness(e []float64, top int) float64 {
	if len(e) < 2 {
		return 0
	}
	abs := make([]float64, len(e)-1)
	var pos []float64
	for i := 1; i < len(e); i++ {
		d := e[i] - e[i-1]
		abs[i-1] = math.Abs(d)
		if d > 0 {
			pos = append(pos, d)
		}
	}
	if len(pos) == 0 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(pos)))
	if len(pos) > top {
		pos = pos[:top]
	}
	peak := mathutil.Mean(pos)
	med := mathutil.Median(abs)
	if med == 0 {
		return 1
	}
	return mathutil.Clamp01(1 - med/peak)
}

// peakIndices returns local maxima above mean + k*stddev. A plateau counts
// once, at its first sample.
func peakIndices(e []float64, k float64) []int {
	if len(e) < 3 {
		return nil
	}
	mean, std := mathutil.MeanStdDev(e)
	if std == 0 {
		return nil
	}
	thr := mean + k*std
	var idx []int
	for i := 1; i < len(e)-1; i++ {
		if e[i] > thr && e[i] > e[i-1] && e[i] >= e[i+1] {
			idx = append(idx, i)
		}
	}
	return idx
}

// cadence scores the regularity of peak spacing as 1 - CV of the intervals.
func cadence(peaks []int, minPeaks int) float64 {
	if len(peaks) < minPeaks {
		return 0
	}
	iv := make([]float64, len(peaks)-1)
	for i := 1; i < len(peaks); i++ {
		iv[i-1] = float64(peaks[i] - peaks[i-1])
	}
	return mathutil.Clamp01(1 - mathutil.CoefficientOfVariation(iv))
}

// concentration maps the candidate-to-band energy density ratio r onto
// 1 - 1/r, so a rectangle no denser than the band scores 0.
func concentration(candMean, bandMean float64) float64 {
	if bandMean <= 0 {
		if candMean > 0 {
			return 1
		}
		return 0
	}
	r := candMean / bandMean
	if r <= 1 {
		return 0
	}
	return mathutil.Clamp01(1 - 1/r)
}

// proximity is 1 on the ground line, falling linearly to 0 at the top of the
// band. Centroids below the line score 0.
func proximity(heightAbove, band float64) float64 {
	if heightAbove < 0 || math.IsNaN(heightAbove) {
		return 0
	}
	return mathutil.Clamp01(1 - heightAbove/band)
}
