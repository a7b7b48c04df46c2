package l2ground

import (
	"math"
	"sort"
)

// Candidate is one Hough peak: a line in polar form with the summed edge
// magnitude that voted for it.
type Candidate struct {
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
	Score float64 `json:"score"`
}

// houghSpace is a magnitude-weighted accumulator over (theta, rho) with
// 1 px rho bins.
type houghSpace struct {
	nTheta  int
	nRho    int
	rhoOff  int
	step    float64
	sinT    []float64
	cosT    []float64
	votes   []float64
	visited []bool
	edges   []EdgePixel
	used    []bool
}

// supportBand is the distance within which an edge pixel counts as lying on
// an accepted line. Its votes are withdrawn so that the line's off-angle
// "butterfly" does not produce further peaks.
const supportBand = 1.5

func newHoughSpace(width, height int, stepDeg float64) *houghSpace {
	n := int(math.Round(180 / stepDeg))
	if n < 1 {
		n = 1
	}
	off := width + height
	hs := &houghSpace{
		nTheta: n,
		nRho:   2*off + 1,
		rhoOff: off,
		step:   math.Pi / float64(n),
		sinT:   make([]float64, n),
		cosT:   make([]float64, n),
	}
	for i := 0; i < n; i++ {
		t := float64(i) * hs.step
		hs.sinT[i] = math.Sin(t)
		hs.cosT[i] = math.Cos(t)
	}
	hs.votes = make([]float64, n*hs.nRho)
	hs.visited = make([]bool, n*hs.nRho)
	return hs
}

func (hs *houghSpace) accumulate(edges []EdgePixel) {
	hs.edges = edges
	hs.used = make([]bool, len(edges))
	for _, e := range edges {
		hs.vote(e, e.Magnitude)
	}
}

func (hs *houghSpace) vote(e EdgePixel, w float64) {
	x, y := float64(e.X), float64(e.Y)
	for t := 0; t < hs.nTheta; t++ {
		rho := -x*hs.sinT[t] + y*hs.cosT[t]
		r := int(math.Round(rho)) + hs.rhoOff
		if r < 0 || r >= hs.nRho {
			continue
		}
		hs.votes[t*hs.nRho+r] += w
	}
}

// withdraw removes the votes of every edge pixel on the line (t, rho).
func (hs *houghSpace) withdraw(t int, rho float64) {
	for i, e := range hs.edges {
		if hs.used[i] {
			continue
		}
		d := -float64(e.X)*hs.sinT[t] + float64(e.Y)*hs.cosT[t] - rho
		if math.Abs(d) <= supportBand {
			hs.used[i] = true
			hs.vote(e, -e.Magnitude)
		}
	}
}

// peaks extracts up to k maxima with non-maximum suppression. The window
// wraps around theta = pi, where rho changes sign.
func (hs *houghSpace) peaks(k int, nmsThetaDeg, nmsRho float64) []Candidate {
	wt := int(math.Round(nmsThetaDeg * math.Pi / 180 / hs.step))
	wr := int(math.Round(nmsRho))
	var out []Candidate
	floor := 0.0
	for len(out) < k {
		best, bestIdx := floor, -1
		for i, v := range hs.votes {
			if v > best && !hs.visited[i] {
				best, bestIdx = v, i
			}
		}
		if bestIdx < 0 {
			break
		}
		ti, ri := bestIdx/hs.nRho, bestIdx%hs.nRho
		out = append(out, Candidate{
			Theta: float64(ti) * hs.step,
			Rho:   float64(ri - hs.rhoOff),
			Score: best,
		})
		if floor == 0 {
			// Withdrawn votes leave rounding residue; ignore anything that small.
			floor = best * 1e-6
		}
		hs.suppress(ti, ri-hs.rhoOff, wt, wr)
		hs.withdraw(ti, float64(ri-hs.rhoOff))
	}
	return out
}

func (hs *houghSpace) suppress(ti, rho, wt, wr int) {
	for dt := -wt; dt <= wt; dt++ {
		t, r := ti+dt, rho
		if t < 0 {
			t += hs.nTheta
			r = -r
		} else if t >= hs.nTheta {
			t -= hs.nTheta
			r = -r
		}
		for dr := -wr; dr <= wr; dr++ {
			idx := r + dr + hs.rhoOff
			if idx < 0 || idx >= hs.nRho {
				continue
			}
			hs.visited[t*hs.nRho+idx] = true
		}
	}
}

// FrameCandidates returns the top-K Hough lines of one frame's edges,
// strongest first. Ties keep accumulator order.
func FrameCandidates(edges []EdgePixel, width, height int, cfg Config) []Candidate {
	if len(edges) == 0 {
		return nil
	}
	hs := newHoughSpace(width, height, cfg.ThetaStepDeg)
	hs.accumulate(edges)
	c := hs.peaks(cfg.TopK, cfg.NMSThetaDeg, cfg.NMSRho)
	sort.SliceStable(c, func(i, j int) bool { return c[i].Score > c[j].Score })
	return c
}
