package l2ground

import (
	"math"
	"sort"

	"github.com/banshee-data/contact.report/internal/mathutil"
)

// Cluster summarises one group of temporally consistent candidate lines.
type Cluster struct {
	Theta        float64 `json:"theta"`
	Rho          float64 `json:"rho"`
	Members      int     `json:"members"`
	Frames       int     `json:"frames"`
	Persistence  float64 `json:"persistence"`
	Support      float64 `json:"support"`
	Stability    float64 `json:"stability"`
	Plausibility float64 `json:"plausibility"`
	Score        float64 `json:"score"`
	Confidence   float64 `json:"confidence"`
}

type member struct {
	theta, rho, score float64
	frame             int
}

// lineCluster keeps its running mean in its own angular frame; theta may
// leave [0, pi) while members are folded in and is normalised on output.
type lineCluster struct {
	theta, rho float64
	total      float64
	members    []member
}

// align re-expresses (theta, rho) as the equivalent line whose angle lies
// within pi/2 of ref.
func align(ref, theta, rho float64) (float64, float64) {
	for theta-ref > math.Pi/2 {
		theta -= math.Pi
		rho = -rho
	}
	for ref-theta > math.Pi/2 {
		theta += math.Pi
		rho = -rho
	}
	return theta, rho
}

// clusterCandidates greedily assigns candidates, frame by frame and strongest
// first, to the nearest cluster within both merge tolerances. Cluster means
// are score-weighted running means.
func clusterCandidates(perFrame [][]Candidate, cfg Config) []*lineCluster {
	tolT := cfg.MergeThetaDeg * math.Pi / 180
	tolR := cfg.MergeRho
	var clusters []*lineCluster
	for fi, cands := range perFrame {
		for _, c := range cands {
			var best *lineCluster
			bestDist := math.Inf(1)
			var bt, br float64
			for _, cl := range clusters {
				t, r := align(cl.theta, c.Theta, c.Rho)
				dt, dr := math.Abs(t-cl.theta), math.Abs(r-cl.rho)
				if dt > tolT || dr > tolR {
					continue
				}
				if d := dt/tolT + dr/tolR; d < bestDist {
					best, bestDist, bt, br = cl, d, t, r
				}
			}
			if best == nil {
				clusters = append(clusters, &lineCluster{
					theta:   c.Theta,
					rho:     c.Rho,
					total:   c.Score,
					members: []member{{c.Theta, c.Rho, c.Score, fi}},
				})
				continue
			}
			best.total += c.Score
			if best.total > 0 {
				w := c.Score / best.total
				best.theta += (bt - best.theta) * w
				best.rho += (br - best.rho) * w
			}
			best.members = append(best.members, member{bt, br, c.Score, fi})
		}
	}
	return clusters
}

// scoreClusters computes the ranking terms for every cluster and returns
// them best first. Equal scores keep creation order.
func scoreClusters(clusters []*lineCluster, frameCount int, cfg Config) []Cluster {
	if len(clusters) == 0 || frameCount == 0 {
		return nil
	}
	maxTotal := 0.0
	for _, cl := range clusters {
		maxTotal = math.Max(maxTotal, cl.total)
	}
	tolT := cfg.MergeThetaDeg * math.Pi / 180

	out := make([]Cluster, 0, len(clusters))
	for _, cl := range clusters {
		frames := distinctFrames(cl.members)
		thetas := make([]float64, len(cl.members))
		rhos := make([]float64, len(cl.members))
		for i, m := range cl.members {
			thetas[i], rhos[i] = align(cl.theta, m.theta, m.rho)
		}
		_, sdT := mathutil.MeanStdDev(thetas)
		_, sdR := mathutil.MeanStdDev(rhos)

		theta, rho := normalizeLine(cl.theta, cl.rho)
		s := Cluster{
			Theta:        theta,
			Rho:          rho,
			Members:      len(cl.members),
			Frames:       frames,
			Persistence:  float64(frames) / float64(frameCount),
			Stability:    mathutil.Clamp01(1 - 0.5*sdT/tolT - 0.5*sdR/cfg.MergeRho),
			Plausibility: math.Abs(math.Cos(theta)),
		}
		if maxTotal > 0 {
			s.Support = cl.total / maxTotal
		}
		s.Score = 0.4*s.Persistence + 0.3*s.Support + 0.2*s.Stability + 0.1*s.Plausibility
		s.Confidence = mathutil.Clamp01(0.5*s.Score + 0.3*s.Persistence + 0.2*s.Support)
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func distinctFrames(ms []member) int {
	n, last := 0, -1
	for _, m := range ms {
		// Members are appended in frame order.
		if m.frame != last {
			n++
			last = m.frame
		}
	}
	return n
}
