package evaluation

import (
	"math"

	"github.com/banshee-data/contact.report/internal/contact/l5events"
	"github.com/banshee-data/contact.report/internal/contact/l6gate"
)

// Pair is one auto-detected timestamp matched to a label.
type Pair struct {
	AutoIndex  int     `json:"autoIndex"`
	LabelIndex int     `json:"labelIndex"`
	AutoMs     float64 `json:"autoMs"`
	LabelMs    float64 `json:"labelMs"`
	ErrorMs    float64 `json:"errorMs"` // auto - label
}

// Match summarises a one-to-one assignment of auto timestamps to labels.
// Error statistics cover matched pairs only and are 0 without any.
type Match struct {
	Pairs           []Pair  `json:"pairs"`
	UnmatchedAuto   int     `json:"unmatchedAuto"`
	UnmatchedLabels int     `json:"unmatchedLabels"`
	MeanAbsErrorMs  float64 `json:"meanAbsErrorMs"`
	MaxAbsErrorMs   float64 `json:"maxAbsErrorMs"`
	Precision       float64 `json:"precision"`
	Recall          float64 `json:"recall"`
}

// MatchTimestamps pairs auto-detected timestamps with labels so that the
// total absolute error is minimal. Pairs further apart than toleranceMs are
// never formed; a gap equal to the tolerance is allowed.
func MatchTimestamps(auto, labels []float64, toleranceMs float64) Match {
	out := Match{Pairs: []Pair{}}
	if len(auto) > 0 && len(labels) > 0 {
		cost := make([][]float64, len(auto))
		for i, a := range auto {
			cost[i] = make([]float64, len(labels))
			for j, l := range labels {
				if d := math.Abs(a - l); d <= toleranceMs {
					cost[i][j] = d
				} else {
					cost[i][j] = forbidden
				}
			}
		}
		for i, j := range assign(cost) {
			if j < 0 {
				continue
			}
			out.Pairs = append(out.Pairs, Pair{
				AutoIndex:  i,
				LabelIndex: j,
				AutoMs:     auto[i],
				LabelMs:    labels[j],
				ErrorMs:    auto[i] - labels[j],
			})
		}
	}

	out.UnmatchedAuto = len(auto) - len(out.Pairs)
	out.UnmatchedLabels = len(labels) - len(out.Pairs)
	if len(out.Pairs) > 0 {
		var sum float64
		for _, p := range out.Pairs {
			e := math.Abs(p.ErrorMs)
			sum += e
			out.MaxAbsErrorMs = math.Max(out.MaxAbsErrorMs, e)
		}
		out.MeanAbsErrorMs = sum / float64(len(out.Pairs))
	}
	if len(auto) > 0 {
		out.Precision = float64(len(out.Pairs)) / float64(len(auto))
	}
	if len(labels) > 0 {
		out.Recall = float64(len(out.Pairs)) / float64(len(labels))
	}
	return out
}

// Labels are hand-marked event times for one video.
type Labels struct {
	VideoID    string    `json:"videoId"`
	LandingsMs []float64 `json:"landingsMs"`
	TakeoffsMs []float64 `json:"takeoffsMs"`
	Source     string    `json:"source,omitempty"`
}

// Report compares one result against its labels.
type Report struct {
	VideoID     string  `json:"videoId"`
	ToleranceMs float64 `json:"toleranceMs"`
	Landings    Match   `json:"landings"`
	Takeoffs    Match   `json:"takeoffs"`
}

// Evaluate matches the result's refined landing and takeoff times against
// labels. A result whose events were redacted evaluates as detecting
// nothing.
func Evaluate(r l6gate.Result, labels Labels, toleranceMs float64) Report {
	var landings, takeoffs []float64
	if r.Events != nil {
		landings = refined(r.Events.Landings)
		takeoffs = refined(r.Events.Takeoffs)
	}
	return Report{
		VideoID:     labels.VideoID,
		ToleranceMs: toleranceMs,
		Landings:    MatchTimestamps(landings, labels.LandingsMs, toleranceMs),
		Takeoffs:    MatchTimestamps(takeoffs, labels.TakeoffsMs, toleranceMs),
	}
}

func refined(events []l5events.Event) []float64 {
	out := make([]float64, len(events))
	for i, e := range events {
		out[i] = e.RefinedMs
	}
	return out
}
