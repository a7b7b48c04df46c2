package l5events

import (
	"sort"

	"github.com/banshee-data/contact.report/internal/mathutil"
	"github.com/banshee-data/contact.report/internal/monitoring"
)

// Event types.
const (
	TypeLanding = "landing"
	TypeTakeoff = "takeoff"
)

// Reason codes for rejected input, hops and invariant failures.
const (
	ReasonEmptyInput          = "EMPTY_INPUT"
	ReasonInputLengthMismatch = "INPUT_LENGTH_MISMATCH"
	ReasonGCTOutOfRange       = "GCT_OUT_OF_RANGE"
	ReasonFlightOutOfRange    = "FLIGHT_OUT_OF_RANGE"
	ReasonOrderViolation      = "ORDER_VIOLATION"
)

// Event is one landing or takeoff.
type Event struct {
	Type       string  `json:"type"`
	FrameIndex int     `json:"frameIndex"`
	CoarseMs   float64 `json:"coarseMs"`
	RefinedMs  float64 `json:"refinedMs"`
	Confidence float64 `json:"confidence"`
}

// Hop pairs a landing with the following takeoff. FlightMs is nil when no
// landing follows the takeoff.
type Hop struct {
	LandingMs float64  `json:"landingMs"`
	TakeoffMs float64  `json:"takeoffMs"`
	GCTMs     float64  `json:"gctMs"`
	FlightMs  *float64 `json:"flightMs"`
}

// Summary aggregates the accepted hops. Fields are nil without data.
type Summary struct {
	HopCount       int      `json:"hopCount"`
	GCTMedianMs    *float64 `json:"gctMedianMs"`
	GCTP95Ms       *float64 `json:"gctP95Ms"`
	FlightMedianMs *float64 `json:"flightMedianMs"`
	FlightP95Ms    *float64 `json:"flightP95Ms"`
}

// Rejection records one dropped candidate hop.
type Rejection struct {
	Reason    string  `json:"reason"`
	LandingMs float64 `json:"landingMs"`
	TakeoffMs float64 `json:"takeoffMs"`
	ValueMs   float64 `json:"valueMs"`
}

// Diagnostics counts what happened during pairing.
type Diagnostics struct {
	Transitions        int         `json:"transitions"`
	CandidateHops      int         `json:"candidateHops"`
	AcceptedHops       int         `json:"acceptedHops"`
	SkippedTakeoffs    int         `json:"skippedTakeoffs"`
	ShortIntervals     int         `json:"shortIntervals"`
	UnpairedLandings   int         `json:"unpairedLandings"`
	NonAdjacentFlights int         `json:"nonAdjacentFlights"`
	Rejections         []Rejection `json:"rejections,omitempty"`
}

// Extraction is the event stage output.
type Extraction struct {
	Landings    []Event     `json:"landings"`
	Takeoffs    []Event     `json:"takeoffs"`
	Hops        []Hop       `json:"hops"`
	Summary     Summary     `json:"summary"`
	Confidence  float64     `json:"confidence"`
	Diagnostics Diagnostics `json:"diagnostics"`
	Reasons     []string    `json:"reasons,omitempty"`
}

func empty(reason string) Extraction {
	return Extraction{
		Landings: []Event{},
		Takeoffs: []Event{},
		Hops:     []Hop{},
		Reasons:  []string{reason},
	}
}

// Extract derives events and hops from a contact state sequence. smoothed
// may be nil, in which case events keep their frame timestamps.
func Extract(state []uint8, timestampsMs []float64, smoothed []float64, cfg Config) Extraction {
	if len(state) == 0 {
		return empty(ReasonEmptyInput)
	}
	if len(timestampsMs) != len(state) || (smoothed != nil && len(smoothed) != len(state)) {
		return empty(ReasonInputLengthMismatch)
	}

	ex := Extraction{Landings: []Event{}, Takeoffs: []Event{}, Hops: []Hop{}}
	for i := 1; i < len(state); i++ {
		switch {
		case state[i-1] == 0 && state[i] == 1:
			at, conf := refine(i, true, smoothed, timestampsMs, cfg)
			ex.Landings = append(ex.Landings, Event{TypeLanding, i, timestampsMs[i], at, conf})
		case state[i-1] == 1 && state[i] == 0:
			at, conf := refine(i, false, smoothed, timestampsMs, cfg)
			ex.Takeoffs = append(ex.Takeoffs, Event{TypeTakeoff, i, timestampsMs[i], at, conf})
		}
	}
	byTime := func(ev []Event) {
		sort.SliceStable(ev, func(a, b int) bool { return ev[a].RefinedMs < ev[b].RefinedMs })
	}
	byTime(ex.Landings)
	byTime(ex.Takeoffs)
	ex.Diagnostics.Transitions = len(ex.Landings) + len(ex.Takeoffs)

	candidates := pair(ex.Landings, ex.Takeoffs, cfg, &ex.Diagnostics)
	ex.Diagnostics.CandidateHops = len(candidates)

	for _, h := range candidates {
		if h.GCTMs < cfg.MinGCTMs || h.GCTMs > cfg.MaxGCTMs {
			ex.Diagnostics.Rejections = append(ex.Diagnostics.Rejections,
				Rejection{ReasonGCTOutOfRange, h.LandingMs, h.TakeoffMs, h.GCTMs})
			continue
		}
		if h.FlightMs != nil && (*h.FlightMs < cfg.MinFlightMs || *h.FlightMs > cfg.MaxFlightMs) {
			ex.Diagnostics.Rejections = append(ex.Diagnostics.Rejections,
				Rejection{ReasonFlightOutOfRange, h.LandingMs, h.TakeoffMs, *h.FlightMs})
			continue
		}
		ex.Hops = append(ex.Hops, h)
	}
	ex.Diagnostics.AcceptedHops = len(ex.Hops)

	if !ordered(ex.Hops) {
		monitoring.Opsf("events: accepted hops violate landing < takeoff ordering; discarding")
		out := empty(ReasonOrderViolation)
		out.Diagnostics = ex.Diagnostics
		out.Diagnostics.AcceptedHops = 0
		return out
	}

	for k, h := range ex.Hops {
		if h.FlightMs == nil || k+1 >= len(ex.Hops) {
			continue
		}
		if next, _ := landingAfter(ex.Landings, h.TakeoffMs); next != ex.Hops[k+1].LandingMs {
			ex.Diagnostics.NonAdjacentFlights++
		}
	}

	ex.Summary = summarize(ex.Hops)
	ex.Confidence = confidence(len(ex.Hops), len(candidates), ex.Diagnostics.Transitions)
	monitoring.Tracef("events: %d landings, %d takeoffs, %d/%d hops accepted, conf=%.3f",
		len(ex.Landings), len(ex.Takeoffs), len(ex.Hops), len(candidates), ex.Confidence)
	return ex
}

// pair matches landings with takeoffs greedily in time order. Takeoffs at or
// before the landing are skipped, as are takeoffs closer than MinIntervalMs.
// A landing followed by another landing before any usable takeoff stays
// unpaired. Flight time runs to the first landing strictly after the takeoff.
func pair(landings, takeoffs []Event, cfg Config, d *Diagnostics) []Hop {
	var hops []Hop
	ti := 0
	for li, l := range landings {
		for ti < len(takeoffs) && takeoffs[ti].RefinedMs <= l.RefinedMs {
			d.SkippedTakeoffs++
			ti++
		}
		for ti < len(takeoffs) && takeoffs[ti].RefinedMs-l.RefinedMs < cfg.MinIntervalMs {
			d.ShortIntervals++
			ti++
		}
		if ti == len(takeoffs) {
			break
		}
		t := takeoffs[ti]
		if li+1 < len(landings) && landings[li+1].RefinedMs < t.RefinedMs {
			d.UnpairedLandings++
			continue
		}
		ti++

		h := Hop{LandingMs: l.RefinedMs, TakeoffMs: t.RefinedMs, GCTMs: t.RefinedMs - l.RefinedMs}
		if next, ok := landingAfter(landings, t.RefinedMs); ok {
			h.FlightMs = ptr(next - t.RefinedMs)
		}
		hops = append(hops, h)
	}
	return hops
}

// landingAfter returns the first landing strictly after ms. Any detected
// landing qualifies, including ones that never became part of a hop.
func landingAfter(landings []Event, ms float64) (float64, bool) {
	for _, l := range landings {
		if l.RefinedMs > ms {
			return l.RefinedMs, true
		}
	}
	return 0, false
}

func ordered(hops []Hop) bool {
	for k, h := range hops {
		if !(h.LandingMs < h.TakeoffMs) {
			return false
		}
		if h.FlightMs != nil && !(*h.FlightMs > 0) {
			return false
		}
		if k > 0 && !(hops[k-1].TakeoffMs < h.LandingMs) {
			return false
		}
	}
	return true
}

func summarize(hops []Hop) Summary {
	s := Summary{HopCount: len(hops)}
	if len(hops) == 0 {
		return s
	}
	gct := make([]float64, len(hops))
	var flight []float64
	for i, h := range hops {
		gct[i] = h.GCTMs
		if h.FlightMs != nil {
			flight = append(flight, *h.FlightMs)
		}
	}
	s.GCTMedianMs = ptr(mathutil.Median(gct))
	s.GCTP95Ms = ptr(mathutil.EmpiricalQuantile(gct, 0.95))
	if len(flight) > 0 {
		s.FlightMedianMs = ptr(mathutil.Median(flight))
		s.FlightP95Ms = ptr(mathutil.EmpiricalQuantile(flight, 0.95))
	}
	return s
}

// confidence averages hop count (saturating at three), the accept rate, and
// the ratio of accepted hops to detected transitions. A clean sequence has
// two transitions per hop, so the last term tops out near one half.
func confidence(accepted, candidates, transitions int) float64 {
	if transitions == 0 {
		return 0
	}
	count := float64(min(accepted, 3)) / 3
	rate := 0.0
	if candidates > 0 {
		rate = float64(accepted) / float64(candidates)
	}
	explained := float64(accepted) / float64(transitions)
	return (count + rate + explained) / 3
}

func ptr(v float64) *float64 { return &v }
