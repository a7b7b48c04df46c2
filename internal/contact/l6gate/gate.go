package l6gate

import (
	"fmt"
	"math"

	"github.com/banshee-data/contact.report/internal/contact/l1frames"
	"github.com/banshee-data/contact.report/internal/contact/l4signal"
	"github.com/banshee-data/contact.report/internal/contact/l5events"
	"github.com/banshee-data/contact.report/internal/monitoring"
	"github.com/banshee-data/contact.report/internal/units"
)

// Hard-fail reasons.
const (
	ReasonAnalysisIncomplete = "ANALYSIS_INCOMPLETE"
	ReasonNoEvidence         = "NO_EVIDENCE"
	ReasonLowConfidence      = "LOW_CONFIDENCE"
	ReasonBadView            = "BAD_VIEW"
	ReasonRegionNotTracked   = "REGION_NOT_TRACKED"
	ReasonContactNotDetected = "CONTACT_NOT_DETECTED"
	ReasonPlaceholderFrames  = "PLACEHOLDER_FRAMES"
	ReasonSanityGCTBounds    = "SANITY_GCT_BOUNDS"
	ReasonSanityFlightBounds = "SANITY_FLIGHT_BOUNDS"
	ReasonSanityUnitMismatch = "SANITY_UNIT_MISMATCH"
	ReasonSanityEventOrder   = "SANITY_EVENT_ORDER"
	ReasonPartialDisallowed  = "PARTIAL_RESULT_DISALLOWED"
)

// unitTolerance is the relative slack allowed between a millisecond field
// and its seconds mirror.
const unitTolerance = 1e-9

// Gate applies the two-tier policy to a draft and returns the final result.
// The draft is not modified, and gating a gated result again changes
// nothing.
//
// A hard fail nulls Metrics and Events, forces StatusError and truncates the
// diagnostic samples; notes and reliability flags are kept. Otherwise each
// metric is checked against its own floor and reporting bound and nulled
// individually, leaving the status complete unless cfg.AllowPartial is off.
func Gate(draft Result, cfg Config) Result {
	r := clone(draft)
	r.Confidence = r.Diagnostics.StageConfidences.Overall()

	if r.Status == StatusError {
		return hardFail(r, nil, nil, cfg)
	}

	var reasons, notes []string
	fail := func(reason, note string) {
		reasons = append(reasons, reason)
		if note != "" {
			notes = append(notes, note)
		}
	}

	if r.Status != StatusComplete {
		fail(ReasonAnalysisIncomplete, fmt.Sprintf("analysis status is %q", r.Status))
	}
	dense := len(r.Diagnostics.Samples) > 0
	if !dense && !hasHops(r) && (r.Metrics == nil || r.Metrics.GCTMs == nil) {
		fail(ReasonNoEvidence, "no frame samples and no paired events")
	}
	floor, evidence := cfg.MinConfidence, "dense samples"
	if !dense {
		floor, evidence = cfg.MinSparseConfidence, "sparse events only"
	}
	if r.Confidence < floor {
		fail(ReasonLowConfidence, fmt.Sprintf("overall confidence %.3f below required %.3f (%s)", r.Confidence, floor, evidence))
	}
	if cfg.RequireView && !r.Reliability.ViewOK {
		fail(ReasonBadView, "no ground line was detected")
	}
	if cfg.RequireRegion && !r.Reliability.RegionTracked {
		fail(ReasonRegionNotTracked, "no contact region was tracked")
	}
	if cfg.RequireContact && !r.Reliability.ContactDetected {
		fail(ReasonContactNotDetected, "no contact signal was detected")
	}
	if r.MeasurementSource == l1frames.ProvenancePlaceholder {
		fail(ReasonPlaceholderFrames, "frames are placeholders, not real pixel data")
	}
	for _, v := range sanity(r, cfg) {
		fail(v.reason, v.note)
	}

	if len(reasons) > 0 {
		return hardFail(r, reasons, notes, cfg)
	}

	if n := softGate(&r, cfg); n > 0 && !cfg.AllowPartial {
		return hardFail(r, []string{ReasonPartialDisallowed},
			[]string{fmt.Sprintf("partial results are disabled and %d metric(s) were redacted", n)}, cfg)
	}
	r.Notes = dedupe(r.Notes)
	r.RejectionReasons = dedupe(r.RejectionReasons)
	return r
}

func hardFail(r Result, reasons, notes []string, cfg Config) Result {
	r.Status = StatusError
	r.Metrics = nil
	r.Events = nil
	r.RejectionReasons = dedupe(append(r.RejectionReasons, reasons...))
	r.Notes = dedupe(append(r.Notes, notes...))
	if len(r.Diagnostics.Samples) > cfg.MaxDiagnosticSamples {
		r.Diagnostics.Samples = r.Diagnostics.Samples[:cfg.MaxDiagnosticSamples]
	}
	monitoring.Diagf("gate: hard fail %v", r.RejectionReasons)
	return r
}

type violation struct {
	reason string
	note   string
}

// sanity flags physically implausible or internally inconsistent values.
// Any violation fails the whole result.
func sanity(r Result, cfg Config) []violation {
	var out []violation
	if r.Events != nil {
		for k, h := range r.Events.Hops {
			if h.GCTMs < cfg.SanityMinGCTMs || h.GCTMs > cfg.SanityMaxGCTMs {
				out = append(out, violation{ReasonSanityGCTBounds,
					fmt.Sprintf("hop %d: GCT %.1f ms outside [%.0f, %.0f]", k, h.GCTMs, cfg.SanityMinGCTMs, cfg.SanityMaxGCTMs)})
			}
			if h.FlightMs != nil && (*h.FlightMs < cfg.SanityMinFlightMs || *h.FlightMs > cfg.SanityMaxFlightMs) {
				out = append(out, violation{ReasonSanityFlightBounds,
					fmt.Sprintf("hop %d: flight %.1f ms outside [%.0f, %.0f]", k, *h.FlightMs, cfg.SanityMinFlightMs, cfg.SanityMaxFlightMs)})
			}
			if !(h.LandingMs < h.TakeoffMs) || (k > 0 && !(r.Events.Hops[k-1].TakeoffMs < h.LandingMs)) {
				out = append(out, violation{ReasonSanityEventOrder,
					fmt.Sprintf("hop %d: landing %.1f ms is not before takeoff %.1f ms or overlaps the previous hop", k, h.LandingMs, h.TakeoffMs)})
			}
			if h.FlightMs != nil && !(*h.FlightMs > 0) {
				out = append(out, violation{ReasonSanityEventOrder,
					fmt.Sprintf("hop %d: takeoff %.1f ms is not before the next landing", k, h.TakeoffMs)})
			}
		}
	}

	if m := r.Metrics; m != nil {
		if m.GCTMs != nil && (*m.GCTMs < cfg.SanityMinGCTMs || *m.GCTMs > cfg.SanityMaxGCTMs) {
			out = append(out, violation{ReasonSanityGCTBounds,
				fmt.Sprintf("reported GCT %.1f ms outside [%.0f, %.0f]", *m.GCTMs, cfg.SanityMinGCTMs, cfg.SanityMaxGCTMs)})
		}
		if m.FlightMs != nil && (*m.FlightMs < cfg.SanityMinFlightMs || *m.FlightMs > cfg.SanityMaxFlightMs) {
			out = append(out, violation{ReasonSanityFlightBounds,
				fmt.Sprintf("reported flight %.1f ms outside [%.0f, %.0f]", *m.FlightMs, cfg.SanityMinFlightMs, cfg.SanityMaxFlightMs)})
		}
		if !unitsAgree(m.GCTMs, m.GCTSeconds) {
			out = append(out, violation{ReasonSanityUnitMismatch, "gctMs and gctSeconds disagree"})
		}
		if !unitsAgree(m.FlightMs, m.FlightSeconds) {
			out = append(out, violation{ReasonSanityUnitMismatch, "flightMs and flightSeconds disagree"})
		}
	}
	return out
}

func unitsAgree(ms, s *float64) bool {
	if ms == nil || s == nil {
		return ms == nil && s == nil
	}
	back, err := units.ToMillis(*s, units.S)
	if err != nil {
		return false
	}
	return math.Abs(back-*ms) <= unitTolerance*math.Max(1, math.Abs(*ms))
}

// softGate nulls each metric that misses its floor or bound and returns the
// number of redactions.
func softGate(r *Result, cfg Config) int {
	mc := r.Diagnostics.MetricConfidences
	n := 0
	redact := func(what, why string) {
		r.Notes = append(r.Notes, what+" redacted: "+why)
		n++
	}

	if m := r.Metrics; m != nil {
		if m.GCTMs != nil {
			if why := check(mc.GCT, cfg.MinGCTConfidence, *m.GCTMs, cfg.ReportMinGCTMs, cfg.ReportMaxGCTMs); why != "" {
				m.GCTMs, m.GCTSeconds, m.GCTP95Ms = nil, nil, nil
				redact("gct", why)
			}
		}
		if m.FlightMs != nil {
			if why := check(mc.Flight, cfg.MinFlightConfidence, *m.FlightMs, cfg.ReportMinFlightMs, cfg.ReportMaxFlightMs); why != "" {
				m.FlightMs, m.FlightSeconds, m.FlightP95Ms = nil, nil, nil
				redact("flight", why)
			}
		}
		if m.ContactPatchAngleDeg != nil {
			if why := check(mc.ContactPatchAngle, cfg.MinAngleConfidence, *m.ContactPatchAngleDeg, -cfg.MaxAngleDeg, cfg.MaxAngleDeg); why != "" {
				m.ContactPatchAngleDeg = nil
				redact("contact patch angle", why)
			}
		}
	}

	if r.Events != nil {
		why := ""
		switch {
		case mc.Events < cfg.MinEventsConfidence:
			why = fmt.Sprintf("confidence %.3f below %.3f", mc.Events, cfg.MinEventsConfidence)
		case len(r.Events.Hops) < cfg.MinReportedHops:
			why = fmt.Sprintf("%d hop(s), need %d", len(r.Events.Hops), cfg.MinReportedHops)
		}
		if why != "" {
			r.Events = nil
			if r.Metrics != nil {
				r.Metrics.HopCount = nil
			}
			redact("events", why)
		}
	}
	return n
}

func check(conf, floor, v, lo, hi float64) string {
	if conf < floor {
		return fmt.Sprintf("confidence %.3f below %.3f", conf, floor)
	}
	if v < lo || v > hi {
		return fmt.Sprintf("value %.1f outside [%.1f, %.1f]", v, lo, hi)
	}
	return ""
}

func hasHops(r Result) bool {
	return r.Events != nil && len(r.Events.Hops) > 0
}

// clone deep-copies everything Gate may modify.
func clone(r Result) Result {
	out := r
	if r.Metrics != nil {
		m := *r.Metrics
		out.Metrics = &m
	}
	if r.Events != nil {
		out.Events = &Events{
			Landings: append([]l5events.Event{}, r.Events.Landings...),
			Takeoffs: append([]l5events.Event{}, r.Events.Takeoffs...),
			Hops:     append([]l5events.Hop{}, r.Events.Hops...),
		}
	}
	out.Notes = append([]string{}, r.Notes...)
	out.RejectionReasons = append([]string{}, r.RejectionReasons...)
	out.Diagnostics.Samples = append([]l4signal.Sample{}, r.Diagnostics.Samples...)
	return out
}

// dedupe drops repeated strings, keeping first occurrences in order. The
// result is never nil.
func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
