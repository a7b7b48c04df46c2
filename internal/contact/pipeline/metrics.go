package pipeline

import (
	"github.com/banshee-data/contact.report/internal/contact/l6gate"
	"github.com/banshee-data/contact.report/internal/monitoring"
)

// Record adds one gated result to m. A nil m is a no-op.
func Record(m *monitoring.AnalysisMetrics, r l6gate.Result) {
	if m == nil {
		return
	}
	hops := 0
	if r.Events != nil {
		hops = len(r.Events.Hops)
	}
	sc := r.Diagnostics.StageConfidences
	m.Record(string(r.Status), r.Diagnostics.FrameCount, hops, r.RejectionReasons, []monitoring.StageConfidence{
		{Stage: "ground", Confidence: sc.Ground},
		{Stage: "region", Confidence: sc.Region},
		{Stage: "signal", Confidence: sc.Signal},
		{Stage: "events", Confidence: sc.Events},
	})
}
