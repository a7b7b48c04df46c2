package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StageConfidence is one per-stage confidence observation.
type StageConfidence struct {
	Stage      string
	Confidence float64
}

// AnalysisMetrics counts analysis outcomes. It is registered on a
// caller-supplied Registerer so that nothing is attached to the global
// default registry implicitly.
type AnalysisMetrics struct {
	analyses         *prometheus.CounterVec
	rejections       *prometheus.CounterVec
	stageConfidence  *prometheus.HistogramVec
	hopsAccepted     prometheus.Counter
	frameBatchFrames prometheus.Histogram
}

// NewAnalysisMetrics creates the collectors and registers them on reg.
func NewAnalysisMetrics(reg prometheus.Registerer) (*AnalysisMetrics, error) {
	m := &AnalysisMetrics{
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contact",
			Name:      "analyses_total",
			Help:      "Completed analyses by final gate status.",
		}, []string{"status"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contact",
			Name:      "rejection_reasons_total",
			Help:      "Gate rejection reasons emitted across analyses.",
		}, []string{"reason"}),
		stageConfidence: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "contact",
			Name:      "stage_confidence",
			Help:      "Per-stage confidence distribution.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}, []string{"stage"}),
		hopsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "contact",
			Name:      "hops_accepted_total",
			Help:      "Hops that passed plausibility and gating.",
		}),
		frameBatchFrames: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "contact",
			Name:      "batch_frames",
			Help:      "Frames per analysed batch.",
			Buckets:   []float64{0, 10, 20, 30, 40, 60, 90, 120},
		}),
	}

	for _, c := range []prometheus.Collector{
		m.analyses, m.rejections, m.stageConfidence, m.hopsAccepted, m.frameBatchFrames,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Record adds one analysis outcome.
func (m *AnalysisMetrics) Record(status string, frames, hops int, reasons []string, stages []StageConfidence) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(status).Inc()
	for _, r := range reasons {
		m.rejections.WithLabelValues(r).Inc()
	}
	for _, s := range stages {
		m.stageConfidence.WithLabelValues(s.Stage).Observe(s.Confidence)
	}
	m.hopsAccepted.Add(float64(hops))
	m.frameBatchFrames.Observe(float64(frames))
}
