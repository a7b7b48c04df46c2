package l6gate

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/contact.report/internal/contact/l1frames"
	"github.com/banshee-data/contact.report/internal/contact/l2ground"
	"github.com/banshee-data/contact.report/internal/contact/l3region"
	"github.com/banshee-data/contact.report/internal/contact/l4signal"
	"github.com/banshee-data/contact.report/internal/contact/l5events"
)

// hopState is three 250 ms contacts separated by 400 ms flights at 20 fps.
func hopState() ([]uint8, []float64) {
	var state []uint8
	add := func(v uint8, n int) {
		for range n {
			state = append(state, v)
		}
	}
	add(0, 2)
	add(1, 5)
	add(0, 8)
	add(1, 5)
	add(0, 8)
	add(1, 5)
	add(0, 3)
	ts := make([]float64, len(state))
	for i := range ts {
		ts[i] = float64(i) * 50
	}
	return state, ts
}

func goodStages() Stages {
	state, ts := hopState()
	samples := make([]l4signal.Sample, len(state))
	for i := range state {
		samples[i] = l4signal.Sample{TimestampMs: ts[i], Raw: float64(state[i]), Smoothed: float64(state[i]), State: state[i]}
	}
	return Stages{
		Provenance: l1frames.ProvenanceSynthetic,
		FrameCount: len(state),
		Ground:     l2ground.Detection{Model: l2ground.PolarModel(0, 80, 0.9, 160, 120), Detected: true},
		Region: l3region.Location{
			Region:     l3region.Region{X: 64, Y: 56, W: 32, H: 24, Footness: 0.7, Stability: 1, Confidence: 0.85},
			Found:      true,
			Candidates: 40,
		},
		Signal: l4signal.Signal{Samples: samples, Detected: true, Confidence: 0.8},
		Events: l5events.Extract(state, ts, nil, l5events.DefaultConfig()),
	}
}

func goodDraft() Result {
	return Assemble(goodStages())
}

func TestGate_AcceptsCleanResult(t *testing.T) {
	r := Gate(goodDraft(), DefaultConfig())

	require.Equal(t, StatusComplete, r.Status)
	assert.Empty(t, r.RejectionReasons)
	// 0.2*0.9 + 0.2*0.85 + 0.3*0.8 + 0.3*(5/6)
	assert.InDelta(t, 0.84, r.Confidence, 1e-9)
	require.NotNil(t, r.Metrics)
	assert.Equal(t, 250.0, *r.Metrics.GCTMs)
	assert.Equal(t, 0.25, *r.Metrics.GCTSeconds)
	assert.Equal(t, 400.0, *r.Metrics.FlightMs)
	assert.Equal(t, 3, *r.Metrics.HopCount)
	assert.Equal(t, 0.0, *r.Metrics.ContactPatchAngleDeg)
	require.NotNil(t, r.Events)
	assert.Len(t, r.Events.Hops, 3)
	assert.Equal(t, Reliability{ViewOK: true, RegionTracked: true, ContactDetected: true}, r.Reliability)
}

func TestAssemble_MetricConfidences(t *testing.T) {
	d := goodDraft()
	// Unrefined events carry 0.5. Three hops from six transitions give an
	// events confidence of (1 + 1 + 0.5) / 3.
	assert.InDelta(t, 2.0/3, d.Diagnostics.MetricConfidences.GCT, 1e-9)
	assert.InDelta(t, 2.0/3, d.Diagnostics.MetricConfidences.Flight, 1e-9)
	assert.InDelta(t, 5.0/6, d.Diagnostics.MetricConfidences.Events, 1e-9)
	assert.InDelta(t, 0.9, d.Diagnostics.MetricConfidences.ContactPatchAngle, 1e-9)
	require.NotNil(t, d.Diagnostics.Region)
	assert.Equal(t, 64, d.Diagnostics.Region.X)
}

func TestAssemble_UndetectedStagesScoreZero(t *testing.T) {
	s := goodStages()
	s.Region.Found = false
	s.Signal.Detected = false
	d := Assemble(s)
	assert.Zero(t, d.Diagnostics.StageConfidences.Region)
	assert.Zero(t, d.Diagnostics.StageConfidences.Signal)
	assert.False(t, d.Reliability.RegionTracked)
}

func TestGate_LowConfidenceHardFails(t *testing.T) {
	d := goodDraft()
	d.Diagnostics.StageConfidences = StageConfidences{Ground: 0.2, Region: 0.2, Signal: 0.2, Events: 0.2}

	r := Gate(d, DefaultConfig())

	assert.Equal(t, StatusError, r.Status)
	assert.Nil(t, r.Metrics)
	assert.Nil(t, r.Events)
	assert.Contains(t, r.RejectionReasons, ReasonLowConfidence)
	assert.Equal(t, Reliability{ViewOK: true, RegionTracked: true, ContactDetected: true}, r.Reliability)
	assert.NotEmpty(t, r.Diagnostics.Samples)
	assert.NotEmpty(t, r.Notes)
}

func TestGate_SparseEvidenceNeedsMoreConfidence(t *testing.T) {
	d := goodDraft()
	d.Diagnostics.StageConfidences = StageConfidences{Ground: 0.5, Region: 0.5, Signal: 0.5, Events: 0.5}

	dense := Gate(d, DefaultConfig())
	assert.Equal(t, StatusComplete, dense.Status)

	d.Diagnostics.Samples = nil
	sparse := Gate(d, DefaultConfig())
	assert.Equal(t, StatusError, sparse.Status)
	assert.Equal(t, []string{ReasonLowConfidence}, sparse.RejectionReasons)
}

func TestGate_HardFailReasons(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Result)
		want   string
	}{
		{"pending", func(r *Result) { r.Status = StatusPending }, ReasonAnalysisIncomplete},
		{"no evidence", func(r *Result) {
			r.Diagnostics.Samples = nil
			r.Events = nil
			r.Metrics = nil
		}, ReasonNoEvidence},
		{"bad view", func(r *Result) { r.Reliability.ViewOK = false }, ReasonBadView},
		{"region", func(r *Result) { r.Reliability.RegionTracked = false }, ReasonRegionNotTracked},
		{"contact", func(r *Result) { r.Reliability.ContactDetected = false }, ReasonContactNotDetected},
		{"placeholder", func(r *Result) { r.MeasurementSource = l1frames.ProvenancePlaceholder }, ReasonPlaceholderFrames},
		{"hop gct", func(r *Result) { r.Events.Hops[1].GCTMs = 1500 }, ReasonSanityGCTBounds},
		{"hop flight", func(r *Result) { r.Events.Hops[0].FlightMs = floatPtr(5000) }, ReasonSanityFlightBounds},
		{"metric gct", func(r *Result) { r.Metrics.GCTMs = floatPtr(5) }, ReasonSanityGCTBounds},
		{"units", func(r *Result) { r.Metrics.GCTSeconds = floatPtr(250) }, ReasonSanityUnitMismatch},
		{"missing seconds", func(r *Result) { r.Metrics.FlightSeconds = nil }, ReasonSanityUnitMismatch},
		{"order", func(r *Result) { r.Events.Hops[0].TakeoffMs = r.Events.Hops[0].LandingMs }, ReasonSanityEventOrder},
		{"overlap", func(r *Result) { r.Events.Hops[1].LandingMs = r.Events.Hops[0].TakeoffMs - 10 }, ReasonSanityEventOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := goodDraft()
			tt.mutate(&d)
			r := Gate(d, DefaultConfig())
			assert.Equal(t, StatusError, r.Status)
			assert.Contains(t, r.RejectionReasons, tt.want)
			assert.Nil(t, r.Metrics)
			assert.Nil(t, r.Events)
		})
	}
}

func TestGate_RequirementFlagsCanBeRelaxed(t *testing.T) {
	d := goodDraft()
	d.Reliability.RegionTracked = false
	cfg := DefaultConfig()
	cfg.RequireRegion = false
	assert.Equal(t, StatusComplete, Gate(d, cfg).Status)
}

func TestGate_SoftRedactionKeepsOtherMetrics(t *testing.T) {
	d := goodDraft()
	d.Diagnostics.MetricConfidences.Flight = 0.1

	r := Gate(d, DefaultConfig())

	assert.Equal(t, StatusComplete, r.Status)
	assert.Nil(t, r.Metrics.FlightMs)
	assert.Nil(t, r.Metrics.FlightSeconds)
	assert.Nil(t, r.Metrics.FlightP95Ms)
	assert.Equal(t, 250.0, *r.Metrics.GCTMs)
	assert.NotNil(t, r.Events)
	assert.Contains(t, r.Notes, "flight redacted: confidence 0.100 below 0.400")
	assert.Empty(t, r.RejectionReasons)

	// The draft is untouched.
	require.NotNil(t, d.Metrics.FlightMs)
}

func TestGate_SoftRedactionBounds(t *testing.T) {
	d := goodDraft()
	*d.Metrics.ContactPatchAngleDeg = 40
	d.Diagnostics.MetricConfidences.Events = 0.1

	r := Gate(d, DefaultConfig())

	assert.Equal(t, StatusComplete, r.Status)
	assert.Nil(t, r.Metrics.ContactPatchAngleDeg)
	assert.Nil(t, r.Events)
	assert.Nil(t, r.Metrics.HopCount)
	assert.NotNil(t, r.Metrics.GCTMs)
}

func TestGate_PartialDisallowedEscalates(t *testing.T) {
	d := goodDraft()
	d.Diagnostics.MetricConfidences.GCT = 0.1
	cfg := DefaultConfig()
	cfg.AllowPartial = false

	r := Gate(d, cfg)

	assert.Equal(t, StatusError, r.Status)
	assert.Equal(t, []string{ReasonPartialDisallowed}, r.RejectionReasons)
	assert.Nil(t, r.Metrics)
	assert.Contains(t, r.Notes, "gct redacted: confidence 0.100 below 0.400")
}

func TestGate_Idempotent(t *testing.T) {
	drafts := map[string]func(*Result){
		"clean":   func(*Result) {},
		"partial": func(r *Result) { r.Diagnostics.MetricConfidences.Flight = 0.1 },
		"events":  func(r *Result) { r.Diagnostics.MetricConfidences.Events = 0 },
		"hard":    func(r *Result) { r.Reliability.ViewOK = false },
	}
	for name, mutate := range drafts {
		t.Run(name, func(t *testing.T) {
			d := goodDraft()
			mutate(&d)
			once := Gate(d, DefaultConfig())
			twice := Gate(once, DefaultConfig())
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Errorf("re-gating changed the result (-once +twice):\n%s", diff)
			}
		})
	}
}

func TestGate_TruncatesSamplesOnHardFail(t *testing.T) {
	d := goodDraft()
	d.Diagnostics.Samples = make([]l4signal.Sample, 100)
	d.MeasurementSource = l1frames.ProvenancePlaceholder

	r := Gate(d, DefaultConfig())

	assert.Len(t, r.Diagnostics.Samples, DefaultConfig().MaxDiagnosticSamples)
	assert.Len(t, d.Diagnostics.Samples, 100)
}

func TestGate_ErroredStaysErrored(t *testing.T) {
	e := Errored(l1frames.ProvenanceReal, 0, []string{"EMPTY_INPUT", "EMPTY_INPUT"}, nil)
	r := Gate(e, DefaultConfig())
	assert.Equal(t, StatusError, r.Status)
	assert.Equal(t, []string{"EMPTY_INPUT"}, r.RejectionReasons)
	assert.Equal(t, l2ground.KindUnknown, r.Ground.Kind)
	assert.Zero(t, r.Confidence)
	assert.Nil(t, r.Events)
}

func TestResult_JSONContract(t *testing.T) {
	ok, err := json.Marshal(Gate(goodDraft(), DefaultConfig()))
	require.NoError(t, err)
	s := string(ok)
	for _, field := range []string{
		`"status":"complete"`, `"measurementSource":"synthetic"`, `"gctMs":250`, `"gctSeconds":0.25`,
		`"hopCount":3`, `"landings":[`, `"reliability":{"viewOk":true,"regionTracked":true,"contactDetected":true}`,
		`"stageConfidences":{`, `"metricConfidences":{`, `"chatterCount":0`,
	} {
		assert.Contains(t, s, field)
	}
	assert.NotContains(t, s, `"error"`)

	failed, err := json.Marshal(Gate(Errored(l1frames.ProvenanceReal, 0, []string{"INTERNAL_FAULT"},
		&Failure{Code: "INTERNAL_FAULT", Message: "boom"}), DefaultConfig()))
	require.NoError(t, err)
	s = string(failed)
	assert.Contains(t, s, `"metrics":null`)
	assert.Contains(t, s, `"events":null`)
	assert.Contains(t, s, `"error":{"code":"INTERNAL_FAULT","message":"boom"}`)
	assert.Contains(t, s, `"rejectionReasons":["INTERNAL_FAULT"]`)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []func(*Config){
		func(c *Config) { c.MinConfidence = 1.5 },
		func(c *Config) { c.MinSparseConfidence = 0.1 },
		func(c *Config) { c.SanityMaxGCTMs = 0 },
		func(c *Config) { c.ReportMaxFlightMs = c.ReportMinFlightMs },
		func(c *Config) { c.MaxAngleDeg = 0 },
		func(c *Config) { c.MaxDiagnosticSamples = -1 },
	}
	for i, mutate := range tests {
		c := DefaultConfig()
		mutate(&c)
		assert.Error(t, c.Validate(), "case %d", i)
	}
}
