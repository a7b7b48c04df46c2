package evaluation

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/contact.report/internal/contact/l5events"
	"github.com/banshee-data/contact.report/internal/contact/l6gate"
	"github.com/banshee-data/contact.report/internal/contact/pipeline"
)

func TestMatchTimestamps_DuplicatesZeroTolerance(t *testing.T) {
	m := MatchTimestamps([]float64{100, 100}, []float64{100, 100}, 0)

	assert.Len(t, m.Pairs, 2)
	assert.Zero(t, m.UnmatchedAuto)
	assert.Zero(t, m.UnmatchedLabels)
	assert.Zero(t, m.MeanAbsErrorMs)
	assert.Zero(t, m.MaxAbsErrorMs)
	assert.Equal(t, 1.0, m.Precision)
	assert.Equal(t, 1.0, m.Recall)
}

func TestMatchTimestamps_ToleranceIsInclusive(t *testing.T) {
	m := MatchTimestamps([]float64{134}, []float64{100}, 34)
	require.Len(t, m.Pairs, 1)
	assert.Equal(t, 34.0, m.Pairs[0].ErrorMs)

	m = MatchTimestamps([]float64{134.5}, []float64{100}, 34)
	assert.Empty(t, m.Pairs)
	assert.Equal(t, 1, m.UnmatchedAuto)
	assert.Equal(t, 1, m.UnmatchedLabels)
	assert.Zero(t, m.Precision)
}

func TestMatchTimestamps_Optimal(t *testing.T) {
	// Greedy nearest-first would pair 110 with 100 and leave 80 unmatched.
	m := MatchTimestamps([]float64{80, 110}, []float64{100, 130}, 25)

	want := []Pair{
		{AutoIndex: 0, LabelIndex: 0, AutoMs: 80, LabelMs: 100, ErrorMs: -20},
		{AutoIndex: 1, LabelIndex: 1, AutoMs: 110, LabelMs: 130, ErrorMs: -20},
	}
	if diff := cmp.Diff(want, m.Pairs); diff != "" {
		t.Errorf("pairs mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 20.0, m.MeanAbsErrorMs)
	assert.Equal(t, 20.0, m.MaxAbsErrorMs)
}

func TestMatchTimestamps_Empty(t *testing.T) {
	m := MatchTimestamps(nil, []float64{1, 2}, 10)
	assert.Equal(t, 2, m.UnmatchedLabels)
	assert.Zero(t, m.Recall)
	assert.NotNil(t, m.Pairs)
}

func TestEvaluate(t *testing.T) {
	r := l6gate.Result{Events: &l6gate.Events{
		Landings: []l5events.Event{{Type: l5events.TypeLanding, RefinedMs: 205}, {Type: l5events.TypeLanding, RefinedMs: 860}},
		Takeoffs: []l5events.Event{{Type: l5events.TypeTakeoff, RefinedMs: 455}},
	}}
	labels := Labels{VideoID: "v", LandingsMs: []float64{200, 850}, TakeoffsMs: []float64{450, 1100}}

	rep := Evaluate(r, labels, 34)
	assert.Equal(t, "v", rep.VideoID)
	assert.Len(t, rep.Landings.Pairs, 2)
	assert.InDelta(t, 7.5, rep.Landings.MeanAbsErrorMs, 1e-9)
	assert.Len(t, rep.Takeoffs.Pairs, 1)
	assert.Equal(t, 1, rep.Takeoffs.UnmatchedLabels)

	redacted := Evaluate(l6gate.Result{}, labels, 34)
	assert.Empty(t, redacted.Landings.Pairs)
	assert.Equal(t, 2, redacted.Landings.UnmatchedLabels)
}

func TestMemoryLabelStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryLabelStore()

	_, err := s.GetLabels(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Error(t, s.PutLabels(ctx, Labels{}))

	in := Labels{VideoID: "a", LandingsMs: []float64{1, 2}, TakeoffsMs: []float64{3}}
	require.NoError(t, s.PutLabels(ctx, in))
	in.LandingsMs[0] = 99

	got, err := s.GetLabels(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, got.LandingsMs)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.GetLabels(cancelled, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryResultStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryResultStore()

	_, err := s.GetResult(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	want := l6gate.Result{Status: l6gate.StatusComplete, Confidence: 0.7, Notes: []string{"n"}}
	require.NoError(t, s.PutResult(ctx, "k", "v", want))
	got, err := s.GetResult(ctx, "k")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveVideoID(t *testing.T) {
	a := DeriveVideoID("hops.mp4", 1024)
	assert.Equal(t, a, DeriveVideoID("hops.mp4", 1024))
	assert.NotEqual(t, a, DeriveVideoID("hops.mp4", 1025))
	assert.NotEqual(t, a, DeriveVideoID("other.mp4", 1024))
	assert.Len(t, a, 36)
}

func TestCacheKey(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	d := Decode{FPS: 60, TimestampsMs: []float64{0, 16.67, 33.33}}
	base, err := CacheKey("video", d, cfg)
	require.NoError(t, err)

	again, err := CacheKey("video", Decode{FPS: 60, TimestampsMs: []float64{0, 16.67, 33.33}}, cfg)
	require.NoError(t, err)
	assert.Equal(t, base, again)

	tuned := pipeline.DefaultConfig()
	tuned.Signal.Alpha = 0.3

	cases := map[string]struct {
		videoID string
		d       Decode
		cfg     pipeline.Config
	}{
		"config":     {"video", d, tuned},
		"video":      {"other", d, cfg},
		"fps":        {"video", Decode{FPS: 30, TimestampsMs: d.TimestampsMs}, cfg},
		"max width":  {"video", Decode{FPS: 60, MaxWidth: 320, TimestampsMs: d.TimestampsMs}, cfg},
		"timestamps": {"video", Decode{FPS: 60, TimestampsMs: []float64{0, 33.33, 66.67}}, cfg},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			k, err := CacheKey(tc.videoID, tc.d, tc.cfg)
			require.NoError(t, err)
			assert.NotEqual(t, base, k)
		})
	}
}
