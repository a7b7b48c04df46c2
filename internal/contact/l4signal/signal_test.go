package l4signal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/contact.report/internal/contact/l1frames"
	"github.com/banshee-data/contact.report/internal/contact/l3region"
)

func TestHysteresis(t *testing.T) {
	tests := []struct {
		name        string
		in          []float64
		dwell       int
		want        []uint8
		transitions int
		chatter     int
	}{
		{
			name:        "enter and exit",
			in:          []float64{0, 0.4, 0.4, 0.4, 0.1, 0.1},
			dwell:       2,
			want:        []uint8{0, 1, 1, 1, 0, 0},
			transitions: 2,
		},
		{
			name:    "short spike is chatter",
			in:      []float64{0, 0.4, 0.1, 0, 0},
			dwell:   2,
			want:    []uint8{0, 0, 0, 0, 0},
			chatter: 1,
		},
		{
			name:  "pending at end is dropped",
			in:    []float64{0, 0, 0.5},
			dwell: 2,
			want:  []uint8{0, 0, 0},
		},
		{
			name:        "dwell one flips immediately",
			in:          []float64{0.5, 0.2, 0.1},
			dwell:       1,
			want:        []uint8{1, 1, 0},
			transitions: 2,
		},
		{
			name:        "band between thresholds holds state",
			in:          []float64{0.3, 0.3, 0.2, 0.2, 0.29},
			dwell:       2,
			want:        []uint8{1, 1, 1, 1, 1},
			transitions: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, tr, ch := Hysteresis(tt.in, 0.3, 0.15, tt.dwell)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("states mismatch (-want +got):\n%s", diff)
			}
			if tr != tt.transitions || ch != tt.chatter {
				t.Errorf("transitions=%d chatter=%d, want %d/%d", tr, ch, tt.transitions, tt.chatter)
			}
		})
	}
}

func TestEMA(t *testing.T) {
	got := EMA([]float64{1, 0, 0}, 0.5)
	assert.Equal(t, []float64{1, 0.5, 0.25}, got)
	assert.Empty(t, EMA(nil, 0.2))
}

func TestNormalize_MAD(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Normalization = NormalizationMAD
	var d Diagnostics
	out := normalize([]float64{1, 2, 3, 4, 100}, cfg, &d)
	assert.False(t, d.PercentileFallback)
	assert.Equal(t, 3.0, d.Center)
	assert.InDelta(t, 2.96, d.Scale, 1e-12)
	assert.Equal(t, 0.0, out[0])
	assert.Equal(t, 0.5, out[2])
	assert.Equal(t, 1.0, out[4])
}

func TestNormalize_MADFallsBackToPercentile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Normalization = NormalizationMAD
	var d Diagnostics
	out := normalize([]float64{0, 0, 0, 0, 0, 0, 0, 5, 5, 5}, cfg, &d)
	assert.True(t, d.PercentileFallback)
	assert.Equal(t, 0.0, out[0])
	assert.Equal(t, 1.0, out[9])
}

func TestNormalize_PercentileFlat(t *testing.T) {
	var d Diagnostics
	out := normalize([]float64{2, 2, 2}, DefaultConfig(), &d)
	assert.Equal(t, []float64{0, 0, 0}, out)
	assert.Zero(t, d.Scale)
}

// burstFrames returns a static 16x16 scene where the region flickers by amp
// on every frame inside the given [from, to] bursts.
func burstFrames(n int, amp uint8, bursts ...[2]int) []l1frames.Frame {
	frames := make([]l1frames.Frame, n)
	for i := range frames {
		v := uint8(100)
		for _, b := range bursts {
			if i >= b[0] && i <= b[1] && i%2 == 1 {
				v += amp
			}
		}
		frames[i] = l1frames.NewUniformFrame(16, 16, v, float64(i)*20)
	}
	return frames
}

var fullRegion = l3region.Region{X: 0, Y: 0, W: 16, H: 16}

func TestCompute_Bursts(t *testing.T) {
	frames := burstFrames(40, 60, [2]int{5, 12}, [2]int{25, 32})
	sig := Compute(frames, fullRegion, DefaultConfig())
	require.True(t, sig.Detected, "reasons %v", sig.Reasons)

	st := sig.States()
	for i := 0; i < 6; i++ {
		assert.Equal(t, uint8(0), st[i], "frame %d", i)
	}
	assert.Equal(t, uint8(1), st[6])
	assert.Equal(t, uint8(1), st[19])
	assert.Equal(t, uint8(0), st[20])
	assert.Equal(t, uint8(0), st[25])
	assert.Equal(t, uint8(1), st[26])
	assert.Equal(t, uint8(1), st[39])
	assert.Equal(t, 3, sig.Diagnostics.Transitions)
	assert.Zero(t, sig.Diagnostics.Chatter)
	assert.Greater(t, sig.Confidence, 0.25)
	assert.LessOrEqual(t, sig.Confidence, 1.0)
	assert.Zero(t, sig.Samples[0].Raw)
	assert.Equal(t, 60.0, sig.Samples[5].Raw)
	assert.Equal(t, frames[7].TimestampMs, sig.Timestamps()[7])
}

func TestCompute_FlatRejected(t *testing.T) {
	frames := burstFrames(20, 0)
	sig := Compute(frames, fullRegion, DefaultConfig())
	assert.False(t, sig.Detected)
	assert.Zero(t, sig.Confidence)
	assert.Equal(t, []string{ReasonFlatSignal, ReasonInsufficientCrossings}, sig.Reasons)
	for _, s := range sig.Samples {
		assert.Zero(t, s.State)
	}
}

func TestCompute_EmptyAndNoRegion(t *testing.T) {
	sig := Compute(nil, fullRegion, DefaultConfig())
	assert.Equal(t, []string{ReasonEmptyInput}, sig.Reasons)
	assert.Empty(t, sig.Samples)

	frames := burstFrames(5, 10, [2]int{0, 4})
	sig = Compute(frames, l3region.Region{}, DefaultConfig())
	assert.Equal(t, []string{ReasonNoRegion}, sig.Reasons)
	require.Len(t, sig.Samples, 5)
	assert.Equal(t, 80.0, sig.Samples[4].TimestampMs)
	assert.Zero(t, sig.Confidence)
}

func TestCompute_DynamicRangeMonotoneInIntensity(t *testing.T) {
	prev := -1.0
	for _, amp := range []uint8{10, 40, 120} {
		sig := Compute(burstFrames(40, amp, [2]int{5, 12}, [2]int{25, 32}), fullRegion, DefaultConfig())
		assert.GreaterOrEqual(t, sig.Diagnostics.DynamicRange, prev-1e-9, "amp %d", amp)
		prev = sig.Diagnostics.DynamicRange
	}
}

func TestCompute_Deterministic(t *testing.T) {
	frames := burstFrames(40, 60, [2]int{5, 12}, [2]int{25, 32})
	a := Compute(frames, fullRegion, DefaultConfig())
	b := Compute(frames, fullRegion, DefaultConfig())
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Compute not deterministic:\n%s", diff)
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	bad := DefaultConfig()
	bad.ExitThreshold = 0.5
	assert.Error(t, bad.Validate())
	bad = DefaultConfig()
	bad.Normalization = "zscore"
	assert.Error(t, bad.Validate())
	bad = DefaultConfig()
	bad.Alpha = 0
	assert.Error(t, bad.Validate())
}
