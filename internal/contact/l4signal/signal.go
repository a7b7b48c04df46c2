package l4signal

import (
	"math"

	"github.com/banshee-data/contact.report/internal/contact/l1frames"
	"github.com/banshee-data/contact.report/internal/contact/l3region"
	"github.com/banshee-data/contact.report/internal/mathutil"
	"github.com/banshee-data/contact.report/internal/monitoring"
)

// Reason codes attached to a Signal.
const (
	ReasonEmptyInput            = "EMPTY_INPUT"
	ReasonNoRegion              = "NO_REGION"
	ReasonFlatSignal            = "FLAT_SIGNAL"
	ReasonInsufficientCrossings = "INSUFFICIENT_CROSSINGS"
)

// Sample is the per-frame contact record.
type Sample struct {
	TimestampMs float64 `json:"timestampMs"`
	Raw         float64 `json:"raw"`
	Smoothed    float64 `json:"smoothed"`
	State       uint8   `json:"state"`
}

// Diagnostics describes how the signal was derived.
type Diagnostics struct {
	Normalization      string  `json:"normalization"`
	PercentileFallback bool    `json:"percentileFallback,omitempty"`
	Center             float64 `json:"center"`
	Scale              float64 `json:"scale"`
	DynamicRange       float64 `json:"dynamicRange"`
	AboveEnter         int     `json:"aboveEnter"`
	BelowExit          int     `json:"belowExit"`
	Transitions        int     `json:"transitions"`
	Chatter            int     `json:"chatter"`
}

// Signal is the contact-signal stage output. When a safeguard fails,
// Detected is false, Confidence is 0 and every state is 0.
type Signal struct {
	Samples     []Sample    `json:"samples"`
	Detected    bool        `json:"detected"`
	Confidence  float64     `json:"confidence"`
	Diagnostics Diagnostics `json:"diagnostics"`
	Reasons     []string    `json:"reasons,omitempty"`
}

// States returns the binary state sequence.
func (s Signal) States() []uint8 {
	out := make([]uint8, len(s.Samples))
	for i, smp := range s.Samples {
		out[i] = smp.State
	}
	return out
}

// Timestamps returns the sample timestamps.
func (s Signal) Timestamps() []float64 {
	out := make([]float64, len(s.Samples))
	for i, smp := range s.Samples {
		out[i] = smp.TimestampMs
	}
	return out
}

// Smoothed returns the smoothed score sequence.
func (s Signal) Smoothed() []float64 {
	out := make([]float64, len(s.Samples))
	for i, smp := range s.Samples {
		out[i] = smp.Smoothed
	}
	return out
}

// RawScores returns mean |frame[i] - frame[i-1]| inside r for every frame;
// frame 0 scores 0.
func RawScores(frames []l1frames.Frame, r l3region.Region) []float64 {
	raw := make([]float64, len(frames))
	n := float64(r.W * r.H)
	for i := 1; i < len(frames); i++ {
		prev, cur := frames[i-1], frames[i]
		var sum float64
		for y := r.Y; y < r.Y+r.H; y++ {
			row := y * cur.Width
			for x := r.X; x < r.X+r.W; x++ {
				sum += math.Abs(float64(cur.Pix[row+x]) - float64(prev.Pix[row+x]))
			}
		}
		raw[i] = sum / n
	}
	return raw
}

func regionFits(r l3region.Region, f l1frames.Frame) bool {
	return r.W > 0 && r.H > 0 && r.X >= 0 && r.Y >= 0 && r.X+r.W <= f.Width && r.Y+r.H <= f.Height
}

// Compute derives the contact signal for frames inside region.
func Compute(frames []l1frames.Frame, region l3region.Region, cfg Config) Signal {
	sig := Signal{Diagnostics: Diagnostics{Normalization: cfg.Normalization}}
	if len(frames) == 0 {
		sig.Reasons = []string{ReasonEmptyInput}
		return sig
	}
	if !regionFits(region, frames[0]) {
		sig.Reasons = []string{ReasonNoRegion}
		sig.Samples = zeroSamples(frames)
		return sig
	}

	raw := RawScores(frames, region)
	norm := normalize(raw, cfg, &sig.Diagnostics)
	smoothed := EMA(norm, cfg.Alpha)
	states, transitions, chatter := Hysteresis(smoothed, cfg.EnterThreshold, cfg.ExitThreshold, cfg.DwellFrames)

	d := &sig.Diagnostics
	d.DynamicRange = mathutil.Range(smoothed)
	d.Transitions = transitions
	d.Chatter = chatter
	for _, v := range smoothed {
		if v >= cfg.EnterThreshold {
			d.AboveEnter++
		}
		if v < cfg.ExitThreshold {
			d.BelowExit++
		}
	}

	sig.Samples = make([]Sample, len(frames))
	for i, f := range frames {
		sig.Samples[i] = Sample{TimestampMs: f.TimestampMs, Raw: raw[i], Smoothed: smoothed[i], State: states[i]}
	}

	if !(d.DynamicRange > cfg.MinDynamicRange) {
		sig.Reasons = append(sig.Reasons, ReasonFlatSignal)
	}
	if d.AboveEnter < cfg.MinCrossFrames || d.BelowExit < cfg.MinCrossFrames {
		sig.Reasons = append(sig.Reasons, ReasonInsufficientCrossings)
	}
	if len(sig.Reasons) > 0 {
		for i := range sig.Samples {
			sig.Samples[i].State = 0
		}
		monitoring.Diagf("signal: rejected %v range=%.3f above=%d below=%d", sig.Reasons, d.DynamicRange, d.AboveEnter, d.BelowExit)
		return sig
	}

	_, sd := mathutil.MeanStdDev(smoothed)
	gap := cfg.EnterThreshold - cfg.ExitThreshold
	sig.Confidence = 0.5*mathutil.Clamp01(gap/0.3) + 0.5*mathutil.Clamp01(1-2*sd)
	sig.Detected = true
	monitoring.Tracef("signal: %d transitions, %d chatter, range=%.3f conf=%.3f", transitions, chatter, d.DynamicRange, sig.Confidence)
	return sig
}

func zeroSamples(frames []l1frames.Frame) []Sample {
	out := make([]Sample, len(frames))
	for i, f := range frames {
		out[i].TimestampMs = f.TimestampMs
	}
	return out
}

// normalize maps raw scores onto [0, 1] and records the parameters used.
func normalize(raw []float64, cfg Config, d *Diagnostics) []float64 {
	if cfg.Normalization == NormalizationMAD {
		med, mad := mathutil.MAD(raw)
		if mad > 0 {
			d.Center, d.Scale = med, 2*mathutil.MADScale*mad
			out := make([]float64, len(raw))
			for i, v := range raw {
				out[i] = mathutil.Clamp01(0.5 + (v-med)/d.Scale)
			}
			return out
		}
		d.PercentileFallback = true
	}
	lo := mathutil.Percentile(raw, cfg.PercentileLow)
	hi := mathutil.Percentile(raw, cfg.PercentileHigh)
	d.Center, d.Scale = lo, hi-lo
	out := make([]float64, len(raw))
	if hi <= lo {
		return out
	}
	for i, v := range raw {
		out[i] = mathutil.Clamp01((v - lo) / (hi - lo))
	}
	return out
}

// EMA applies s[i] = alpha*x[i] + (1-alpha)*s[i-1], seeded with x[0].
func EMA(x []float64, alpha float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if i == 0 {
			out[i] = v
			continue
		}
		out[i] = alpha*v + (1-alpha)*out[i-1]
	}
	return out
}

// Hysteresis converts a smoothed score into contact states. Contact is
// entered at score >= enter and left at score < exit. A flip commits only
// after its condition has held for dwell consecutive frames, and is then
// applied from the first of those frames. A flip abandoned before dwell is
// counted as chatter; one still pending at the end is dropped silently.
func Hysteresis(smoothed []float64, enter, exit float64, dwell int) (states []uint8, transitions, chatter int) {
	if dwell < 1 {
		dwell = 1
	}
	states = make([]uint8, len(smoothed))
	var cur uint8
	pending, start := 0, 0
	for i, v := range smoothed {
		flip := (cur == 0 && v >= enter) || (cur == 1 && v < exit)
		if flip {
			if pending == 0 {
				start = i
			}
			pending++
			if pending >= dwell {
				cur = 1 - cur
				for j := start; j <= i; j++ {
					states[j] = cur
				}
				transitions++
				pending = 0
				continue
			}
		} else if pending > 0 {
			chatter++
			pending = 0
		}
		states[i] = cur
	}
	return states, transitions, chatter
}
