package l2ground

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/contact.report/internal/contact/l1frames"
)

func synthFrames(tiltDeg float64, n int) ([]l1frames.Frame, l1frames.SynthConfig) {
	c := l1frames.DefaultSynthConfig()
	c.TiltDeg = tiltDeg
	c.Frames = n
	c.FootW = 0
	return c.Batch().Frames, c
}

func TestDetect_TiltInvariant(t *testing.T) {
	for _, tilt := range []float64{0, 8, -12, 20} {
		frames, c := synthFrames(tilt, 12)
		det := Detect(frames, DefaultConfig())
		if !det.Detected || det.Model.Kind != KindPolar {
			t.Fatalf("tilt %v: not detected, reasons %v", tilt, det.Reasons)
		}
		if got := det.Model.AngleDeg(); math.Abs(got-tilt) > 1.5 {
			t.Errorf("tilt %v: angle = %.2f", tilt, got)
		}
		// The edge straddles the boundary half a pixel above the rendered floor row.
		if got := det.Model.YAt(80); math.Abs(got-c.FloorLineY(80)) > 2.5 {
			t.Errorf("tilt %v: YAt(80) = %.2f, want about %.2f", tilt, got, c.FloorLineY(80))
		}
		if det.Model.Confidence < 0.8 {
			t.Errorf("tilt %v: confidence = %.3f", tilt, det.Model.Confidence)
		}
		if det.Model.Segment == nil {
			t.Errorf("tilt %v: missing segment", tilt)
		}
	}
}

func TestDetect_EmptyAndFlat(t *testing.T) {
	det := Detect(nil, DefaultConfig())
	if det.Detected || det.Model.Kind != KindUnknown || det.Model.Confidence != 0 {
		t.Errorf("empty: %+v", det)
	}

	flat := []l1frames.Frame{
		l1frames.NewUniformFrame(64, 48, 90, 0),
		l1frames.NewUniformFrame(64, 48, 90, 33),
	}
	det = Detect(flat, DefaultConfig())
	if det.Detected || det.Model.Kind != KindUnknown || det.Model.Confidence != 0 {
		t.Errorf("flat: %+v", det)
	}
	if len(det.Reasons) != 1 || det.Reasons[0] != ReasonNoEdges {
		t.Errorf("flat reasons = %v", det.Reasons)
	}
}

// stepFrame draws a horizontal boundary at row hy and a vertical one at
// column vx, each with the same contrast.
func stepFrame(w, h, hy, vx int, ts float64) l1frames.Frame {
	f := l1frames.NewUniformFrame(w, h, 60, ts)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := 60
			if y >= hy {
				v += 80
			}
			if x >= vx {
				v += 80
			}
			f.Pix[y*w+x] = uint8(v)
		}
	}
	return f
}

func TestDetect_PrefersHorizontalOverVertical(t *testing.T) {
	var frames []l1frames.Frame
	for i := 0; i < 6; i++ {
		frames = append(frames, stepFrame(100, 100, 60, 40, float64(i)*33))
	}
	det := Detect(frames, DefaultConfig())
	if !det.Detected {
		t.Fatalf("not detected: %v", det.Reasons)
	}
	if got := math.Abs(det.Model.AngleDeg()); got > 2 {
		t.Errorf("picked angle %.1f, want the horizontal line", det.Model.AngleDeg())
	}
	if len(det.Clusters) < 2 {
		t.Fatalf("expected both lines as clusters, got %d", len(det.Clusters))
	}
	if det.Clusters[1].Plausibility > 0.1 {
		t.Errorf("runner-up plausibility = %.2f, want near-vertical penalty", det.Clusters[1].Plausibility)
	}
}

func TestDetect_Deterministic(t *testing.T) {
	frames, _ := synthFrames(5, 10)
	a := Detect(frames, DefaultConfig())
	b := Detect(frames, DefaultConfig())
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Detect not deterministic (-a +b):\n%s", diff)
	}
}

func TestFrameCandidates_WrapSuppression(t *testing.T) {
	// A horizontal line is both theta=0 and theta=pi; only one peak may survive.
	f := stepFrame(80, 60, 30, 200, 0)
	edges := Edges(f, DefaultConfig())
	c := FrameCandidates(edges, f.Width, f.Height, DefaultConfig())
	if len(c) == 0 {
		t.Fatal("no candidates")
	}
	for _, cand := range c[1:] {
		th := cand.Theta * 180 / math.Pi
		if (th < 6 || th > 174) && math.Abs(math.Abs(cand.Rho)-math.Abs(c[0].Rho)) < 3 {
			t.Errorf("duplicate peak of the strongest line: %+v", cand)
		}
	}
}

func TestAlignWrapsRho(t *testing.T) {
	th, rho := align(0.05, math.Pi-0.05, -40)
	if math.Abs(th-(-0.05)) > 1e-12 || rho != 40 {
		t.Errorf("align = %v, %v", th, rho)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	bad := DefaultConfig()
	bad.TopK = MaxTopK + 1
	if bad.Validate() == nil {
		t.Error("expected error for oversized TopK")
	}
	bad = DefaultConfig()
	bad.ThetaStepDeg = 0
	if bad.Validate() == nil {
		t.Error("expected error for zero theta step")
	}
}
