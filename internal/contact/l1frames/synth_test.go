package l1frames

import (
	"bytes"
	"testing"
)

func TestSynthContactSchedule(t *testing.T) {
	c := DefaultSynthConfig()
	c.PhaseMs = 100
	c.GCTMs = 200
	c.FlightMs = 300

	tests := []struct {
		t       float64
		contact bool
	}{
		{0, false},
		{99, false},
		{100, true},
		{299, true},
		{300, false},
		{599, false},
		{600, true},
	}
	for _, tt := range tests {
		if got := c.InContact(tt.t); got != tt.contact {
			t.Errorf("InContact(%v) = %v, want %v", tt.t, got, tt.contact)
		}
	}

	landings := c.Landings(1200)
	if len(landings) != 3 || landings[0] != 100 || landings[1] != 600 || landings[2] != 1100 {
		t.Errorf("Landings = %v", landings)
	}
	takeoffs := c.Takeoffs(1200)
	if len(takeoffs) != 2 || takeoffs[0] != 300 || takeoffs[1] != 800 {
		t.Errorf("Takeoffs = %v", takeoffs)
	}
}

func TestSynthLift(t *testing.T) {
	c := DefaultSynthConfig()
	if got := c.Lift(c.PhaseMs + 10); got != 0 {
		t.Errorf("lift during contact = %v, want 0", got)
	}
	mid := c.PhaseMs + c.GCTMs + c.FlightMs/2
	if got := c.Lift(mid); got != c.LiftPx {
		t.Errorf("lift at flight apex = %v, want %v", got, c.LiftPx)
	}
}

func TestSynthRenderDeterministic(t *testing.T) {
	c := DefaultSynthConfig()
	a := c.Batch()
	b := c.Batch()
	if err := a.Validate(); err != nil {
		t.Fatalf("synthetic batch invalid: %v", err)
	}
	if a.Provenance != ProvenanceSynthetic {
		t.Errorf("provenance = %q", a.Provenance)
	}
	for i := range a.Frames {
		if !bytes.Equal(a.Frames[i].Pix, b.Frames[i].Pix) {
			t.Fatalf("frame %d differs between renders", i)
		}
	}
}

func TestSynthRenderFloorBoundary(t *testing.T) {
	c := DefaultSynthConfig()
	c.NoiseAmp = 0
	f := c.Render(0)
	// Far from the foot the wall sits above the floor line and the floor below it.
	x := 10
	yLine := int(c.FloorLineY(float64(x)))
	if got := f.At(x, yLine-5); got != c.WallLevel {
		t.Errorf("above floor = %d, want %d", got, c.WallLevel)
	}
	if got := f.At(x, yLine+5); got != c.FloorLevel {
		t.Errorf("below floor = %d, want %d", got, c.FloorLevel)
	}
}

func TestSynthFootMovesOnlyWhileGrounded(t *testing.T) {
	c := DefaultSynthConfig()
	c.NoiseAmp = 0
	c.PhaseMs = 0
	// Two consecutive contact frames differ (texture roll) inside the foot.
	f0, f1 := c.Render(2), c.Render(3)
	if !c.InContact(f0.TimestampMs) || !c.InContact(f1.TimestampMs) {
		t.Fatal("expected contact frames")
	}
	footY := int(c.FloorLineY(c.FootX)) - c.FootH/2
	diff := 0
	for x := int(c.FootX) - c.FootW/2; x < int(c.FootX)+c.FootW/2; x++ {
		if f0.At(x, footY) != f1.At(x, footY) {
			diff++
		}
	}
	if diff == 0 {
		t.Error("foot texture did not change between contact frames")
	}
}

func TestSynthStripeOnlyUnderLoad(t *testing.T) {
	c := DefaultSynthConfig()

	tests := []struct {
		name string
		tMs  float64
		want int
	}{
		{"before first landing", c.PhaseMs - 10, 0},
		{"landing", c.PhaseMs, int(c.FootStripe)},
		{"mid contact", c.PhaseMs + c.GCTMs/2, 45},
		{"last contact instant", c.PhaseMs + c.GCTMs - 1e-9, int(c.FootStripe) / 2},
		{"flight", c.PhaseMs + c.GCTMs + 1, 0},
	}
	for _, tt := range tests {
		if got := c.stripeAmp(tt.tMs); got != tt.want {
			t.Errorf("%s: stripeAmp(%v) = %d, want %d", tt.name, tt.tMs, got, tt.want)
		}
	}
}

func TestSynthFlightFrameIsUntextured(t *testing.T) {
	c := DefaultSynthConfig()
	c.NoiseAmp = 0
	// Frame 30 is 500 ms in: 200 ms into the first flight.
	f := c.Render(30)
	if c.InContact(f.TimestampMs) {
		t.Fatal("expected a flight frame")
	}
	footBottom := int(c.FloorLineY(c.FootX) - c.Lift(f.TimestampMs))
	for y := footBottom - c.FootH; y < footBottom; y++ {
		for x := int(c.FootX) - c.FootW/2; x < int(c.FootX)+c.FootW/2; x++ {
			if got := f.At(x, y); got != c.FootLevel {
				t.Fatalf("foot pixel (%d, %d) = %d, want plain %d", x, y, got, c.FootLevel)
			}
		}
	}
}
