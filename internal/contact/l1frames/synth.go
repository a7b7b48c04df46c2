package l1frames

import (
	"math"
)

// SynthConfig describes a rendered hopping sequence: a wall/floor boundary
// seen by a possibly tilted camera, and a foot block that rests on the floor
// during contact and follows a parabolic lift during flight. The sole carries
// a striped pattern only while loaded. It shifts every contact frame and its
// contrast fades to half by takeoff, standing in for the compression and roll
// of a real foot strike. Landing and takeoff are therefore the instants the
// pattern appears and vanishes.
type SynthConfig struct {
	Width, Height int
	FPS           float64
	Frames        int
	StartMs       float64

	FloorY     float64 // floor line y at the horizontal centre of the frame
	TiltDeg    float64 // floor line angle; positive tilts the right side down
	WallLevel  uint8
	FloorLevel uint8

	FootX      float64 // foot centre x
	FootW      int
	FootH      int
	FootLevel  uint8
	FootStripe uint8 // sole stripe contrast at landing, 0 disables texture
	LiftPx     float64

	GCTMs    float64
	FlightMs float64
	PhaseMs  float64 // time of the first landing
	NoiseAmp int     // deterministic per-pixel noise amplitude
}

// DefaultSynthConfig returns a 160x120, 60 fps sequence with a 250 ms
// contact / 400 ms flight cadence. The foot is a shade off the wall so the
// swing itself leaves almost no motion energy, and its width is a whole
// number of stripe periods.
func DefaultSynthConfig() SynthConfig {
	return SynthConfig{
		Width:      160,
		Height:     120,
		FPS:        60,
		Frames:     40,
		FloorY:     84,
		WallLevel:  70,
		FloorLevel: 170,
		FootX:      80,
		FootW:      24,
		FootH:      12,
		FootLevel:  68,
		FootStripe: 60,
		LiftPx:     60,
		GCTMs:      250,
		FlightMs:   400,
		PhaseMs:    50,
		NoiseAmp:   2,
	}
}

// FloorLineY returns the y coordinate of the floor line at column x.
func (c SynthConfig) FloorLineY(x float64) float64 {
	return c.FloorY + (x-float64(c.Width)/2)*math.Tan(c.TiltDeg*math.Pi/180)
}

// cyclePhase returns the time since the most recent landing.
func (c SynthConfig) cyclePhase(tMs float64) float64 {
	period := c.GCTMs + c.FlightMs
	if period <= 0 {
		return 0
	}
	p := math.Mod(tMs-c.PhaseMs, period)
	if p < 0 {
		p += period
	}
	return p
}

// InContact reports whether the foot is on the floor at tMs.
func (c SynthConfig) InContact(tMs float64) bool {
	if tMs < c.PhaseMs {
		// Before the first landing the foot is airborne.
		return false
	}
	return c.cyclePhase(tMs) < c.GCTMs
}

// Lift returns the foot's height above the floor at tMs.
func (c SynthConfig) Lift(tMs float64) float64 {
	if c.InContact(tMs) {
		return 0
	}
	var u float64
	if tMs < c.PhaseMs {
		u = 1 - (c.PhaseMs-tMs)/c.FlightMs
		if u < 0 {
			u = 0
		}
	} else {
		u = (c.cyclePhase(tMs) - c.GCTMs) / c.FlightMs
	}
	return c.LiftPx * 4 * u * (1 - u)
}

// stripeAmp returns the sole stripe contrast at tMs: FootStripe at landing,
// falling linearly to half of it at takeoff, and 0 in flight.
func (c SynthConfig) stripeAmp(tMs float64) int {
	if !c.InContact(tMs) || c.GCTMs <= 0 {
		return 0
	}
	return int(math.Round(float64(c.FootStripe) * (1 - 0.5*c.cyclePhase(tMs)/c.GCTMs)))
}

// Landings returns the landing times inside [StartMs, endMs).
func (c SynthConfig) Landings(endMs float64) []float64 {
	return c.eventTimes(0, endMs)
}

// Takeoffs returns the takeoff times inside [StartMs, endMs).
func (c SynthConfig) Takeoffs(endMs float64) []float64 {
	return c.eventTimes(c.GCTMs, endMs)
}

func (c SynthConfig) eventTimes(offset, endMs float64) []float64 {
	period := c.GCTMs + c.FlightMs
	if period <= 0 {
		return nil
	}
	var out []float64
	for t := c.PhaseMs + offset; t < endMs; t += period {
		if t >= c.StartMs {
			out = append(out, t)
		}
	}
	return out
}

// Render draws frame i of the sequence.
func (c SynthConfig) Render(i int) Frame {
	ts := c.StartMs + float64(i)*1000/c.FPS
	pix := make([]uint8, c.Width*c.Height)

	lift := c.Lift(ts)
	footBottom := c.FloorLineY(c.FootX) - lift
	footTop := footBottom - float64(c.FootH)
	footLeft := c.FootX - float64(c.FootW)/2
	footRight := c.FootX + float64(c.FootW)/2
	amp := c.stripeAmp(ts)

	for y := 0; y < c.Height; y++ {
		fy := float64(y) + 0.5
		for x := 0; x < c.Width; x++ {
			fx := float64(x) + 0.5
			v := int(c.WallLevel)
			if fy >= c.FloorLineY(fx) {
				v = int(c.FloorLevel)
			}
			if fx >= footLeft && fx < footRight && fy >= footTop && fy < footBottom {
				v = int(c.FootLevel)
				if amp > 0 && ((x+2*i)/3)%2 == 0 {
					v += amp
				}
			}
			if c.NoiseAmp > 0 {
				v += int(noiseHash(x, y, i)%uint32(2*c.NoiseAmp+1)) - c.NoiseAmp
			}
			pix[y*c.Width+x] = clampByte(v)
		}
	}
	return Frame{Pix: pix, Width: c.Width, Height: c.Height, TimestampMs: ts}
}

// Batch renders the full sequence with synthetic provenance.
func (c SynthConfig) Batch() Batch {
	frames := make([]Frame, c.Frames)
	for i := range frames {
		frames[i] = c.Render(i)
	}
	return Batch{Frames: frames, Provenance: ProvenanceSynthetic}
}

// noiseHash is a fixed integer hash so that rendered noise is reproducible.
func noiseHash(x, y, i int) uint32 {
	h := uint32(x)*73856093 ^ uint32(y)*19349663 ^ uint32(i)*83492791
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return h
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
