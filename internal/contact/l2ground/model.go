package l2ground

import (
	"math"
)

// Kind tags which representation a Model carries.
type Kind string

const (
	KindUnknown Kind = "unknown"
	KindScalar  Kind = "scalar"
	KindLinear  Kind = "linear"
	KindPolar   Kind = "polar"
)

// Segment is a renderable portion of the ground line, clipped to the frame.
type Segment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Model is the ground estimate for one batch. Only the fields for Kind are
// meaningful:
//
//	scalar: Y
//	linear: Slope, Intercept (y = Slope*x + Intercept)
//	polar:  Theta in [0, pi) is the line direction (0 = horizontal),
//	        Rho = -x*sin(Theta) + y*cos(Theta) for every point on the line.
type Model struct {
	Kind       Kind     `json:"kind"`
	Y          float64  `json:"y,omitempty"`
	Slope      float64  `json:"slope,omitempty"`
	Intercept  float64  `json:"intercept,omitempty"`
	Theta      float64  `json:"theta,omitempty"`
	Rho        float64  `json:"rho,omitempty"`
	Confidence float64  `json:"confidence"`
	Segment    *Segment `json:"segment,omitempty"`
}

// Unknown is the "no ground" model.
func Unknown() Model {
	return Model{Kind: KindUnknown}
}

// ScalarModel returns a horizontal ground at row y.
func ScalarModel(y, confidence float64) Model {
	return Model{Kind: KindScalar, Y: y, Confidence: confidence}
}

// LinearModel returns the ground y = slope*x + intercept.
func LinearModel(slope, intercept, confidence float64) Model {
	return Model{Kind: KindLinear, Slope: slope, Intercept: intercept, Confidence: confidence}
}

// PolarModel returns a polar ground line with theta normalised to [0, pi)
// and its segment clipped to a width x height frame.
func PolarModel(theta, rho, confidence float64, width, height int) Model {
	theta, rho = normalizeLine(theta, rho)
	m := Model{Kind: KindPolar, Theta: theta, Rho: rho, Confidence: confidence}
	m.Segment = clipLine(theta, rho, width, height)
	return m
}

// Known reports whether the model describes a line.
func (m Model) Known() bool {
	return m.Kind == KindScalar || m.Kind == KindLinear || m.Kind == KindPolar
}

// YAt returns the ground row at column x. It is NaN for unknown models and
// for vertical polar lines.
func (m Model) YAt(x float64) float64 {
	switch m.Kind {
	case KindScalar:
		return m.Y
	case KindLinear:
		return m.Slope*x + m.Intercept
	case KindPolar:
		c := math.Cos(m.Theta)
		if math.Abs(c) < 1e-9 {
			return math.NaN()
		}
		return (m.Rho + x*math.Sin(m.Theta)) / c
	default:
		return math.NaN()
	}
}

// HeightAbove returns the perpendicular distance of (x, y) above the ground
// line in pixels. Points below the line give negative values.
func (m Model) HeightAbove(x, y float64) float64 {
	switch m.Kind {
	case KindScalar:
		return m.Y - y
	case KindLinear:
		return (m.Slope*x + m.Intercept - y) / math.Sqrt(1+m.Slope*m.Slope)
	case KindPolar:
		d := m.Rho - (-x*math.Sin(m.Theta) + y*math.Cos(m.Theta))
		if math.Cos(m.Theta) < 0 {
			d = -d
		}
		return d
	default:
		return math.NaN()
	}
}

// AngleDeg returns the line's inclination in degrees, in (-90, 90].
// Positive angles descend to the right in image coordinates.
func (m Model) AngleDeg() float64 {
	switch m.Kind {
	case KindLinear:
		return math.Atan(m.Slope) * 180 / math.Pi
	case KindPolar:
		t := m.Theta
		if t > math.Pi/2 {
			t -= math.Pi
		}
		return t * 180 / math.Pi
	default:
		return 0
	}
}

// normalizeLine maps (theta, rho) onto the equivalent line with theta in
// [0, pi). Adding pi to theta negates rho.
func normalizeLine(theta, rho float64) (float64, float64) {
	for theta < 0 {
		theta += math.Pi
		rho = -rho
	}
	for theta >= math.Pi {
		theta -= math.Pi
		rho = -rho
	}
	return theta, rho
}

// clipLine intersects the line with [0, w-1] x [0, h-1].
func clipLine(theta, rho float64, w, h int) *Segment {
	if w <= 0 || h <= 0 {
		return nil
	}
	dx, dy := math.Cos(theta), math.Sin(theta)
	// Foot of the perpendicular from the origin.
	px, py := -rho*math.Sin(theta), rho*math.Cos(theta)

	tMin, tMax := math.Inf(-1), math.Inf(1)
	clip := func(p, d, lo, hi float64) bool {
		if math.Abs(d) < 1e-12 {
			return p >= lo && p <= hi
		}
		t1, t2 := (lo-p)/d, (hi-p)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		return tMin <= tMax
	}
	if !clip(px, dx, 0, float64(w-1)) || !clip(py, dy, 0, float64(h-1)) {
		return nil
	}
	return &Segment{
		X1: px + tMin*dx, Y1: py + tMin*dy,
		X2: px + tMax*dx, Y2: py + tMax*dy,
	}
}
