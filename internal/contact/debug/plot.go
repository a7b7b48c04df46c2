package debug

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/contact.report/internal/contact/l5events"
	"github.com/banshee-data/contact.report/internal/contact/l6gate"
)

// ErrNoSamples is returned when a result carries no signal samples.
var ErrNoSamples = errors.New("result has no diagnostic samples")

var (
	rawColor      = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	smoothedColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	stateColor    = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	landingColor  = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	takeoffColor  = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// WriteSignalPlot saves the raw, smoothed and contact-state traces of r with
// the accepted landings and takeoffs marked. The format follows the path's
// extension (png, svg, pdf).
func WriteSignalPlot(path string, r l6gate.Result) error {
	samples := r.Diagnostics.Samples
	if len(samples) == 0 {
		return ErrNoSamples
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Contact signal (%s, confidence %.2f)", r.Status, r.Confidence)
	p.X.Label.Text = "Time (ms)"
	p.Y.Label.Text = "Signal"
	p.Add(plotter.NewGrid())

	raw := make(plotter.XYs, len(samples))
	smoothed := make(plotter.XYs, len(samples))
	state := make(plotter.XYs, len(samples))
	for i, s := range samples {
		raw[i] = plotter.XY{X: s.TimestampMs, Y: s.Raw}
		smoothed[i] = plotter.XY{X: s.TimestampMs, Y: s.Smoothed}
		state[i] = plotter.XY{X: s.TimestampMs, Y: float64(s.State)}
	}

	for _, series := range []struct {
		name  string
		pts   plotter.XYs
		color color.Color
		width vg.Length
	}{
		{"raw", raw, rawColor, vg.Points(1)},
		{"smoothed", smoothed, smoothedColor, vg.Points(1.5)},
		{"state", state, stateColor, vg.Points(1)},
	} {
		line, err := plotter.NewLine(series.pts)
		if err != nil {
			return fmt.Errorf("%s line: %w", series.name, err)
		}
		line.Color = series.color
		line.Width = series.width
		if series.name == "state" {
			line.StepStyle = plotter.PostStep
		}
		p.Add(line)
		p.Legend.Add(series.name, line)
	}

	if r.Events != nil {
		if err := addMarkers(p, "landing", r.Events.Landings, landingColor, draw.TriangleGlyph{}); err != nil {
			return err
		}
		if err := addMarkers(p, "takeoff", r.Events.Takeoffs, takeoffColor, draw.CircleGlyph{}); err != nil {
			return err
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(12*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}

// addMarkers places one glyph per event on the state trace's upper rail.
func addMarkers(p *plot.Plot, name string, events []l5events.Event, c color.Color, shape draw.GlyphDrawer) error {
	if len(events) == 0 {
		return nil
	}
	pts := make(plotter.XYs, len(events))
	for i, e := range events {
		pts[i] = plotter.XY{X: e.RefinedMs, Y: 1}
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("%s markers: %w", name, err)
	}
	sc.GlyphStyle.Color = c
	sc.GlyphStyle.Shape = shape
	sc.GlyphStyle.Radius = vg.Points(4)
	p.Add(sc)
	p.Legend.Add(name, sc)
	return nil
}
