package debug

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/contact.report/internal/contact/l4signal"
	"github.com/banshee-data/contact.report/internal/contact/l5events"
	"github.com/banshee-data/contact.report/internal/contact/l6gate"
)

// RenderSignalChart writes an HTML line chart of r's signal samples to w,
// with accepted events drawn as vertical mark lines.
func RenderSignalChart(w io.Writer, r l6gate.Result) error {
	samples := r.Diagnostics.Samples
	if len(samples) == 0 {
		return ErrNoSamples
	}

	xs := make([]string, len(samples))
	raw := make([]opts.LineData, len(samples))
	smoothed := make([]opts.LineData, len(samples))
	state := make([]opts.LineData, len(samples))
	for i, s := range samples {
		xs[i] = strconv.FormatFloat(s.TimestampMs, 'f', 0, 64)
		raw[i] = opts.LineData{Value: s.Raw}
		smoothed[i] = opts.LineData{Value: s.Smoothed}
		state[i] = opts.LineData{Value: s.State}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Contact signal", Width: "1200px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Contact signal",
			Subtitle: fmt.Sprintf("status=%s source=%s confidence=%.2f frames=%d", r.Status, r.MeasurementSource, r.Confidence, r.Diagnostics.FrameCount),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (ms)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "signal"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	var marks []opts.MarkLineNameXAxisItem
	if r.Events != nil {
		marks = append(marks, markItems("landing", r.Events.Landings, samples, xs)...)
		marks = append(marks, markItems("takeoff", r.Events.Takeoffs, samples, xs)...)
	}

	line.SetXAxis(xs).
		AddSeries("raw", raw).
		AddSeries("smoothed", smoothed, charts.WithMarkLineNameXAxisItemOpts(marks...)).
		AddSeries("state", state)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// markItems anchors each event to the category of its nearest sample.
func markItems(name string, events []l5events.Event, samples []l4signal.Sample, xs []string) []opts.MarkLineNameXAxisItem {
	items := make([]opts.MarkLineNameXAxisItem, 0, len(events))
	for _, e := range events {
		items = append(items, opts.MarkLineNameXAxisItem{
			Name:  name,
			XAxis: xs[nearestSample(samples, e.RefinedMs)],
		})
	}
	return items
}

func nearestSample(samples []l4signal.Sample, tMs float64) int {
	best := 0
	for i, s := range samples {
		if math.Abs(s.TimestampMs-tMs) < math.Abs(samples[best].TimestampMs-tMs) {
			best = i
		}
	}
	return best
}
