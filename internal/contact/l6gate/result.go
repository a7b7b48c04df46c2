package l6gate

import (
	"fmt"

	"github.com/banshee-data/contact.report/internal/contact/l1frames"
	"github.com/banshee-data/contact.report/internal/contact/l2ground"
	"github.com/banshee-data/contact.report/internal/contact/l3region"
	"github.com/banshee-data/contact.report/internal/contact/l4signal"
	"github.com/banshee-data/contact.report/internal/contact/l5events"
	"github.com/banshee-data/contact.report/internal/mathutil"
	"github.com/banshee-data/contact.report/internal/units"
)

// Status is the lifecycle state of a result.
type Status string

const (
	StatusPending  Status = "pending"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)

// Result is the analysis record handed to reporting layers. Consumers branch
// on null versus value, so Metrics, Events and every metric field are
// pointers.
type Result struct {
	Status            Status              `json:"status"`
	MeasurementSource l1frames.Provenance `json:"measurementSource"`
	Metrics           *Metrics            `json:"metrics"`
	Events            *Events             `json:"events"`
	Ground            l2ground.Model      `json:"ground"`
	Confidence        float64             `json:"confidence"`
	Notes             []string            `json:"notes"`
	RejectionReasons  []string            `json:"rejectionReasons"`
	Reliability       Reliability         `json:"reliability"`
	Diagnostics       Diagnostics         `json:"diagnostics"`
	Error             *Failure            `json:"error,omitempty"`
}

// Metrics are the reported measurements. Seconds fields mirror the
// millisecond fields.
type Metrics struct {
	GCTMs                *float64 `json:"gctMs"`
	GCTSeconds           *float64 `json:"gctSeconds"`
	GCTP95Ms             *float64 `json:"gctP95Ms"`
	FlightMs             *float64 `json:"flightMs"`
	FlightSeconds        *float64 `json:"flightSeconds"`
	FlightP95Ms          *float64 `json:"flightP95Ms"`
	HopCount             *int     `json:"hopCount"`
	ContactPatchAngleDeg *float64 `json:"contactPatchAngleDeg"`
}

// Events are the accepted landings, takeoffs and hops.
type Events struct {
	Landings []l5events.Event `json:"landings"`
	Takeoffs []l5events.Event `json:"takeoffs"`
	Hops     []l5events.Hop   `json:"hops"`
}

// Reliability flags summarise which stages produced usable evidence. They
// survive a hard fail so that a consumer can explain it.
type Reliability struct {
	ViewOK          bool `json:"viewOk"`
	RegionTracked   bool `json:"regionTracked"`
	ContactDetected bool `json:"contactDetected"`
}

// StageConfidences holds one confidence per pipeline stage.
type StageConfidences struct {
	Ground float64 `json:"ground"`
	Region float64 `json:"region"`
	Signal float64 `json:"signal"`
	Events float64 `json:"events"`
}

// Overall is the weighted stage combination used by the gate.
func (s StageConfidences) Overall() float64 {
	return mathutil.Clamp01(0.2*s.Ground + 0.2*s.Region + 0.3*s.Signal + 0.3*s.Events)
}

// MetricConfidences holds the confidence behind each reported metric.
type MetricConfidences struct {
	GCT               float64 `json:"gct"`
	Flight            float64 `json:"flight"`
	Events            float64 `json:"events"`
	ContactPatchAngle float64 `json:"contactPatchAngle"`
}

// Diagnostics carry enough of the intermediate state to draw a debug
// overlay without re-running the pipeline.
type Diagnostics struct {
	FrameCount        int                  `json:"frameCount"`
	Samples           []l4signal.Sample    `json:"samples"`
	Region            *l3region.Region     `json:"region"`
	StageConfidences  StageConfidences     `json:"stageConfidences"`
	MetricConfidences MetricConfidences    `json:"metricConfidences"`
	RegionReasons     []string             `json:"regionReasons"`
	SignalReasons     []string             `json:"signalReasons"`
	EventRejections   []l5events.Rejection `json:"eventRejections"`
	ChatterCount      int                  `json:"chatterCount"`
}

// Failure is the single generic error object a result may carry.
type Failure struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Stages bundles the stage outputs of one analysis.
type Stages struct {
	Provenance l1frames.Provenance
	FrameCount int
	Ground     l2ground.Detection
	Region     l3region.Location
	Signal     l4signal.Signal
	Events     l5events.Extraction
}

// Assemble builds the ungated draft result from the stage outputs.
func Assemble(s Stages) Result {
	r := Result{
		Status:            StatusComplete,
		MeasurementSource: s.Provenance,
		Ground:            s.Ground.Model,
		Notes:             []string{},
		RejectionReasons:  []string{},
		Reliability: Reliability{
			ViewOK:          s.Ground.Detected,
			RegionTracked:   s.Region.Found,
			ContactDetected: s.Signal.Detected,
		},
	}

	d := &r.Diagnostics
	d.FrameCount = s.FrameCount
	d.Samples = append([]l4signal.Sample{}, s.Signal.Samples...)
	if s.Region.Candidates > 0 {
		region := s.Region.Region
		d.Region = &region
	}
	d.StageConfidences = StageConfidences{
		Ground: s.Ground.Model.Confidence,
		Region: detectedConfidence(s.Region.Found, s.Region.Region.Confidence),
		Signal: detectedConfidence(s.Signal.Detected, s.Signal.Confidence),
		Events: s.Events.Confidence,
	}
	d.RegionReasons = append([]string{}, s.Region.Reasons...)
	d.SignalReasons = append([]string{}, s.Signal.Reasons...)
	d.EventRejections = append([]l5events.Rejection{}, s.Events.Diagnostics.Rejections...)
	d.ChatterCount = s.Signal.Diagnostics.Chatter
	r.Confidence = d.StageConfidences.Overall()

	ex := s.Events
	r.Events = &Events{
		Landings: append([]l5events.Event{}, ex.Landings...),
		Takeoffs: append([]l5events.Event{}, ex.Takeoffs...),
		Hops:     append([]l5events.Hop{}, ex.Hops...),
	}

	m := &Metrics{}
	if ex.Summary.HopCount > 0 {
		m.HopCount = intPtr(ex.Summary.HopCount)
		m.GCTMs = copyPtr(ex.Summary.GCTMedianMs)
		m.GCTSeconds = seconds(ex.Summary.GCTMedianMs)
		m.GCTP95Ms = copyPtr(ex.Summary.GCTP95Ms)
		m.FlightMs = copyPtr(ex.Summary.FlightMedianMs)
		m.FlightSeconds = seconds(ex.Summary.FlightMedianMs)
		m.FlightP95Ms = copyPtr(ex.Summary.FlightP95Ms)
	}
	if s.Ground.Model.Known() {
		m.ContactPatchAngleDeg = floatPtr(s.Ground.Model.AngleDeg())
	}
	r.Metrics = m

	d.MetricConfidences = MetricConfidences{
		GCT:               gctConfidence(ex),
		Flight:            flightConfidence(ex),
		Events:            ex.Confidence,
		ContactPatchAngle: s.Ground.Model.Confidence,
	}

	if n := ex.Diagnostics.NonAdjacentFlights; n > 0 {
		r.Notes = append(r.Notes, fmt.Sprintf("%d flight time(s) end on a landing outside the next reported hop", n))
	}
	if n := ex.Diagnostics.UnpairedLandings; n > 0 {
		r.Notes = append(r.Notes, fmt.Sprintf("%d landing(s) had no matching takeoff", n))
	}
	return r
}

// Errored returns the result for an analysis that could not run. It is
// already in gated form.
func Errored(source l1frames.Provenance, frameCount int, reasons []string, failure *Failure) Result {
	r := Result{
		Status:            StatusError,
		MeasurementSource: source,
		Ground:            l2ground.Unknown(),
		Notes:             []string{},
		RejectionReasons:  dedupe(reasons),
		Error:             failure,
	}
	r.Diagnostics = Diagnostics{
		FrameCount:      frameCount,
		Samples:         []l4signal.Sample{},
		RegionReasons:   []string{},
		SignalReasons:   []string{},
		EventRejections: []l5events.Rejection{},
	}
	if failure != nil {
		r.Notes = append(r.Notes, failure.Message)
	}
	return r
}

func detectedConfidence(detected bool, c float64) float64 {
	if !detected {
		return 0
	}
	return c
}

// gctConfidence blends the stage confidence with the weaker refinement
// confidence of each hop's two events.
func gctConfidence(ex l5events.Extraction) float64 {
	if len(ex.Hops) == 0 {
		return 0
	}
	var sum float64
	for _, h := range ex.Hops {
		sum += min(eventConfidence(ex.Landings, h.LandingMs), eventConfidence(ex.Takeoffs, h.TakeoffMs))
	}
	return mathutil.Clamp01(0.5*ex.Confidence + 0.5*sum/float64(len(ex.Hops)))
}

// flightConfidence pairs each takeoff with the landing that closes it.
func flightConfidence(ex l5events.Extraction) float64 {
	var sum float64
	var n int
	for _, h := range ex.Hops {
		if h.FlightMs == nil {
			continue
		}
		closing := 0.0
		for _, l := range ex.Landings {
			if l.RefinedMs > h.TakeoffMs {
				closing = l.Confidence
				break
			}
		}
		sum += min(eventConfidence(ex.Takeoffs, h.TakeoffMs), closing)
		n++
	}
	if n == 0 {
		return 0
	}
	return mathutil.Clamp01(0.5*ex.Confidence + 0.5*sum/float64(n))
}

func eventConfidence(events []l5events.Event, ms float64) float64 {
	for _, e := range events {
		if e.RefinedMs == ms {
			return e.Confidence
		}
	}
	return 0
}

func seconds(ms *float64) *float64 {
	if ms == nil {
		return nil
	}
	return floatPtr(units.Seconds(*ms))
}

func copyPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return floatPtr(*v)
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
