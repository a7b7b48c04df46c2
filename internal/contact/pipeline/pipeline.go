// Package pipeline runs the contact stages in order and owns the fault
// boundary: nothing below Analyze may surface a panic to the caller.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/banshee-data/contact.report/internal/contact/l1frames"
	"github.com/banshee-data/contact.report/internal/contact/l2ground"
	"github.com/banshee-data/contact.report/internal/contact/l3region"
	"github.com/banshee-data/contact.report/internal/contact/l4signal"
	"github.com/banshee-data/contact.report/internal/contact/l5events"
	"github.com/banshee-data/contact.report/internal/contact/l6gate"
	"github.com/banshee-data/contact.report/internal/monitoring"
)

// Rejection reasons raised by the pipeline itself.
const (
	ReasonEmptyInput    = "EMPTY_INPUT"
	ReasonInvalidInput  = "INVALID_INPUT"
	ReasonInvalidConfig = "INVALID_CONFIG"

	// ReasonNoHops marks an event stage that ran cleanly but accepted nothing.
	ReasonNoHops = "NO_HOPS"
)

// Stages holds every stage outcome of one run.
type Stages struct {
	Ground Outcome[l2ground.Detection]
	Region Outcome[l3region.Location]
	Signal Outcome[l4signal.Signal]
	Events Outcome[l5events.Extraction]
}

// Analyze runs the whole pipeline on one batch and returns the gated
// result. Input errors, detection failures and internal faults all come
// back as a result; Analyze never panics.
func Analyze(batch l1frames.Batch, cfg Config) (res l6gate.Result) {
	source := batch.Provenance
	if source == "" {
		source = l1frames.ProvenanceReal
	}
	defer func() {
		if p := recover(); p != nil {
			monitoring.Opsf("pipeline: recovered from panic: %v", p)
			res = faultResult(source, len(batch.Frames), fmt.Sprint(p), cfg.Gate)
		}
	}()

	if err := cfg.Validate(); err != nil {
		r := l6gate.Errored(source, len(batch.Frames), []string{ReasonInvalidConfig},
			&l6gate.Failure{Code: ReasonInvalidConfig, Message: err.Error()})
		return l6gate.Gate(r, l6gate.DefaultConfig())
	}
	if err := batch.Validate(); err != nil {
		reason := ReasonInvalidInput
		if errors.Is(err, l1frames.ErrEmptyBatch) {
			reason = ReasonEmptyInput
		}
		monitoring.Diagf("pipeline: rejecting batch: %v", err)
		r := l6gate.Errored(source, len(batch.Frames), []string{reason}, nil)
		r.Notes = append(r.Notes, err.Error())
		return l6gate.Gate(r, cfg.Gate)
	}

	st := Run(batch.Frames, cfg)
	for _, o := range []struct {
		fault   bool
		message string
	}{
		{st.Ground.IsFault(), st.Ground.Message},
		{st.Region.IsFault(), st.Region.Message},
		{st.Signal.IsFault(), st.Signal.Message},
		{st.Events.IsFault(), st.Events.Message},
	} {
		if o.fault {
			return faultResult(source, len(batch.Frames), o.message, cfg.Gate)
		}
	}

	draft := l6gate.Assemble(l6gate.Stages{
		Provenance: source,
		FrameCount: len(batch.Frames),
		Ground:     st.Ground.Value,
		Region:     st.Region.Value,
		Signal:     st.Signal.Value,
		Events:     st.Events.Value,
	})
	res = l6gate.Gate(draft, cfg.Gate)
	monitoring.Diagf("pipeline: %d frames -> status=%s confidence=%.3f reasons=%v",
		len(batch.Frames), res.Status, res.Confidence, res.RejectionReasons)
	return res
}

// Run executes the four detection stages on validated frames. A rejected
// stage hands its downstream neighbour an empty input, so rejection
// propagates forward without skipping any stage's diagnostics. Run stops at
// the first fault.
func Run(frames []l1frames.Frame, cfg Config) Stages {
	var st Stages

	st.Ground = guard("ground",
		func() l2ground.Detection { return l2ground.Detect(frames, cfg.Ground) },
		func(d l2ground.Detection) (bool, string) {
			return d.Detected, firstReason(d.Reasons, l2ground.ReasonLowConfidence)
		})
	if st.Ground.IsFault() {
		return st
	}

	ground := l2ground.Unknown()
	if st.Ground.IsOK() {
		ground = st.Ground.Value.Model
	}
	st.Region = guard("region",
		func() l3region.Location { return l3region.Locate(frames, ground, cfg.Region) },
		func(l l3region.Location) (bool, string) {
			return l.Found, firstReason(l.Reasons, l3region.ReasonLowConfidence)
		})
	if st.Region.IsFault() {
		return st
	}

	var region l3region.Region
	if st.Region.IsOK() {
		region = st.Region.Value.Region
	}
	st.Signal = guard("signal",
		func() l4signal.Signal { return l4signal.Compute(frames, region, cfg.Signal) },
		func(s l4signal.Signal) (bool, string) {
			return s.Detected, firstReason(s.Reasons, l4signal.ReasonFlatSignal)
		})
	if st.Signal.IsFault() {
		return st
	}

	sig := st.Signal.Value
	var smoothed []float64
	if st.Signal.IsOK() {
		smoothed = sig.Smoothed()
	}
	st.Events = guard("events",
		func() l5events.Extraction {
			return l5events.Extract(sig.States(), sig.Timestamps(), smoothed, cfg.Events)
		},
		func(e l5events.Extraction) (bool, string) {
			if len(e.Reasons) > 0 {
				return false, e.Reasons[0]
			}
			return len(e.Hops) > 0, ReasonNoHops
		})
	return st
}

// AnalyzeSource acquires frames for timestampsMs from src and analyses them.
// The error is non-nil only when acquisition itself fails; a source panic
// becomes an INTERNAL_FAULT result.
func AnalyzeSource(ctx context.Context, src l1frames.Source, timestampsMs []float64, cfg Config) (l6gate.Result, error) {
	if err := ctx.Err(); err != nil {
		return l6gate.Result{}, err
	}
	var acqErr error
	acq := guard("acquire",
		func() l1frames.Batch {
			b, err := src.Frames(ctx, timestampsMs)
			acqErr = err
			return b
		},
		func(l1frames.Batch) (bool, string) { return acqErr == nil, "" })
	if acq.IsFault() {
		return faultResult(l1frames.ProvenanceReal, 0, acq.Message, cfg.Gate), nil
	}
	if acqErr != nil {
		return l6gate.Result{}, fmt.Errorf("acquire frames: %w", acqErr)
	}
	return Analyze(acq.Value, cfg), nil
}

func faultResult(source l1frames.Provenance, frames int, message string, gate l6gate.Config) l6gate.Result {
	r := l6gate.Errored(source, frames, []string{CodeInternalFault},
		&l6gate.Failure{Code: CodeInternalFault, Message: message})
	return l6gate.Gate(r, gate)
}
