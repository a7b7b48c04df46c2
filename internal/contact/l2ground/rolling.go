package l2ground

import (
	"github.com/banshee-data/contact.report/internal/contact/l1frames"
)

const (
	// RollingCapacity is the number of past frames a RollingState remembers.
	RollingCapacity = 8
	// MaxTopK bounds Config.TopK so a frame's candidates fit in a ring slot.
	MaxTopK = 16
)

type ringSlot struct {
	n     int
	cands [MaxTopK]Candidate
}

// RollingState is the caller-owned history for streaming ground detection.
// It is a plain value: Update never mutates its argument, so a caller can
// keep, copy, or discard states freely.
type RollingState struct {
	slots  [RollingCapacity]ringSlot
	head   int
	count  int
	width  int
	height int
}

// Len returns the number of frames currently remembered.
func (s RollingState) Len() int { return s.count }

// push returns a copy of s with one more frame, evicting the oldest when full.
func (s RollingState) push(c []Candidate) RollingState {
	var slot ringSlot
	slot.n = copy(slot.cands[:], c)
	s.slots[s.head] = slot
	s.head = (s.head + 1) % RollingCapacity
	if s.count < RollingCapacity {
		s.count++
	}
	return s
}

// ordered returns the remembered candidate sets, oldest first.
func (s RollingState) ordered() [][]Candidate {
	out := make([][]Candidate, 0, s.count)
	start := (s.head - s.count + RollingCapacity) % RollingCapacity
	for i := 0; i < s.count; i++ {
		slot := s.slots[(start+i)%RollingCapacity]
		out = append(out, append([]Candidate(nil), slot.cands[:slot.n]...))
	}
	return out
}

// Update folds one frame into the history and returns the new state with the
// ground model over the remembered window. A frame whose geometry differs
// from the history restarts it.
func Update(state RollingState, frame l1frames.Frame, cfg Config) (RollingState, Model) {
	if !frame.Valid() {
		return state, Unknown()
	}
	if state.count > 0 && (frame.Width != state.width || frame.Height != state.height) {
		state = RollingState{}
	}
	state.width, state.height = frame.Width, frame.Height

	var cands []Candidate
	if edges := Edges(frame, cfg); len(edges) > 0 {
		cands = FrameCandidates(edges, frame.Width, frame.Height, cfg)
	}
	state = state.push(cands)

	perFrame := state.ordered()
	det := Detection{Model: Unknown(), FrameCount: len(perFrame)}
	for _, c := range perFrame {
		if len(c) > 0 {
			det.EdgeFrames++
		}
	}
	if det.EdgeFrames == 0 {
		return state, det.Model
	}
	return state, finish(det, perFrame, frame.Width, frame.Height, cfg).Model
}
