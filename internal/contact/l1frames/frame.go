package l1frames

import (
	"errors"
	"fmt"
)

// Frame is an immutable grayscale intensity buffer. Pix is row-major with
// len(Pix) == Width*Height. Frames are owned by the caller and only read by
// the pipeline.
type Frame struct {
	Pix         []uint8
	Width       int
	Height      int
	TimestampMs float64
}

// At returns the intensity at (x, y). Coordinates must be in bounds.
func (f Frame) At(x, y int) uint8 {
	return f.Pix[y*f.Width+x]
}

// Valid reports whether the buffer matches the declared geometry.
func (f Frame) Valid() bool {
	return f.Width > 0 && f.Height > 0 && len(f.Pix) == f.Width*f.Height
}

// Provenance records where the pixels of a batch came from. The pipeline
// propagates it into the result so that placeholder data is never mistaken
// for a real measurement.
type Provenance string

const (
	ProvenanceReal        Provenance = "real"
	ProvenanceSynthetic   Provenance = "synthetic"
	ProvenancePlaceholder Provenance = "placeholder"
)

// Batch is one analysis input: an ordered set of frames plus provenance.
type Batch struct {
	Frames     []Frame
	Provenance Provenance
}

// Timestamps returns the frame timestamps in order.
func (b Batch) Timestamps() []float64 {
	ts := make([]float64, len(b.Frames))
	for i, f := range b.Frames {
		ts[i] = f.TimestampMs
	}
	return ts
}

// Validation errors. They describe input errors; callers turn them into an
// empty, zero-confidence result rather than failing.
var (
	ErrEmptyBatch          = errors.New("frame batch is empty")
	ErrInvalidFrame        = errors.New("frame buffer does not match its geometry")
	ErrGeometryMismatch    = errors.New("frames in batch have different dimensions")
	ErrNonIncreasingStamps = errors.New("frame timestamps are not strictly increasing")
)

// Validate checks that the batch is non-empty, every frame is well formed,
// all frames share one geometry, and timestamps are strictly increasing.
func (b Batch) Validate() error {
	if len(b.Frames) == 0 {
		return ErrEmptyBatch
	}
	w, h := b.Frames[0].Width, b.Frames[0].Height
	for i, f := range b.Frames {
		if !f.Valid() {
			return fmt.Errorf("frame %d: %w", i, ErrInvalidFrame)
		}
		if f.Width != w || f.Height != h {
			return fmt.Errorf("frame %d is %dx%d, expected %dx%d: %w", i, f.Width, f.Height, w, h, ErrGeometryMismatch)
		}
		if i > 0 && !(f.TimestampMs > b.Frames[i-1].TimestampMs) {
			return fmt.Errorf("frame %d at %.3fms follows %.3fms: %w", i, f.TimestampMs, b.Frames[i-1].TimestampMs, ErrNonIncreasingStamps)
		}
	}
	return nil
}

// NewUniformFrame returns a frame filled with a single intensity.
func NewUniformFrame(width, height int, value uint8, tsMs float64) Frame {
	pix := make([]uint8, width*height)
	for i := range pix {
		pix[i] = value
	}
	return Frame{Pix: pix, Width: width, Height: height, TimestampMs: tsMs}
}
