package l1frames

import "context"

// Source supplies frames for a requested set of timestamps. Implementations
// that cannot produce real pixel data must mark the batch as
// ProvenancePlaceholder instead of failing silently.
type Source interface {
	Frames(ctx context.Context, timestampsMs []float64) (Batch, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, timestampsMs []float64) (Batch, error)

// Frames implements Source.
func (f SourceFunc) Frames(ctx context.Context, timestampsMs []float64) (Batch, error) {
	return f(ctx, timestampsMs)
}

// EvenTimestamps returns n timestamps spaced 1000/fps milliseconds apart,
// starting at startMs.
func EvenTimestamps(n int, fps, startMs float64) []float64 {
	if n <= 0 || fps <= 0 {
		return nil
	}
	step := 1000.0 / fps
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = startMs + float64(i)*step
	}
	return ts
}
