package l1frames

import (
	"context"
	"errors"
	"testing"
)

func TestBatchValidate(t *testing.T) {
	ok := func(ts float64) Frame { return NewUniformFrame(4, 3, 10, ts) }

	tests := []struct {
		name    string
		batch   Batch
		wantErr error
	}{
		{"empty", Batch{}, ErrEmptyBatch},
		{"valid", Batch{Frames: []Frame{ok(0), ok(33)}}, nil},
		{"short buffer", Batch{Frames: []Frame{{Pix: make([]uint8, 5), Width: 4, Height: 3}}}, ErrInvalidFrame},
		{"zero size", Batch{Frames: []Frame{{}}}, ErrInvalidFrame},
		{"geometry", Batch{Frames: []Frame{ok(0), NewUniformFrame(5, 3, 0, 10)}}, ErrGeometryMismatch},
		{"repeated stamp", Batch{Frames: []Frame{ok(0), ok(0)}}, ErrNonIncreasingStamps},
		{"backwards stamp", Batch{Frames: []Frame{ok(10), ok(5)}}, ErrNonIncreasingStamps},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.batch.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFrameAt(t *testing.T) {
	f := Frame{Pix: []uint8{1, 2, 3, 4, 5, 6}, Width: 3, Height: 2}
	if got := f.At(2, 1); got != 6 {
		t.Errorf("At(2,1) = %d, want 6", got)
	}
	if got := f.At(0, 1); got != 4 {
		t.Errorf("At(0,1) = %d, want 4", got)
	}
}

func TestEvenTimestamps(t *testing.T) {
	ts := EvenTimestamps(4, 50, 100)
	want := []float64{100, 120, 140, 160}
	if len(ts) != len(want) {
		t.Fatalf("len = %d, want %d", len(ts), len(want))
	}
	for i := range want {
		if ts[i] != want[i] {
			t.Errorf("ts[%d] = %v, want %v", i, ts[i], want[i])
		}
	}
	if EvenTimestamps(0, 30, 0) != nil || EvenTimestamps(3, 0, 0) != nil {
		t.Error("expected nil for non-positive count or rate")
	}
}

func TestSourceFunc(t *testing.T) {
	src := SourceFunc(func(_ context.Context, ts []float64) (Batch, error) {
		b := Batch{Provenance: ProvenanceSynthetic}
		for _, s := range ts {
			b.Frames = append(b.Frames, NewUniformFrame(2, 2, 0, s))
		}
		return b, nil
	})
	b, err := src.Frames(context.Background(), []float64{0, 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Frames) != 2 || b.Provenance != ProvenanceSynthetic {
		t.Errorf("unexpected batch %+v", b)
	}
	if got := b.Timestamps(); got[1] != 10 {
		t.Errorf("Timestamps()[1] = %v, want 10", got[1])
	}
}
