package evaluation

import (
	"context"
	"errors"
	"sync"

	"github.com/banshee-data/contact.report/internal/contact/l6gate"
)

// ErrNotFound is returned by stores for an unknown key.
var ErrNotFound = errors.New("record not found")

// LabelStore persists hand-marked labels keyed by video ID.
type LabelStore interface {
	PutLabels(ctx context.Context, labels Labels) error
	GetLabels(ctx context.Context, videoID string) (Labels, error)
}

// ResultStore caches gated results keyed by CacheKey.
type ResultStore interface {
	PutResult(ctx context.Context, key, videoID string, r l6gate.Result) error
	GetResult(ctx context.Context, key string) (l6gate.Result, error)
}

// MemoryLabelStore is an in-process LabelStore.
type MemoryLabelStore struct {
	mu     sync.RWMutex
	labels map[string]Labels
}

// NewMemoryLabelStore returns an empty store.
func NewMemoryLabelStore() *MemoryLabelStore {
	return &MemoryLabelStore{labels: make(map[string]Labels)}
}

// PutLabels replaces the labels stored for labels.VideoID.
func (s *MemoryLabelStore) PutLabels(ctx context.Context, labels Labels) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if labels.VideoID == "" {
		return errors.New("labels have no video ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels[labels.VideoID] = copyLabels(labels)
	return nil
}

// GetLabels returns a copy of the stored labels.
func (s *MemoryLabelStore) GetLabels(ctx context.Context, videoID string) (Labels, error) {
	if err := ctx.Err(); err != nil {
		return Labels{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.labels[videoID]
	if !ok {
		return Labels{}, ErrNotFound
	}
	return copyLabels(l), nil
}

func copyLabels(l Labels) Labels {
	l.LandingsMs = append([]float64{}, l.LandingsMs...)
	l.TakeoffsMs = append([]float64{}, l.TakeoffsMs...)
	return l
}

// MemoryResultStore is an in-process ResultStore. Results are stored by
// value; nested slices are shared with the caller, who must not mutate them.
type MemoryResultStore struct {
	mu      sync.RWMutex
	results map[string]l6gate.Result
}

// NewMemoryResultStore returns an empty store.
func NewMemoryResultStore() *MemoryResultStore {
	return &MemoryResultStore{results: make(map[string]l6gate.Result)}
}

// PutResult stores r under key.
func (s *MemoryResultStore) PutResult(ctx context.Context, key, videoID string, r l6gate.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[key] = r
	return nil
}

// GetResult returns the result stored under key.
func (s *MemoryResultStore) GetResult(ctx context.Context, key string) (l6gate.Result, error) {
	if err := ctx.Err(); err != nil {
		return l6gate.Result{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[key]
	if !ok {
		return l6gate.Result{}, ErrNotFound
	}
	return r, nil
}
