package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/contact.report/internal/contact/evaluation"
	"github.com/banshee-data/contact.report/internal/timeutil"
)

// LabelStore persists hand-marked labels, one row per video.
type LabelStore struct {
	db    *sql.DB
	clock timeutil.Clock
}

var _ evaluation.LabelStore = (*LabelStore)(nil)

// NewLabelStore creates a label store over db. A nil clock uses wall time.
func NewLabelStore(db *sql.DB, clock timeutil.Clock) *LabelStore {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &LabelStore{db: db, clock: clock}
}

// PutLabels inserts or replaces the labels for labels.VideoID. The row ID
// and creation time of an existing row are kept.
func (s *LabelStore) PutLabels(ctx context.Context, labels evaluation.Labels) error {
	if labels.VideoID == "" {
		return errors.New("labels have no video ID")
	}
	landings, err := json.Marshal(nonNil(labels.LandingsMs))
	if err != nil {
		return fmt.Errorf("marshal landings: %w", err)
	}
	takeoffs, err := json.Marshal(nonNil(labels.TakeoffsMs))
	if err != nil {
		return fmt.Errorf("marshal takeoffs: %w", err)
	}
	now := s.clock.Now().UnixNano()
	err = retryOnBusy(func() error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO contact_labels (
				label_id, video_id, source, landings_json, takeoffs_json, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(video_id) DO UPDATE SET
				source = excluded.source,
				landings_json = excluded.landings_json,
				takeoffs_json = excluded.takeoffs_json,
				updated_at = excluded.updated_at`,
			uuid.New().String(), labels.VideoID, labels.Source,
			string(landings), string(takeoffs), now, now,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("put labels %s: %w", labels.VideoID, err)
	}
	return nil
}

// GetLabels returns the labels for videoID, or evaluation.ErrNotFound.
func (s *LabelStore) GetLabels(ctx context.Context, videoID string) (evaluation.Labels, error) {
	var source, landings, takeoffs string
	err := s.db.QueryRowContext(ctx, `
		SELECT source, landings_json, takeoffs_json
		FROM contact_labels WHERE video_id = ?`, videoID,
	).Scan(&source, &landings, &takeoffs)
	if errors.Is(err, sql.ErrNoRows) {
		return evaluation.Labels{}, evaluation.ErrNotFound
	}
	if err != nil {
		return evaluation.Labels{}, fmt.Errorf("get labels %s: %w", videoID, err)
	}
	out := evaluation.Labels{VideoID: videoID, Source: source}
	if err := json.Unmarshal([]byte(landings), &out.LandingsMs); err != nil {
		return evaluation.Labels{}, fmt.Errorf("unmarshal landings: %w", err)
	}
	if err := json.Unmarshal([]byte(takeoffs), &out.TakeoffsMs); err != nil {
		return evaluation.Labels{}, fmt.Errorf("unmarshal takeoffs: %w", err)
	}
	return out, nil
}

func nonNil(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	return v
}
