package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/contact.report/internal/contact/evaluation"
	"github.com/banshee-data/contact.report/internal/contact/l6gate"
	"github.com/banshee-data/contact.report/internal/timeutil"
)

// ResultStore caches gated results as JSON keyed by evaluation.CacheKey.
type ResultStore struct {
	db    *sql.DB
	clock timeutil.Clock
}

var _ evaluation.ResultStore = (*ResultStore)(nil)

// NewResultStore creates a result store over db. A nil clock uses wall time.
func NewResultStore(db *sql.DB, clock timeutil.Clock) *ResultStore {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &ResultStore{db: db, clock: clock}
}

// PutResult stores r under key, replacing any earlier result for the key.
func (s *ResultStore) PutResult(ctx context.Context, key, videoID string, r l6gate.Result) error {
	if key == "" {
		return errors.New("result has no cache key")
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	err = retryOnBusy(func() error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO contact_results (
				result_id, cache_key, video_id, status, confidence, result_json, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(cache_key) DO UPDATE SET
				result_id = excluded.result_id,
				video_id = excluded.video_id,
				status = excluded.status,
				confidence = excluded.confidence,
				result_json = excluded.result_json,
				created_at = excluded.created_at`,
			uuid.New().String(), key, videoID, string(r.Status), r.Confidence,
			string(payload), s.clock.Now().UnixNano(),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("put result %s: %w", key, err)
	}
	return nil
}

// GetResult returns the result cached under key, or evaluation.ErrNotFound.
func (s *ResultStore) GetResult(ctx context.Context, key string) (l6gate.Result, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT result_json FROM contact_results WHERE cache_key = ?`, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return l6gate.Result{}, evaluation.ErrNotFound
	}
	if err != nil {
		return l6gate.Result{}, fmt.Errorf("get result %s: %w", key, err)
	}
	var r l6gate.Result
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return l6gate.Result{}, fmt.Errorf("unmarshal result %s: %w", key, err)
	}
	return r, nil
}

// StoredResult summarises one cached row.
type StoredResult struct {
	ResultID   string
	CacheKey   string
	VideoID    string
	Status     l6gate.Status
	Confidence float64
	CreatedAt  time.Time
}

// ListByVideo returns the cached results for videoID, newest first.
func (s *ResultStore) ListByVideo(ctx context.Context, videoID string) ([]StoredResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT result_id, cache_key, video_id, status, confidence, created_at
		FROM contact_results
		WHERE video_id = ?
		ORDER BY created_at DESC, result_id`, videoID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var out []StoredResult
	for rows.Next() {
		var (
			sr        StoredResult
			status    string
			createdAt int64
		)
		if err := rows.Scan(&sr.ResultID, &sr.CacheKey, &sr.VideoID, &status, &sr.Confidence, &createdAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		sr.Status = l6gate.Status(status)
		sr.CreatedAt = time.Unix(0, createdAt).UTC()
		out = append(out, sr)
	}
	return out, rows.Err()
}
