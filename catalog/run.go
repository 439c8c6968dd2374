package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mkraft/missiontext/dbopen"
	"github.com/mkraft/missiontext/idgen"
)

var newRunID = idgen.Prefixed("run_", idgen.UUIDv7())

// StartRun inserts a run record for a pipeline stage and returns it.
func (s *Store) StartRun(ctx context.Context, kind string) (*Run, error) {
	run := &Run{
		ID:        newRunID(),
		Kind:      kind,
		StartedAt: time.Now().UnixMilli(),
		StatsJSON: "{}",
	}
	_, err := dbopen.Exec(ctx, s.DB,
		`INSERT INTO runs (id, kind, started_at, stats_json) VALUES (?, ?, ?, ?)`,
		run.ID, run.Kind, run.StartedAt, run.StatsJSON)
	if err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}
	return run, nil
}

// FinishRun marks a run finished and stores the stage's counters as JSON.
func (s *Store) FinishRun(ctx context.Context, id string, stats any) error {
	blob := []byte("{}")
	if stats != nil {
		var err error
		blob, err = json.Marshal(stats)
		if err != nil {
			return fmt.Errorf("marshal run stats: %w", err)
		}
	}
	now := time.Now().UnixMilli()
	_, err := dbopen.Exec(ctx, s.DB,
		`UPDATE runs SET finished_at=?, stats_json=? WHERE id=?`,
		now, string(blob), id)
	return err
}

// GetRun retrieves a run by ID, or nil when absent.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, kind, started_at, finished_at, stats_json FROM runs WHERE id = ?`, id)
	var r Run
	var finished sql.NullInt64
	err := row.Scan(&r.ID, &r.Kind, &r.StartedAt, &finished, &r.StatsJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	if finished.Valid {
		r.FinishedAt = &finished.Int64
	}
	return &r, nil
}

// ListRuns returns runs newest first. limit <= 0 defaults to 50.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, kind, started_at, finished_at, stats_json
		FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Run
	for rows.Next() {
		var r Run
		var finished sql.NullInt64
		if err := rows.Scan(&r.ID, &r.Kind, &r.StartedAt, &finished, &r.StatsJSON); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if finished.Valid {
			r.FinishedAt = &finished.Int64
		}
		result = append(result, &r)
	}
	return result, rows.Err()
}
