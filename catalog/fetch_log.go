package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/mkraft/missiontext/dbopen"
)

const insertFetchLogSQL = `INSERT INTO fetch_log (id, url, status, status_code, content_hash,
error_message, duration_ms, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// InsertFetchLog records a fetch attempt.
func (s *Store) InsertFetchLog(ctx context.Context, entry *FetchLogEntry) error {
	if entry.FetchedAt == 0 {
		entry.FetchedAt = time.Now().UnixMilli()
	}
	_, err := dbopen.Exec(ctx, s.DB, insertFetchLogSQL,
		entry.ID, entry.URL, entry.Status, entry.StatusCode,
		entry.ContentHash, entry.ErrorMessage, entry.DurationMs, entry.FetchedAt)
	return err
}

// ListFetchLog returns fetch log entries newest first. limit <= 0
// defaults to 50.
func (s *Store) ListFetchLog(ctx context.Context, limit int) ([]*FetchLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, url, status, status_code, content_hash,
		error_message, duration_ms, fetched_at
		FROM fetch_log ORDER BY fetched_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*FetchLogEntry
	for rows.Next() {
		var e FetchLogEntry
		if err := rows.Scan(&e.ID, &e.URL, &e.Status, &e.StatusCode,
			&e.ContentHash, &e.ErrorMessage, &e.DurationMs, &e.FetchedAt); err != nil {
			return nil, fmt.Errorf("scan fetch log: %w", err)
		}
		result = append(result, &e)
	}
	return result, rows.Err()
}
