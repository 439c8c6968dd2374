package catalog

import (
	"context"
	"database/sql"
)

// Stats returns aggregate counters for the catalog.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&stats.Documents); err != nil {
		return nil, err
	}
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM fetch_log`).Scan(&stats.FetchLogs); err != nil {
		return nil, err
	}
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&stats.Runs); err != nil {
		return nil, err
	}
	var last sql.NullInt64
	if err := s.DB.QueryRowContext(ctx, `SELECT MAX(fetched_at) FROM fetch_log`).Scan(&last); err != nil {
		return nil, err
	}
	if last.Valid {
		stats.LastFetchAt = &last.Int64
	}
	return &stats, nil
}
