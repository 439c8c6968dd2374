package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mkraft/missiontext/dbopen"
)

const upsertDocumentSQL = `INSERT INTO documents (id, mission, url, rel_path, title, content_hash, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(url) DO UPDATE SET
    mission=excluded.mission,
    rel_path=excluded.rel_path,
    title=excluded.title,
    content_hash=excluded.content_hash,
    fetched_at=excluded.fetched_at`

// UpsertDocument inserts a document or, when the URL is already known,
// updates the existing row in place. The existing row keeps its id.
func (s *Store) UpsertDocument(ctx context.Context, doc *Document) error {
	if doc.FetchedAt == 0 {
		doc.FetchedAt = time.Now().UnixMilli()
	}
	_, err := dbopen.Exec(ctx, s.DB, upsertDocumentSQL,
		doc.ID, doc.Mission, doc.URL, doc.RelPath, doc.Title, doc.ContentHash, doc.FetchedAt)
	return err
}

// GetDocument retrieves a document by ID, or nil when absent.
func (s *Store) GetDocument(ctx context.Context, id string) (*Document, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, mission, url, rel_path, title, content_hash, fetched_at
		FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

// GetDocumentByURL retrieves a document by URL, or nil when absent.
func (s *Store) GetDocumentByURL(ctx context.Context, url string) (*Document, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, mission, url, rel_path, title, content_hash, fetched_at
		FROM documents WHERE url = ? LIMIT 1`, url)
	return scanDocument(row)
}

// ListDocuments returns documents newest first. An empty mission lists
// all missions. limit <= 0 defaults to 50.
func (s *Store) ListDocuments(ctx context.Context, mission string, limit int) ([]*Document, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, mission, url, rel_path, title, content_hash, fetched_at
		FROM documents`
	args := []any{}
	if mission != "" {
		query += ` WHERE mission = ?`
		args = append(args, mission)
	}
	query += ` ORDER BY fetched_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Mission, &d.URL, &d.RelPath,
			&d.Title, &d.ContentHash, &d.FetchedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}

// RecordFetch stores a document and its fetch log entry in one transaction.
func (s *Store) RecordFetch(ctx context.Context, doc *Document, entry *FetchLogEntry) error {
	now := time.Now().UnixMilli()
	if doc.FetchedAt == 0 {
		doc.FetchedAt = now
	}
	if entry.FetchedAt == 0 {
		entry.FetchedAt = now
	}
	return dbopen.RunTx(ctx, s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, upsertDocumentSQL,
			doc.ID, doc.Mission, doc.URL, doc.RelPath, doc.Title, doc.ContentHash, doc.FetchedAt); err != nil {
			return fmt.Errorf("upsert document: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertFetchLogSQL,
			entry.ID, entry.URL, entry.Status, entry.StatusCode,
			entry.ContentHash, entry.ErrorMessage, entry.DurationMs, entry.FetchedAt); err != nil {
			return fmt.Errorf("insert fetch log: %w", err)
		}
		return nil
	})
}

func scanDocument(row *sql.Row) (*Document, error) {
	var d Document
	err := row.Scan(&d.ID, &d.Mission, &d.URL, &d.RelPath,
		&d.Title, &d.ContentHash, &d.FetchedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return &d, nil
}
