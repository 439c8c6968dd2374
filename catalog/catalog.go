// Package catalog provides the data access layer for the corpus builder:
// fetched documents, the fetch log, and per-stage run records.
//
// The catalog is a single SQLite file opened through dbopen. Writes go
// through the BUSY-aware retry helpers so concurrent stages sharing the
// file do not trip over WAL locks.
package catalog

import "database/sql"

// Store wraps the catalog database.
type Store struct {
	DB *sql.DB
}

// NewStore creates a Store from an already-opened database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}
