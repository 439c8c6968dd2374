package catalog

// Document is one fetched transcript page.
type Document struct {
	ID          string `json:"id"`
	Mission     string `json:"mission"`
	URL         string `json:"url"`
	RelPath     string `json:"rel_path"`
	Title       string `json:"title"`
	ContentHash string `json:"content_hash"`
	FetchedAt   int64  `json:"fetched_at"`
}

// FetchLogEntry is one fetch attempt record.
// Status is one of "ok", "unchanged", "empty", "error".
type FetchLogEntry struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	Status       string `json:"status"`
	StatusCode   int    `json:"status_code"`
	ContentHash  string `json:"content_hash"`
	ErrorMessage string `json:"error_message"`
	DurationMs   int64  `json:"duration_ms"`
	FetchedAt    int64  `json:"fetched_at"`
}

// Run records one execution of a pipeline stage. StatsJSON holds the
// stage's own counters as an opaque JSON object.
type Run struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	StartedAt  int64  `json:"started_at"`
	FinishedAt *int64 `json:"finished_at,omitempty"`
	StatsJSON  string `json:"stats_json"`
}

// Stats holds aggregate catalog counters.
type Stats struct {
	Documents   int    `json:"documents"`
	FetchLogs   int    `json:"fetch_logs"`
	Runs        int    `json:"runs"`
	LastFetchAt *int64 `json:"last_fetch_at,omitempty"`
}
