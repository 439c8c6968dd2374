package scrape

import (
	"encoding/json"
	"fmt"
	"os"
)

const manifestName = "scrape_manifest.json"

// Entry records one saved transcript page.
type Entry struct {
	MainURL       string `json:"main_url"`
	TranscriptURL string `json:"transcript_url"`
	OutputFile    string `json:"output_file"`
}

// Stats counts what a scrape run did.
type Stats struct {
	Mains     int `json:"mains"`
	Links     int `json:"links"`
	Saved     int `json:"saved"`
	Unchanged int `json:"unchanged"`
	Empty     int `json:"empty"`
	Errors    int `json:"errors"`
}

// Manifest accumulates the saved pages and counters of one run.
type Manifest struct {
	Entries []Entry
	Stats   Stats
}

// Write stores the manifest entries as pretty-printed JSON.
func (m *Manifest) Write(path string) error {
	entries := m.Entries
	if entries == nil {
		entries = []Entry{}
	}
	blob, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("scrape: marshal manifest: %w", err)
	}
	return writeFileAtomic(path, append(blob, '\n'))
}

// writeFileAtomic writes via a .tmp rename so consumers never observe
// partial files.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
