package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "missiontext.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// WHAT: the zero-file defaults point at the conventional data tree.
func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if want := filepath.Join("data", "catalog.db"); cfg.Catalog.Path != want {
		t.Errorf("Catalog.Path = %q, want %q", cfg.Catalog.Path, want)
	}
	if want := filepath.Join("data", "journals"); cfg.Scrape.OutputDir != want {
		t.Errorf("Scrape.OutputDir = %q, want %q", cfg.Scrape.OutputDir, want)
	}
	if cfg.Scrape.Timeout() != 20*time.Second {
		t.Errorf("Timeout = %v, want 20s", cfg.Scrape.Timeout())
	}
	if cfg.Scrape.Delay() != 200*time.Millisecond {
		t.Errorf("Delay = %v, want 200ms", cfg.Scrape.Delay())
	}
	if cfg.Clean.Grammar != "mission" || cfg.Clean.PathFilter != "transcripts" {
		t.Errorf("Clean = %+v, want mission grammar with transcripts filter", cfg.Clean)
	}
	if len(cfg.Build.Inputs) != 2 {
		t.Errorf("Build.Inputs = %v, want two roots", cfg.Build.Inputs)
	}
	if want := filepath.Join("data", "corpus.txt"); cfg.Build.Output != want {
		t.Errorf("Build.Output = %q, want %q", cfg.Build.Output, want)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("Serve.Addr = %q, want :8080", cfg.Serve.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

// WHAT: file values override defaults; absent keys keep them.
func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
scrape:
  urls_file: missions.txt
  delay_ms: -1
serve:
  addr: 127.0.0.1:9090
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Scrape.URLsFile != "missions.txt" {
		t.Errorf("URLsFile = %q, want missions.txt", cfg.Scrape.URLsFile)
	}
	if cfg.Scrape.Delay() >= 0 {
		t.Errorf("Delay = %v, want negative (disabled)", cfg.Scrape.Delay())
	}
	if cfg.Serve.Addr != "127.0.0.1:9090" {
		t.Errorf("Serve.Addr = %q", cfg.Serve.Addr)
	}
	// Untouched section keeps its defaults.
	if cfg.Scrape.TimeoutSeconds != 20 {
		t.Errorf("TimeoutSeconds = %d, want 20", cfg.Scrape.TimeoutSeconds)
	}
}

// WHAT: data_dir rebases every derived path default.
// WHY: relocating the data tree should be a one-key change, without
// repeating each path.
func TestLoadDataDirRebase(t *testing.T) {
	path := writeConfig(t, `
data_dir: /srv/apollo
scrape:
  output_dir: /mnt/raw
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if want := filepath.Join("/srv/apollo", "catalog.db"); cfg.Catalog.Path != want {
		t.Errorf("Catalog.Path = %q, want %q", cfg.Catalog.Path, want)
	}
	if want := filepath.Join("/srv/apollo", "corpus.txt"); cfg.Build.Output != want {
		t.Errorf("Build.Output = %q, want %q", cfg.Build.Output, want)
	}
	// An explicit path is never rebased.
	if cfg.Scrape.OutputDir != "/mnt/raw" {
		t.Errorf("Scrape.OutputDir = %q, want /mnt/raw", cfg.Scrape.OutputDir)
	}
}

// WHAT: the journal grammar defaults to the .txt extension filter.
func TestLoadGrammarJournal(t *testing.T) {
	path := writeConfig(t, `
clean:
  grammar: journal
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Clean.Ext != ".txt" || cfg.Clean.PathFilter != "" {
		t.Errorf("Clean = %+v, want .txt ext and no path filter", cfg.Clean)
	}
}

// WHAT: an explicit filter suppresses the grammar default.
func TestLoadExplicitFilterKept(t *testing.T) {
	path := writeConfig(t, `
clean:
  grammar: mission
  ext: .md
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Clean.Ext != ".md" || cfg.Clean.PathFilter != "" {
		t.Errorf("Clean = %+v, want .md ext only", cfg.Clean)
	}
}

// WHAT: invalid values are rejected at load time.
func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"bad grammar":   "clean:\n  grammar: morse\n",
		"bad log level": "log_level: chatty\n",
		"bad timeout":   "scrape:\n  timeout_seconds: -5\n",
		"bad yaml":      "scrape: [not, a, map]\n",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

// WHAT: a missing config file is an error, not silent defaults.
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error")
	}
}

func TestLevel(t *testing.T) {
	cfg := &Config{LogLevel: "debug"}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level = %v, want debug", cfg.Level())
	}
	cfg.LogLevel = "nonsense"
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("Level = %v, want info fallback", cfg.Level())
	}
}
