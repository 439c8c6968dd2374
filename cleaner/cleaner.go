// Package cleaner runs raw transcript trees through the utterance
// extraction pipeline. The input directory layout is mirrored under the
// output directory so a cleaned file is always found at the same
// relative path as its source.
package cleaner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkraft/missiontext/catalog"
	"github.com/mkraft/missiontext/textread"
	"github.com/mkraft/missiontext/transcript"
)

// Config controls a cleaning run.
type Config struct {
	// InputDir is the root of the raw transcript tree.
	InputDir string

	// OutputDir receives the cleaned files, mirroring InputDir.
	OutputDir string

	// PathFilter keeps only files that have this path component,
	// such as "transcripts" for mission trees where dialogue lives
	// in a transcripts/ subdirectory. Empty keeps every file.
	PathFilter string

	// Ext keeps only files with this extension, such as ".txt".
	// Empty keeps every file. The match is exact.
	Ext string

	// Pipeline extracts utterances. Defaults to the standard pipeline.
	Pipeline *transcript.Pipeline

	// Catalog, when set, receives a run record for the cleaning pass.
	Catalog *catalog.Store

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Pipeline == nil {
		c.Pipeline = transcript.New(transcript.Config{})
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Stats summarizes a cleaning run.
type Stats struct {
	FilesScanned int `json:"files_scanned"`
	FilesWritten int `json:"files_written"`
	Utterances   int `json:"utterances"`
}

// Runner walks an input tree and writes cleaned transcripts.
type Runner struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config) *Runner {
	cfg.defaults()
	return &Runner{cfg: cfg, logger: cfg.Logger}
}

// Run walks InputDir in lexical order and writes one cleaned file per
// source document that yields dialogue. Documents with no utterances
// produce no output file. Unreadable files are logged and skipped; the
// walk aborts only on context cancellation or write failures.
func (r *Runner) Run(ctx context.Context) (*Stats, error) {
	if r.cfg.InputDir == "" {
		return nil, fmt.Errorf("cleaner: input dir not configured")
	}
	if r.cfg.OutputDir == "" {
		return nil, fmt.Errorf("cleaner: output dir not configured")
	}

	var run *catalog.Run
	if r.cfg.Catalog != nil {
		var err error
		run, err = r.cfg.Catalog.StartRun(ctx, "clean")
		if err != nil {
			r.logger.Warn("clean: run record failed", "error", err)
		}
	}

	stats := &Stats{}
	err := filepath.WalkDir(r.cfg.InputDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if r.cfg.PathFilter != "" && !hasComponent(path, r.cfg.PathFilter) {
			return nil
		}
		if r.cfg.Ext != "" && filepath.Ext(path) != r.cfg.Ext {
			return nil
		}
		stats.FilesScanned++
		return r.cleanFile(path, stats)
	})
	if err != nil {
		return stats, fmt.Errorf("cleaner: walk %s: %w", r.cfg.InputDir, err)
	}

	r.logger.Info("clean: done",
		"input", r.cfg.InputDir,
		"output", r.cfg.OutputDir,
		"scanned", stats.FilesScanned,
		"written", stats.FilesWritten,
		"utterances", stats.Utterances)

	if run != nil {
		if err := r.cfg.Catalog.FinishRun(ctx, run.ID, stats); err != nil {
			r.logger.Warn("clean: finish run failed", "run", run.ID, "error", err)
		}
	}
	return stats, nil
}

func (r *Runner) cleanFile(path string, stats *Stats) error {
	text, enc, err := textread.ReadFile(path)
	if err != nil {
		r.logger.Warn("clean: read failed", "file", path, "error", err)
		return nil
	}

	doc := r.cfg.Pipeline.Extract(text)
	if len(doc.Utterances) == 0 {
		r.logger.Debug("clean: no dialogue", "file", path)
		return nil
	}

	rel, err := filepath.Rel(r.cfg.InputDir, path)
	if err != nil {
		return fmt.Errorf("relative path for %s: %w", path, err)
	}
	dst := filepath.Join(r.cfg.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	out := strings.Join(doc.Texts(), "\n") + "\n"
	if err := writeFileAtomic(dst, []byte(out)); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}

	stats.FilesWritten++
	stats.Utterances += len(doc.Utterances)
	r.logger.Debug("clean: file written",
		"file", dst,
		"utterances", len(doc.Utterances),
		"encoding", enc)
	return nil
}

// hasComponent reports whether any path component equals name.
func hasComponent(path, name string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == name {
			return true
		}
	}
	return false
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
