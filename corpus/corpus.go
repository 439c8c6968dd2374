// Package corpus aggregates cleaned transcript trees into a single
// deduplicated training text file.
//
// Input lines arrive already normalized by the cleaning stage, so the
// builder treats each line as an opaque string: it trims the line
// terminator, drops empty lines, and suppresses exact duplicates with
// an in-memory seen set. The first occurrence of a line wins and the
// output preserves insertion order.
package corpus

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkraft/missiontext/catalog"
)

// Config controls a corpus build.
type Config struct {
	// Inputs are the cleaned-tree roots to aggregate, scanned in
	// order. Roots that do not exist are skipped.
	Inputs []string

	// Output is the corpus file path.
	Output string

	// Catalog, when set, receives a run record for the build.
	Catalog *catalog.Store

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Stats summarizes a corpus build. Total counts every non-empty line
// read; Duplicates is Total minus Unique.
type Stats struct {
	Files      int `json:"files"`
	Total      int `json:"total_lines"`
	Unique     int `json:"unique_lines"`
	Duplicates int `json:"duplicates"`
}

// Builder merges cleaned trees into one corpus file.
type Builder struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config) *Builder {
	cfg.defaults()
	return &Builder{cfg: cfg, logger: cfg.Logger}
}

// Run scans every input root in lexical order and writes the
// deduplicated corpus to Output. The output file is written even when
// no lines survive, so a build always leaves a well-defined artifact.
func (b *Builder) Run(ctx context.Context) (*Stats, error) {
	if len(b.cfg.Inputs) == 0 {
		return nil, fmt.Errorf("corpus: no input dirs configured")
	}
	if b.cfg.Output == "" {
		return nil, fmt.Errorf("corpus: output path not configured")
	}

	var run *catalog.Run
	if b.cfg.Catalog != nil {
		var err error
		run, err = b.cfg.Catalog.StartRun(ctx, "build")
		if err != nil {
			b.logger.Warn("build: run record failed", "error", err)
		}
	}

	stats := &Stats{}
	seen := make(map[string]struct{})
	var ordered []string

	for _, root := range b.cfg.Inputs {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			b.logger.Warn("build: input dir missing, skipping", "dir", root)
			continue
		} else if err != nil {
			return stats, fmt.Errorf("corpus: stat %s: %w", root, err)
		}
		if err := b.scanRoot(ctx, root, stats, seen, &ordered); err != nil {
			return stats, err
		}
	}

	stats.Unique = len(ordered)
	stats.Duplicates = stats.Total - stats.Unique

	if err := writeLinesAtomic(b.cfg.Output, ordered); err != nil {
		return stats, fmt.Errorf("corpus: write %s: %w", b.cfg.Output, err)
	}

	b.logger.Info("build: done",
		"output", b.cfg.Output,
		"files", stats.Files,
		"total", stats.Total,
		"unique", stats.Unique,
		"duplicates", stats.Duplicates)

	if run != nil {
		if err := b.cfg.Catalog.FinishRun(ctx, run.ID, stats); err != nil {
			b.logger.Warn("build: finish run failed", "run", run.ID, "error", err)
		}
	}
	return stats, nil
}

func (b *Builder) scanRoot(ctx context.Context, root string, stats *Stats, seen map[string]struct{}, ordered *[]string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			b.logger.Warn("build: read failed", "file", path, "error", err)
			return nil
		}
		stats.Files++

		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSuffix(line, "\r")
			if line == "" {
				continue
			}
			stats.Total++
			if _, dup := seen[line]; dup {
				continue
			}
			seen[line] = struct{}{}
			*ordered = append(*ordered, line)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("corpus: walk %s: %w", root, err)
	}
	return nil
}

// writeLinesAtomic streams lines to a temp file, one per line with a
// trailing newline, then renames it into place.
func writeLinesAtomic(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			f.Close()
			os.Remove(tmp)
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			os.Remove(tmp)
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
