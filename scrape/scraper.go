// Package scrape collects journal transcript pages: each main URL is a
// table of contents whose first-level list items link to the individual
// transcript pages. Saved pages land under OutputDir/<mission>/ as
// plain-text files, with a JSON manifest, catalog records, and optional
// sanitized Markdown snapshots.
package scrape

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/mkraft/missiontext/catalog"
	"github.com/mkraft/missiontext/extract"
	"github.com/mkraft/missiontext/idgen"
)

// Config configures a Scraper.
type Config struct {
	// OutputDir receives one directory per mission plus the run manifest.
	OutputDir string
	// ArchiveDir, when set, receives sanitized Markdown snapshots of
	// each saved page.
	ArchiveDir string
	// MaxLinksPerMain caps discovered links per main page. 0 = no cap.
	MaxLinksPerMain int
	// Delay is the pause between transcript page fetches.
	// Default: 200ms. Negative disables.
	Delay     time.Duration
	Timeout   time.Duration // HTTP timeout. Default: 20s.
	MaxBytes  int64         // max response body size. Default: 10MB.
	UserAgent string
	// URLValidator vets every URL before it is fetched. Nil means the
	// scheme check; urlcheck.CheckPublic also refuses private hosts.
	URLValidator func(string) error
	// Catalog, when set, receives document, fetch log, and run records.
	Catalog *catalog.Store
	Logger  *slog.Logger
}

func (c *Config) defaults() {
	if c.Delay == 0 {
		c.Delay = 200 * time.Millisecond
	}
	if c.Timeout <= 0 {
		c.Timeout = 20 * time.Second
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = 10 * 1024 * 1024
	}
	if c.UserAgent == "" {
		c.UserAgent = browserUserAgent
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Scraper fetches main pages, discovers transcript links, and saves
// each transcript as plain text.
type Scraper struct {
	cfg       Config
	fetcher   *Fetcher
	logger    *slog.Logger
	newID     func() string
	converter *converter.Converter
	sanitizer *bluemonday.Policy
}

// New creates a Scraper.
func New(cfg Config) *Scraper {
	cfg.defaults()
	return &Scraper{
		cfg: cfg,
		fetcher: NewFetcher(FetcherConfig{
			Timeout:      cfg.Timeout,
			MaxBytes:     cfg.MaxBytes,
			UserAgent:    cfg.UserAgent,
			URLValidator: cfg.URLValidator,
		}),
		logger: cfg.Logger,
		newID:  idgen.New,
		converter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Run scrapes every main URL in order and writes the manifest.
// Failures on individual pages are logged and skipped; only context
// cancellation or an unwritable output tree aborts the run.
func (s *Scraper) Run(ctx context.Context, mainURLs []string) (*Manifest, error) {
	if s.cfg.OutputDir == "" {
		return nil, fmt.Errorf("scrape: output dir not set")
	}
	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("scrape: mkdir %s: %w", s.cfg.OutputDir, err)
	}

	manifest := &Manifest{Entries: []Entry{}}
	var run *catalog.Run
	if s.cfg.Catalog != nil {
		var err error
		if run, err = s.cfg.Catalog.StartRun(ctx, "scrape"); err != nil {
			s.logger.Warn("scrape: start run record failed", "error", err)
		}
	}

	for _, mainURL := range mainURLs {
		if err := s.scrapeMain(ctx, manifest, mainURL); err != nil {
			return manifest, err
		}
	}

	manifestPath := filepath.Join(s.cfg.OutputDir, manifestName)
	if err := manifest.Write(manifestPath); err != nil {
		return manifest, err
	}
	s.logger.Info("scrape: done",
		"saved", manifest.Stats.Saved,
		"unchanged", manifest.Stats.Unchanged,
		"errors", manifest.Stats.Errors,
		"manifest", manifestPath)

	if run != nil {
		if err := s.cfg.Catalog.FinishRun(ctx, run.ID, manifest.Stats); err != nil {
			s.logger.Warn("scrape: finish run record failed", "error", err)
		}
	}
	return manifest, nil
}

func (s *Scraper) scrapeMain(ctx context.Context, m *Manifest, mainURL string) error {
	log := s.logger.With("main_url", mainURL)
	m.Stats.Mains++

	res, err := s.fetcher.Fetch(ctx, mainURL, "")
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("scrape: main page fetch failed", "error", err)
		m.Stats.Errors++
		return nil
	}
	doc, err := html.Parse(bytes.NewReader(res.Body))
	if err != nil {
		log.Warn("scrape: main page parse failed", "error", err)
		m.Stats.Errors++
		return nil
	}

	links := discoverLinks(mainURL, extract.Links(doc), s.cfg.MaxLinksPerMain)
	log.Info("scrape: links discovered", "count", len(links))
	m.Stats.Links += len(links)

	mission := missionNameFromURL(mainURL)
	missionDir := filepath.Join(s.cfg.OutputDir, mission)
	if err := os.MkdirAll(missionDir, 0o755); err != nil {
		return fmt.Errorf("scrape: mkdir %s: %w", missionDir, err)
	}

	for i, link := range links {
		if err := s.scrapePage(ctx, m, mainURL, mission, missionDir, i+1, link); err != nil {
			return err
		}
		if s.cfg.Delay > 0 && i < len(links)-1 {
			if err := sleep(ctx, s.cfg.Delay); err != nil {
				return err
			}
		}
	}
	return nil
}

// scrapePage fetches one transcript URL and saves its extracted text.
// Returns an error only on context cancellation or write failure.
func (s *Scraper) scrapePage(ctx context.Context, m *Manifest, mainURL, mission, missionDir string, index int, pageURL string) error {
	log := s.logger.With("url", pageURL)
	start := time.Now()

	prevHash := ""
	if s.cfg.Catalog != nil {
		if known, err := s.cfg.Catalog.GetDocumentByURL(ctx, pageURL); err == nil && known != nil {
			prevHash = known.ContentHash
		}
	}

	res, err := s.fetcher.Fetch(ctx, pageURL, prevHash)
	duration := time.Since(start).Milliseconds()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		m.Stats.Errors++
		s.logFetch(ctx, &catalog.FetchLogEntry{
			ID: s.newID(), URL: pageURL, Status: "error",
			StatusCode: statusCode(res), ErrorMessage: err.Error(), DurationMs: duration,
		})
		log.Warn("scrape: page fetch failed", "error", err, "duration_ms", duration)
		return nil
	}

	if !res.Changed {
		m.Stats.Unchanged++
		s.logFetch(ctx, &catalog.FetchLogEntry{
			ID: s.newID(), URL: pageURL, Status: "unchanged",
			StatusCode: res.StatusCode, ContentHash: res.Hash, DurationMs: duration,
		})
		log.Debug("scrape: content unchanged", "duration_ms", duration)
		return nil
	}

	doc, err := html.Parse(bytes.NewReader(res.Body))
	if err != nil {
		m.Stats.Errors++
		s.logFetch(ctx, &catalog.FetchLogEntry{
			ID: s.newID(), URL: pageURL, Status: "error",
			StatusCode: res.StatusCode, ErrorMessage: "parse: " + err.Error(), DurationMs: duration,
		})
		log.Warn("scrape: page parse failed", "error", err)
		return nil
	}

	text := extract.Text(doc)
	if text == "" {
		m.Stats.Empty++
		s.logFetch(ctx, &catalog.FetchLogEntry{
			ID: s.newID(), URL: pageURL, Status: "empty",
			StatusCode: res.StatusCode, ContentHash: res.Hash, DurationMs: duration,
		})
		log.Debug("scrape: extracted text is empty")
		return nil
	}

	outPath := outputPath(missionDir, index, pageURL)
	if err := writeFileAtomic(outPath, []byte(text+"\n")); err != nil {
		return fmt.Errorf("scrape: write %s: %w", outPath, err)
	}
	m.Entries = append(m.Entries, Entry{
		MainURL:       mainURL,
		TranscriptURL: pageURL,
		OutputFile:    filepath.ToSlash(outPath),
	})
	m.Stats.Saved++

	relPath, err := filepath.Rel(s.cfg.OutputDir, outPath)
	if err != nil {
		relPath = outPath
	}
	docRecord := &catalog.Document{
		ID:          s.newID(),
		Mission:     mission,
		URL:         pageURL,
		RelPath:     filepath.ToSlash(relPath),
		Title:       extract.Title(doc),
		ContentHash: res.Hash,
		FetchedAt:   time.Now().UnixMilli(),
	}
	if s.cfg.Catalog != nil {
		entry := &catalog.FetchLogEntry{
			ID: s.newID(), URL: pageURL, Status: "ok",
			StatusCode: res.StatusCode, ContentHash: res.Hash, DurationMs: duration,
		}
		if err := s.cfg.Catalog.RecordFetch(ctx, docRecord, entry); err != nil {
			log.Warn("scrape: catalog record failed", "error", err)
		}
	}

	if s.cfg.ArchiveDir != "" {
		if err := s.archivePage(docRecord, res.Body, text, outPath); err != nil {
			log.Warn("scrape: archive write failed", "error", err)
		}
	}

	log.Info("scrape: page saved", "file", outPath, "text_len", len(text), "duration_ms", duration)
	return nil
}

func (s *Scraper) logFetch(ctx context.Context, entry *catalog.FetchLogEntry) {
	if s.cfg.Catalog == nil {
		return
	}
	if err := s.cfg.Catalog.InsertFetchLog(ctx, entry); err != nil {
		s.logger.Warn("scrape: fetch log insert failed", "error", err)
	}
}

func statusCode(res *Result) int {
	if res == nil {
		return 0
	}
	return res.StatusCode
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
