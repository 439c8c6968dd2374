package scrape

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"

	"github.com/mkraft/missiontext/catalog"
)

// archivePage writes a sanitized Markdown snapshot of a saved page:
// YAML frontmatter with the document's catalog fields, then the page
// converted to Markdown (falling back to the extracted plain text).
func (s *Scraper) archivePage(doc *catalog.Document, rawHTML []byte, fallback, txtPath string) error {
	sanitized := s.sanitizer.SanitizeBytes(rawHTML)
	md := s.htmlToMarkdown(string(sanitized), doc.URL, fallback)

	name := strings.TrimSuffix(filepath.Base(txtPath), ".txt") + ".md"
	dir := filepath.Join(s.cfg.ArchiveDir, doc.Mission)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	content := formatFrontmatter(doc) + md + "\n"
	return writeFileAtomic(filepath.Join(dir, name), []byte(content))
}

// htmlToMarkdown converts HTML to structured markdown.
// If conversion fails or produces empty output, returns the fallback plain text.
func (s *Scraper) htmlToMarkdown(html string, sourceURL string, fallback string) string {
	if html == "" {
		return fallback
	}
	result, err := s.converter.ConvertString(html, converter.WithDomain(sourceURL))
	if err != nil || strings.TrimSpace(result) == "" {
		return fallback
	}
	return strings.TrimSpace(result)
}

// formatFrontmatter builds a YAML frontmatter block.
func formatFrontmatter(doc *catalog.Document) string {
	return "---\n" +
		"id: " + doc.ID + "\n" +
		"mission: " + doc.Mission + "\n" +
		"url: " + doc.URL + "\n" +
		"title: " + yamlEscape(doc.Title) + "\n" +
		"content_hash: " + doc.ContentHash + "\n" +
		"fetched_at: " + time.UnixMilli(doc.FetchedAt).UTC().Format(time.RFC3339) + "\n" +
		"---\n\n"
}

// yamlEscape wraps a string in quotes if it contains special YAML characters.
func yamlEscape(s string) string {
	if !strings.ContainsAny(s, ":#'\"{}[],&*?|-<>=!%@`\n") {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}
