package scrape

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
)

// htmlExtensions are path suffixes accepted as transcript page candidates.
// The empty extension covers directory-style journal URLs.
var htmlExtensions = map[string]bool{
	"":       true,
	".html":  true,
	".htm":   true,
	".shtml": true,
	".php":   true,
	".asp":   true,
	".aspx":  true,
}

var skipPrefixes = []string{"javascript:", "mailto:", "tel:", "#"}

// normalizeLink resolves href against base, strips the fragment, and
// reports whether the result is an http(s) URL worth fetching.
func normalizeLink(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	lowered := strings.ToLower(href)
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(lowered, prefix) {
			return "", false
		}
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	abs := base.ResolveReference(ref)
	abs.Fragment = ""
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	return abs.String(), true
}

// probablyHTML reports whether the URL path looks like an HTML page.
func probablyHTML(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return htmlExtensions[strings.ToLower(path.Ext(u.Path))]
}

// discoverLinks turns raw hrefs from a main page into fetchable
// transcript URLs: resolved, defragmented, HTML-ish, deduplicated in
// first-appearance order, capped at max (0 = no cap).
func discoverLinks(pageURL string, hrefs []string, max int) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	seen := make(map[string]bool)
	var links []string
	for _, href := range hrefs {
		abs, ok := normalizeLink(base, href)
		if !ok || !probablyHTML(abs) {
			continue
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		links = append(links, abs)
	}
	if max > 0 && len(links) > max {
		links = links[:max]
	}
	return links
}

// ReadURLs reads main page URLs from a text file, one per line.
// Blank lines and lines starting with # are skipped.
func ReadURLs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read urls file: %w", err)
	}
	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, nil
}
