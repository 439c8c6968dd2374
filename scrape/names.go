package scrape

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeNameRe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// safeName reduces a URL path component to a filesystem-safe name.
func safeName(value string) string {
	cleaned := strings.Trim(unsafeNameRe.ReplaceAllString(value, "_"), "._")
	if cleaned == "" {
		return "page"
	}
	return cleaned
}

// missionNameFromURL derives the per-mission directory name from a main
// page URL. Journal main pages live at .../<mission>/<page>, so the
// second-to-last path component names the mission.
func missionNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "mission"
	}
	var parts []string
	for _, p := range strings.Split(u.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	switch {
	case len(parts) >= 2:
		return safeName(parts[len(parts)-2])
	case len(parts) == 1:
		last := parts[0]
		return safeName(strings.TrimSuffix(last, path.Ext(last)))
	default:
		return "mission"
	}
}

// outputPath picks the file name for the index-th transcript of a
// mission: NNN_<stem>.txt, with a _2, _3... serial when the name is
// already taken.
func outputPath(missionDir string, index int, rawURL string) string {
	stem := "index"
	if u, err := url.Parse(rawURL); err == nil {
		b := path.Base(u.Path)
		if s := strings.TrimSuffix(b, path.Ext(b)); s != "" && s != "." && s != "/" {
			stem = s
		}
	}
	base := fmt.Sprintf("%03d_%s", index, safeName(stem))
	candidate := filepath.Join(missionDir, base+".txt")
	for serial := 2; ; serial++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = filepath.Join(missionDir, fmt.Sprintf("%s_%d.txt", base, serial))
	}
}
