package transcript

import "strings"

// Classify assigns exactly one category to a raw transcript line.
// Priority order: blank, timestamp, metadata, non-dialogue, composite
// header, bare speaker header, continuation. Classification is a pure
// function of the line content and never fails.
func (g *Grammar) Classify(raw string) Line {
	line := strings.TrimRight(raw, "\r")
	stripped := strings.TrimSpace(line)

	if stripped == "" {
		return Line{Kind: KindBlank}
	}
	if g.Timestamp != nil && g.Timestamp.MatchString(stripped) {
		return Line{Kind: KindTimestamp}
	}
	if g.Meta != nil && g.Meta.MatchString(stripped) {
		return Line{Kind: KindMetadata}
	}
	for _, re := range g.NonDialogue {
		if re.MatchString(stripped) {
			return Line{Kind: KindNonDialogue}
		}
	}
	if g.Composite != nil {
		if m := g.Composite.FindStringSubmatch(line); m != nil {
			return Line{Kind: KindSpeaker, Speaker: strings.TrimSpace(m[1]), Text: m[2]}
		}
	}
	if g.Speaker != nil {
		if m := g.Speaker.FindStringSubmatch(line); m != nil {
			return Line{Kind: KindSpeaker, Speaker: m[1], Text: m[2]}
		}
	}
	return Line{Kind: KindContinuation, Text: stripped}
}

// ClassifyAll splits text on newline boundaries, tolerating trailing
// carriage returns, and classifies every line.
func (g *Grammar) ClassifyAll(text string) []Line {
	rawLines := strings.Split(text, "\n")
	lines := make([]Line, len(rawLines))
	for i, raw := range rawLines {
		lines[i] = g.Classify(raw)
	}
	return lines
}
