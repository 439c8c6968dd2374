package transcript

import "regexp"

// Grammar is one pattern set for the line classifier. The two transcript
// layouts in the wild (technical air-to-ground transcripts, flight
// journals) share the same state machine and differ only in these
// patterns, so they are configuration variants rather than separate code
// paths.
type Grammar struct {
	Name string

	// Timestamp matches standalone timecode lines.
	Timestamp *regexp.Regexp

	// Meta matches annotation markers like "_note: ...".
	Meta *regexp.Regexp

	// NonDialogue matches commentary lines: communication-gap phrases
	// and role-label prefixes. Matched case-insensitively by the
	// default patterns.
	NonDialogue []*regexp.Regexp

	// Composite matches "timecode SPEAKER: text" headers.
	// Submatches: speaker, remainder.
	Composite *regexp.Regexp

	// Speaker matches bare "SPEAKER: text" headers. Submatches:
	// speaker, remainder. Anchored at column zero: an indented header
	// is wrapped body text, not a new turn.
	Speaker *regexp.Regexp

	// TidyPunctuation switches the normalizer to the dialogue variant,
	// which removes spaces before punctuation and leading punctuation
	// runs.
	TidyPunctuation bool
}

func (g *Grammar) normalizer() Normalizer {
	return Normalizer{TidyPunctuation: g.TidyPunctuation}
}

// MissionGrammar classifies technical air-to-ground transcripts:
// bracketed standalone timecodes on their own lines, "_meta:" annotation
// markers, and bare speaker headers.
func MissionGrammar() *Grammar {
	return &Grammar{
		Name:        "mission",
		Timestamp:   regexp.MustCompile(`^\s*\[-?\d{2}:\d{2}:\d{2}:\d{2}\]\s*$`),
		Meta:        metaRe,
		NonDialogue: defaultNonDialogue(),
		Composite:   compositeRe,
		Speaker:     speakerHeaderPattern(speakerTokenExtra),
	}
}

// JournalGrammar classifies flight-journal pages: unbracketed "h:mm:ss"
// timecodes, composite "h:mm:ss SPEAKER: text" dialogue lines, and the
// dialogue normalizer variant.
func JournalGrammar() *Grammar {
	return &Grammar{
		Name:            "journal",
		Timestamp:       regexp.MustCompile(`^\s*-?\d{1,3}:\d{2}:\d{2}\s*$`),
		Meta:            metaRe,
		NonDialogue:     defaultNonDialogue(),
		Composite:       compositeRe,
		Speaker:         speakerHeaderPattern(speakerTokenExtra),
		TidyPunctuation: true,
	}
}

var (
	metaRe      = regexp.MustCompile(`^\s*_[A-Za-z0-9-]+\s*:`)
	compositeRe = regexp.MustCompile(`^\s*-?\d{1,3}:\d{2}:\d{2}\s+([^:]+):\s*(.*)$`)

	commGapRe  = regexp.MustCompile(`(?i)^\[?\s*(?:very long comm break|long comm break|comm break|long pause|pause)\s*\.?\s*\]?\s*$`)
	roleDashRe = regexp.MustCompile(`(?i)^\[?\s*(?:pao|capcom|public affairs officer)\s+-\s`)
)

func defaultNonDialogue() []*regexp.Regexp {
	return []*regexp.Regexp{commGapRe, roleDashRe}
}

// speakerTokenExtra lists the punctuation allowed inside speaker-label
// tokens, as a character-class fragment. Call signs carry hyphens and
// slashes ("Tranquility-1", "CDR/LMP") and names carry apostrophes and
// parenthetical initials.
const speakerTokenExtra = `()'/-`

// speakerHeaderPattern builds the bare speaker-header pattern: 1-4 short
// word tokens, the first starting with a letter, followed by a colon and
// the optional turn text.
func speakerHeaderPattern(extra string) *regexp.Regexp {
	tok := `[\p{L}\p{N}_` + extra + `]`
	return regexp.MustCompile(`^([\p{L}]` + tok + `{0,24}(?: ` + tok + `{1,24}){0,3}):\s*(.*)$`)
}
