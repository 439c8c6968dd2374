package transcript

import (
	"regexp"
	"strings"
	"unicode"
)

// sentenceEndRe matches text ending in terminal sentence punctuation,
// optionally followed by a closing quote or bracket.
var sentenceEndRe = regexp.MustCompile(`[.!?]["'”’)\]]?$`)

// assemble walks classified lines in document order and builds the
// utterance sequence. The state machine has two states: idle (no open
// turn, encoded as empty parts) and open (accumulating fragments for the
// current turn). Blank, timestamp, metadata, and non-dialogue lines
// flush the open turn; a speaker header flushes it and opens the next.
//
// A speaker header whose remainder is empty usually means the turn's
// words were wrapped onto the following line(s). The assembler then
// scans forward from the header: blank lines are skipped, continuation
// text is collected, and the scan stops at the next boundary line
// (left for the main pass) or right after a line ending in terminal
// sentence punctuation. The forward scan needs random access to the
// classified lines, which is why assembly runs over a slice with an
// explicit cursor rather than a one-shot stream.
func assemble(lines []Line, norm Normalizer) []Utterance {
	var utterances []Utterance
	var parts []string
	var speaker string

	flush := func() {
		if len(parts) == 0 {
			return
		}
		text := strings.Join(parts, " ")
		if containsAlnum(text) {
			utterances = append(utterances, Utterance{Speaker: speaker, Text: text})
		}
		parts = nil
		speaker = ""
	}

	for i := 0; i < len(lines); i++ {
		ln := lines[i]
		switch ln.Kind {
		case KindBlank, KindTimestamp, KindMetadata, KindNonDialogue:
			flush()

		case KindSpeaker:
			flush()
			speaker = ln.Speaker
			text := norm.Clean(ln.Text)
			if text != "" {
				parts = append(parts, text)
				continue
			}

			var buf []string
			j := i + 1
		scan:
			for ; j < len(lines); j++ {
				peek := lines[j]
				switch peek.Kind {
				case KindBlank:
					continue
				case KindTimestamp, KindSpeaker, KindMetadata, KindNonDialogue:
					break scan
				}
				text := norm.Clean(peek.Text)
				if containsAlnum(text) {
					buf = append(buf, text)
				}
				if sentenceEndRe.MatchString(text) {
					j++
					break
				}
			}
			i = j - 1
			if len(buf) > 0 {
				parts = buf
			} else {
				speaker = ""
			}

		case KindContinuation:
			if len(parts) == 0 {
				continue
			}
			text := norm.Clean(ln.Text)
			if containsAlnum(text) {
				parts = append(parts, text)
			}
		}
	}
	flush()

	return utterances
}

func containsAlnum(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	})
}
