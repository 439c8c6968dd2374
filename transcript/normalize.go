package transcript

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	glossaryRe    = regexp.MustCompile(`\[glossary:([^\]|]+)(?:\|[^\]]*)?\]`)
	bracketTermRe = regexp.MustCompile(`\[[A-Za-z0-9_-]+:([^\]|]+)(?:\|[^\]]*)?\]`)

	// markupTagRe matches any angle-bracket tag; keepTagRe spares the
	// sub/sup pair, which marks chemistry and exponents rather than
	// formatting noise.
	markupTagRe = regexp.MustCompile(`</?[^>]+>`)
	keepTagRe   = regexp.MustCompile(`(?i)^</?(?:sub|sup)\b`)

	spaceBeforePunctRe = regexp.MustCompile(`\s+([,.;:!?])`)
	leadingPunctRe     = regexp.MustCompile(`^\p{P}+(?: \p{P}+)* ?`)
)

// Normalizer cleans one text fragment: bracketed glossary and annotation
// terms are unwrapped to the bare term, markup tags stripped, and
// whitespace collapsed. The zero value applies the base rules;
// TidyPunctuation adds the dialogue cleanup used for journal pages.
// Clean is stateless and idempotent.
type Normalizer struct {
	TidyPunctuation bool
}

// Clean normalizes a text fragment. It keeps the dialogue words and
// punctuation and removes everything that is markup.
func (n Normalizer) Clean(text string) string {
	text = unwrapTerm(glossaryRe, text)
	text = unwrapTerm(bracketTermRe, text)
	text = markupTagRe.ReplaceAllStringFunc(text, func(tag string) string {
		if keepTagRe.MatchString(tag) {
			return tag
		}
		return ""
	})
	text = collapseWhitespace(text)
	if n.TidyPunctuation {
		text = spaceBeforePunctRe.ReplaceAllString(text, "$1")
		text = leadingPunctRe.ReplaceAllString(text, "")
	}
	return text
}

// unwrapTerm replaces every match of re with its first submatch,
// trimmed. "[glossary:Moon|Earth's satellite]" becomes "Moon".
func unwrapTerm(re *regexp.Regexp, text string) string {
	return re.ReplaceAllStringFunc(text, func(m string) string {
		sub := re.FindStringSubmatch(m)
		return strings.TrimSpace(sub[1])
	})
}

func collapseWhitespace(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		} else {
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
