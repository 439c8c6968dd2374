// Package transcript extracts clean dialogue from raw mission-transcript
// text.
//
// A transcript mixes timestamped speaker turns with timecode markers,
// annotation lines, glossary markup, and non-dialogue commentary. The
// pipeline runs two stages per document: a line classifier assigns every
// line exactly one category from the grammar's pattern set, and an
// utterance assembler walks the classified lines, joining wrapped
// continuation text into the open turn and flushing it at each boundary.
// Surviving text is normalized (markup unwrapped and stripped, whitespace
// collapsed) and emitted one utterance per speaker turn, in source order.
//
// Classification is total: a line that matches nothing is a continuation
// of whatever came before, so the pipeline never fails on content. A
// document that yields zero utterances is a valid result.
//
// Usage:
//
//	pipe := transcript.New(transcript.Config{Grammar: transcript.JournalGrammar()})
//	doc := pipe.Extract(rawText)
//	for _, u := range doc.Utterances {
//		fmt.Println(u.Text)
//	}
package transcript

import "log/slog"

// Config configures an extraction pipeline.
type Config struct {
	// Grammar selects the pattern set for the line classifier
	// (default: MissionGrammar).
	Grammar *Grammar

	// Logger for debug messages.
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Grammar == nil {
		c.Grammar = MissionGrammar()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Pipeline is the dialogue extraction engine. A Pipeline is stateless
// across documents; the same instance may be reused for any number of
// Extract calls.
type Pipeline struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Pipeline with the given configuration.
func New(cfg Config) *Pipeline {
	cfg.defaults()
	return &Pipeline{
		cfg:    cfg,
		logger: cfg.Logger,
	}
}

// Grammar returns the grammar the pipeline classifies with.
func (p *Pipeline) Grammar() *Grammar {
	return p.cfg.Grammar
}

// Extract runs the full pipeline on one document's text and returns the
// ordered utterance sequence. It never fails: unclassifiable content is
// carried as continuation text and documents without dialogue produce an
// empty (valid) result.
func (p *Pipeline) Extract(text string) *Document {
	lines := p.cfg.Grammar.ClassifyAll(text)
	utterances := assemble(lines, p.cfg.Grammar.normalizer())

	p.logger.Debug("dialogue extracted",
		"grammar", p.cfg.Grammar.Name,
		"lines", len(lines),
		"utterances", len(utterances))

	return &Document{
		Grammar:    p.cfg.Grammar.Name,
		Utterances: utterances,
	}
}
