package transcript

// Kind is the category the classifier assigns to a line.
type Kind string

const (
	// KindTimestamp is a standalone timecode marker; a hard turn boundary.
	KindTimestamp Kind = "timestamp"
	// KindMetadata is an annotation marker like "_note:"; a hard turn boundary.
	KindMetadata Kind = "metadata"
	// KindNonDialogue is commentary or a communication-gap marker; a hard
	// turn boundary, never emitted.
	KindNonDialogue Kind = "non-dialogue"
	// KindSpeaker opens a new speaker turn.
	KindSpeaker Kind = "speaker"
	// KindBlank is a whitespace-only line.
	KindBlank Kind = "blank"
	// KindContinuation is wrapped body text extending the open turn.
	KindContinuation Kind = "continuation"
)

// Line is one classified transcript line. Speaker is set only for
// speaker headers; Text carries the remainder after the header, or the
// trimmed body text for continuations. Boundary kinds carry no text.
type Line struct {
	Kind    Kind   `json:"kind"`
	Speaker string `json:"speaker,omitempty"`
	Text    string `json:"text,omitempty"`
}

// Utterance is one normalized speaker turn, possibly joined from
// several wrapped lines.
type Utterance struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Document is the dialogue extracted from one transcript. Utterance
// order matches the order of the corresponding turns in the source.
type Document struct {
	Grammar    string      `json:"grammar"`
	Utterances []Utterance `json:"utterances"`
}

// Texts returns just the utterance texts, in order. This is the
// persisted one-utterance-per-line form.
func (d *Document) Texts() []string {
	texts := make([]string, len(d.Utterances))
	for i, u := range d.Utterances {
		texts[i] = u.Text
	}
	return texts
}
