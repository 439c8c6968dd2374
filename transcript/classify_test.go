package transcript

import "testing"

func TestClassifyMissionGrammar(t *testing.T) {
	g := MissionGrammar()

	tests := []struct {
		line string
		want Kind
	}{
		{"[00:03:24:12]", KindTimestamp},
		{"  [00:03:24:12]  ", KindTimestamp},
		{"[-00:01:02:03]", KindTimestamp},
		{"[00:01:02]", KindContinuation}, // three fields is not a mission timecode
		{"_note: crew rest period", KindMetadata},
		{"_tape-14: side b", KindMetadata},
		{"Comm break.", KindNonDialogue},
		{"[Very long comm break.]", KindNonDialogue},
		{"LONG PAUSE", KindNonDialogue},
		{"PAO - T minus 30 seconds.", KindNonDialogue},
		{"CDR: Roger.", KindSpeaker},
		{"CDR:", KindSpeaker},
		{"00:12:03 CDR: Go.", KindSpeaker},
		{"", KindBlank},
		{"   ", KindBlank},
		{"reading of plus five.", KindContinuation},
		{"One two three four five: x", KindContinuation}, // five tokens is too many for a speaker label
		{"Supercalifragilisticexpial: nope", KindContinuation},
	}

	for _, tt := range tests {
		got := g.Classify(tt.line)
		if got.Kind != tt.want {
			t.Errorf("Classify(%q).Kind = %q, want %q", tt.line, got.Kind, tt.want)
		}
	}
}

func TestClassifyJournalGrammar(t *testing.T) {
	g := JournalGrammar()

	tests := []struct {
		line string
		want Kind
	}{
		{"102:45:58", KindTimestamp},
		{"-002:34:21", KindTimestamp},
		{"5:03:22", KindTimestamp},
		{"1024:45:58", KindContinuation}, // four-digit hour is not a timecode
		{"102:45:58 Aldrin: Contact light.", KindSpeaker},
		{"_note: restored audio", KindMetadata},
		{"[Long comm break]", KindNonDialogue},
		{"Apollo 11 Lunar Surface Journal", KindContinuation},
	}

	for _, tt := range tests {
		got := g.Classify(tt.line)
		if got.Kind != tt.want {
			t.Errorf("Classify(%q).Kind = %q, want %q", tt.line, got.Kind, tt.want)
		}
	}
}

func TestClassifySpeakerExtraction(t *testing.T) {
	g := MissionGrammar()

	tests := []struct {
		line    string
		speaker string
		text    string
	}{
		{"CDR: Roger, go.", "CDR", "Roger, go."},
		{"CDR:", "CDR", ""},
		{"CAPCOM (Houston): Copy you.", "CAPCOM (Houston)", "Copy you."},
		{"Tranquility-1: Go for landing.", "Tranquility-1", "Go for landing."},
		{"CDR/LMP: Checklist complete.", "CDR/LMP", "Checklist complete."},
		{"O'Neill: Aye.", "O'Neill", "Aye."},
		{"00:12:03 CDR:", "CDR", ""},
		{"102:45:58 Buzz Aldrin: Okay.", "Buzz Aldrin", "Okay."},
	}

	for _, tt := range tests {
		got := g.Classify(tt.line)
		if got.Kind != KindSpeaker {
			t.Errorf("Classify(%q).Kind = %q, want %q", tt.line, got.Kind, KindSpeaker)
			continue
		}
		if got.Speaker != tt.speaker || got.Text != tt.text {
			t.Errorf("Classify(%q) = (%q, %q), want (%q, %q)",
				tt.line, got.Speaker, got.Text, tt.speaker, tt.text)
		}
	}
}

// An indented header is wrapped body text, not a new turn: the speaker
// pattern is anchored at column zero.
func TestClassifyIndentedHeaderIsContinuation(t *testing.T) {
	g := MissionGrammar()

	got := g.Classify("  CDR: looks like a header")
	if got.Kind != KindContinuation {
		t.Fatalf("Classify indented header = %q, want %q", got.Kind, KindContinuation)
	}
	if got.Text != "CDR: looks like a header" {
		t.Fatalf("continuation text = %q, want trimmed original", got.Text)
	}
}

func TestClassifyAll(t *testing.T) {
	g := MissionGrammar()

	lines := g.ClassifyAll("CDR: Go.\r\n\r\n[00:01:02:03]\r\nover")
	want := []Kind{KindSpeaker, KindBlank, KindTimestamp, KindContinuation}

	if len(lines) != len(want) {
		t.Fatalf("ClassifyAll returned %d lines, want %d", len(lines), len(want))
	}
	for i, k := range want {
		if lines[i].Kind != k {
			t.Errorf("line %d: kind = %q, want %q", i, lines[i].Kind, k)
		}
	}
}
