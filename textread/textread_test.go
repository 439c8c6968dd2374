package textread

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDecode(t *testing.T) {
	// "Привет" in Windows-1251.
	cp1251 := []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2}

	tests := []struct {
		name string
		data []byte
		text string
		enc  string
	}{
		{"plain ascii", []byte("Roger, go."), "Roger, go.", "utf-8"},
		{"utf-8 cyrillic", []byte("Привет"), "Привет", "utf-8"},
		{"bom stripped", append([]byte{0xEF, 0xBB, 0xBF}, []byte("Go.")...), "Go.", "utf-8-sig"},
		{"windows-1251", cp1251, "Привет", "windows-1251"},
		// 0x98 has no assignment in Windows-1251, forcing Latin-1.
		{"latin-1 fallback", []byte("mark\x98up"), "mark\u0098up", "latin-1"},
		{"empty", nil, "", "utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, enc := Decode(tt.data)
			if text != tt.text || enc != tt.enc {
				t.Errorf("Decode = (%q, %q), want (%q, %q)", text, enc, tt.text, tt.enc)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transcript.txt")

	cp1251 := []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2}
	if err := os.WriteFile(path, cp1251, 0o644); err != nil {
		t.Fatal(err)
	}

	text, enc, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if text != "Привет" || enc != "windows-1251" {
		t.Errorf("ReadFile = (%q, %q), want (Привет, windows-1251)", text, enc)
	}

	if _, _, err := ReadFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
