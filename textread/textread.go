// Package textread reads text files of unknown encoding. Transcript
// archives mix UTF-8 pages with Windows-1251 and Latin-1 scans, so
// decoding tries a fixed fallback sequence: UTF-8 with a byte-order
// mark, plain UTF-8, strict Windows-1251, then Latin-1, which accepts
// any byte sequence and therefore always succeeds.
package textread

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts raw file bytes to a string and reports the encoding
// label used: "utf-8-sig", "utf-8", "windows-1251", or "latin-1".
func Decode(data []byte) (string, string) {
	if rest, ok := bytes.CutPrefix(data, utf8BOM); ok && utf8.Valid(rest) {
		return string(rest), "utf-8-sig"
	}
	if utf8.Valid(data) {
		return string(data), "utf-8"
	}
	if text, ok := decodeWindows1251(data); ok {
		return text, "windows-1251"
	}
	return decodeLatin1(data), "latin-1"
}

// ReadFile reads path and decodes it, returning the text and the
// encoding label.
func ReadFile(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}
	text, enc := Decode(data)
	return text, enc, nil
}

// decodeWindows1251 decodes strictly: a byte with no assignment in the
// code page rejects the whole input, mirroring the behavior of a strict
// cp1251 decoder so that binary-ish data falls through to Latin-1.
func decodeWindows1251(data []byte) (string, bool) {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		r := charmap.Windows1251.DecodeByte(b)
		if r == utf8.RuneError {
			return "", false
		}
		sb.WriteRune(r)
	}
	return sb.String(), true
}

func decodeLatin1(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(charmap.ISO8859_1.DecodeByte(b))
	}
	return sb.String()
}
