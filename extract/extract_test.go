package extract

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parse(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestLinksFirstLevelOnly(t *testing.T) {
	doc := parse(t, `
<html><body>
<ul>
  <li><a href="a11/transcript1.html">Day 1</a></li>
  <li><a href=" a11/transcript2.html ">Day 2</a>
    <ul><li><a href="nested.html">nested</a></li></ul>
  </li>
  <li>no anchor here</li>
</ul>
<p><a href="outside.html">outside any list</a></p>
</body></html>`)

	got := Links(doc)
	want := []string{"a11/transcript1.html", "a11/transcript2.html"}

	if len(got) != len(want) {
		t.Fatalf("Links = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("link %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLinksIgnoresAnchorsWithoutHref(t *testing.T) {
	doc := parse(t, `<ul><li><a name="top">anchor</a><a href="x.html">x</a></li></ul>`)

	got := Links(doc)
	if len(got) != 1 || got[0] != "x.html" {
		t.Fatalf("Links = %v, want [x.html]", got)
	}
}

func TestTextBlocksAndSkips(t *testing.T) {
	doc := parse(t, `
<html><head><style>p { color: red }</style></head><body>
<h1>Apollo 11</h1>
<p>102:45:58 Aldrin:   Contact light.</p>
<script>var x = 1;</script>
<div>Okay. <b>Engine</b> stop.</div>
<noscript>enable javascript</noscript>
</body></html>`)

	got := Text(doc)
	want := "Apollo 11\n102:45:58 Aldrin: Contact light.\nOkay. Engine stop."

	if got != want {
		t.Errorf("Text = %q, want %q", got, want)
	}
}

func TestTextInlineMarkupStaysOnOneLine(t *testing.T) {
	doc := parse(t, `<p>H<sub>2</sub>O levels <i>nominal</i></p>`)

	got := Text(doc)
	if got != "H2O levels nominal" {
		t.Errorf("Text = %q, want %q", got, "H2O levels nominal")
	}
}

func TestTextLineBreakOnBr(t *testing.T) {
	doc := parse(t, `<p>first<br>second</p>`)

	got := Text(doc)
	if got != "first\nsecond" {
		t.Errorf("Text = %q, want %q", got, "first\nsecond")
	}
}

func TestTextEmptyDocument(t *testing.T) {
	doc := parse(t, `<html><body><script>only();</script></body></html>`)

	if got := Text(doc); got != "" {
		t.Errorf("Text = %q, want empty", got)
	}
}

func TestTitle(t *testing.T) {
	doc := parse(t, `<html><head><title>  Apollo 11
	Flight Journal </title></head><body></body></html>`)

	if got := Title(doc); got != "Apollo 11 Flight Journal" {
		t.Errorf("Title = %q, want %q", got, "Apollo 11 Flight Journal")
	}

	empty := parse(t, `<p>no title</p>`)
	if got := Title(empty); got != "" {
		t.Errorf("Title = %q, want empty", got)
	}
}
