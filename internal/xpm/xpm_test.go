package xpm

import (
	"strings"
	"testing"
)

const sample = `/* XPM */
static char * frame_xpm[] = {
"4 2 3 1",
". 	c #E2DA9D",
"+	c #d8cf8a",
"  	c None",
"..++",
"++.."};
`

func TestParse(t *testing.T) {
	entries := Parse(sample)
	want := []Entry{
		{Line: 3, Hex: "#e2da9d"},
		{Line: 4, Hex: "#d8cf8a"},
	}
	if len(entries) != len(want) {
		t.Fatalf("Parse returned %d entries, want %d: %v", len(entries), len(want), entries)
	}
	for i, e := range entries {
		if e != want[i] {
			t.Errorf("entry %d = %v, want %v", i, e, want[i])
		}
	}
}

func TestParseSkipsNonPaletteContent(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int
	}{
		{name: "dimension header", line: `"32 32 5 1",`, want: 0},
		{name: "pixel row", line: `"..++..++",`, want: 0},
		{name: "none entry", line: `". c None",`, want: 0},
		{name: "none lowercase", line: `". c none",`, want: 0},
		{name: "colour entry", line: `". c #aabbcc",`, want: 1},
		{name: "tab separated", line: ".\tc\t#aabbcc", want: 1},
		{name: "missing key", line: `". #aabbcc",`, want: 0},
		{name: "truncated hex", line: `". c #aabb",`, want: 0},
		{name: "c without leading space", line: `"c #aabbcc",`, want: 0},
		{name: "empty", line: "", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(Parse(tt.line)); got != tt.want {
				t.Errorf("Parse(%q) found %d entries, want %d", tt.line, got, tt.want)
			}
		})
	}
}

func TestRewrite(t *testing.T) {
	mapping := map[string]string{
		"#e2da9d": "#396cb6",
		"#d8cf8a": "#2f62ab",
	}
	out, changed := Rewrite(sample, mapping)
	if changed != 2 {
		t.Fatalf("Rewrite changed %d lines, want 2", changed)
	}
	if !strings.Contains(out, `". 	c #396cb6",`) {
		t.Errorf("marker line not rewritten in place:\n%s", out)
	}
	if !strings.Contains(out, `"+	c #2f62ab",`) {
		t.Errorf("family line not rewritten in place:\n%s", out)
	}
	// Non-palette content is byte-identical.
	if !strings.Contains(out, `"..++",`) || !strings.Contains(out, "static char * frame_xpm[]") {
		t.Errorf("non-palette content altered:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("trailing newline not preserved")
	}
}

func TestRewriteUnmappedUntouched(t *testing.T) {
	out, changed := Rewrite(sample, map[string]string{"#123456": "#654321"})
	if changed != 0 {
		t.Errorf("Rewrite changed %d lines, want 0", changed)
	}
	if out != sample {
		t.Error("text with no mapped colours must be byte-identical")
	}
}

func TestRewriteIdentityMappingNoChange(t *testing.T) {
	out, changed := Rewrite(sample, map[string]string{"#e2da9d": "#e2da9d"})
	if changed != 0 {
		t.Errorf("identity mapping changed %d lines, want 0", changed)
	}
	if out != sample {
		t.Error("identity mapping must leave the text byte-identical")
	}
}

func TestRewriteIdempotent(t *testing.T) {
	mapping := map[string]string{"#e2da9d": "#396cb6", "#d8cf8a": "#2f62ab"}
	once, n := Rewrite(sample, mapping)
	if n == 0 {
		t.Fatal("first rewrite changed nothing")
	}

	identity := map[string]string{"#396cb6": "#396cb6", "#2f62ab": "#2f62ab"}
	twice, n2 := Rewrite(once, identity)
	if n2 != 0 {
		t.Errorf("identity rewrite changed %d lines, want 0", n2)
	}
	if twice != once {
		t.Error("identity rewrite must be byte-identical to first rewrite")
	}
}

func TestRewriteNoTrailingNewline(t *testing.T) {
	in := `". c #e2da9d",`
	out, changed := Rewrite(in, map[string]string{"#e2da9d": "#396cb6"})
	if changed != 1 {
		t.Fatalf("changed = %d, want 1", changed)
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("rewrite added a trailing newline")
	}
	if out != `". c #396cb6",` {
		t.Errorf("out = %q", out)
	}
}

func TestRewriteUppercaseSource(t *testing.T) {
	in := `". c #E2DA9D",` + "\n"
	out, changed := Rewrite(in, map[string]string{"#e2da9d": "#396cb6"})
	if changed != 1 {
		t.Fatalf("changed = %d, want 1", changed)
	}
	if out != `". c #396cb6",`+"\n" {
		t.Errorf("out = %q", out)
	}
}
