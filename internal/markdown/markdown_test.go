package markdown_test

import (
	"strings"
	"testing"

	"github.com/valpere/peremd/internal/markdown"
)

func parse(t *testing.T, src string) *markdown.Block {
	t.Helper()
	doc, err := markdown.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return doc
}

func TestRender_RoundTrips(t *testing.T) {
	cases := []string{
		"Hello world.\n",
		"# Title\n\nSome text.\n",
		"## Section {#custom-id}\n\nMore text.\n",
		"```go\nfmt.Println(\"hi\")\n```\n",
		"> Quoted text.\n",
		"- one\n- two\n",
		"1. first\n2. second\n",
		"---\n",
		"Use `fmt.Println` to print.\n",
		"Some *emphasis* and **strong** and ~~strike~~.\n",
		"A [link](https://example.com) here.\n",
		"![alt text](image.png)\n",
	}
	for _, src := range cases {
		doc := parse(t, src)
		if got := markdown.Render(doc, 88); got != src {
			t.Errorf("round-trip failed:\n  input:  %q\n  output: %q", src, got)
		}
	}
}

func TestRender_SoftBreakCollapsesToSpace(t *testing.T) {
	doc := parse(t, "line one\nline two\n")
	if got := markdown.Render(doc, 88); got != "line one line two\n" {
		t.Errorf("expected reflowed paragraph, got %q", got)
	}
}

func TestRender_HardBreakPreserved(t *testing.T) {
	doc := parse(t, "line one\\\nline two\n")
	if got := markdown.Render(doc, 88); got != "line one\\\nline two\n" {
		t.Errorf("expected hard break preserved, got %q", got)
	}
}

func TestRender_WrapsAtWidth(t *testing.T) {
	src := "alpha beta gamma delta epsilon zeta eta theta iota kappa\n"
	doc := parse(t, src)
	got := markdown.Render(doc, 20)

	for _, line := range strings.Split(strings.TrimRight(got, "\n"), "\n") {
		if len(line) > 20 {
			t.Errorf("line exceeds width: %q", line)
		}
	}
	rejoined := strings.ReplaceAll(strings.TrimRight(got, "\n"), "\n", " ") + "\n"
	if rejoined != src {
		t.Errorf("wrapping lost content:\n  input:  %q\n  output: %q", src, rejoined)
	}
}

func TestRender_NeverWrapsInsideCodeSpan(t *testing.T) {
	src := "aa `bbb ccc ddd eee fff` gg hh ii jj\n"
	doc := parse(t, src)
	got := markdown.Render(doc, 10)

	found := false
	for _, line := range strings.Split(got, "\n") {
		if strings.Contains(line, "`bbb ccc ddd eee fff`") {
			found = true
		}
	}
	if !found {
		t.Errorf("code span was split across lines:\n%s", got)
	}
}

func TestRender_CodeSpanWithBacktickContent(t *testing.T) {
	block := &markdown.Block{
		Kind: markdown.BlockParagraph,
		Inlines: []*markdown.Inline{
			{Kind: markdown.InlineCode, Text: "a ` b"},
		},
	}
	if got := markdown.RenderBlock(block, 88); got != "``a ` b``" {
		t.Errorf("expected double-backtick delimiters, got %q", got)
	}
}

func TestRender_CodeSpanEdgeBacktickPadded(t *testing.T) {
	block := &markdown.Block{
		Kind: markdown.BlockParagraph,
		Inlines: []*markdown.Inline{
			{Kind: markdown.InlineCode, Text: "`edge"},
		},
	}
	if got := markdown.RenderBlock(block, 88); got != "`` `edge ``" {
		t.Errorf("expected padded delimiters, got %q", got)
	}
}

func TestRender_FenceGrowsPastContent(t *testing.T) {
	doc := parse(t, "````\ncode with ``` inside\n````\n")
	got := markdown.Render(doc, 88)
	if !strings.Contains(got, "````\ncode with ``` inside\n````") {
		t.Errorf("fence does not clear content:\n%s", got)
	}
}

func TestRender_Table(t *testing.T) {
	src := "| a | b |\n|---|---|\n| c | d |\n"
	doc := parse(t, src)
	want := "| a   | b   |\n| --- | --- |\n| c   | d   |\n"
	if got := markdown.Render(doc, 88); got != want {
		t.Errorf("table rendering:\n  want: %q\n  got:  %q", want, got)
	}
}

func TestParse_DirectiveStaysText(t *testing.T) {
	doc := parse(t, "::: note\n")
	if len(doc.Children) != 1 || doc.Children[0].Kind != markdown.BlockParagraph {
		t.Fatalf("expected a single paragraph, got %+v", doc.Children)
	}
	first := doc.Children[0].Inlines[0]
	if first.Kind != markdown.InlineText || !strings.HasPrefix(first.Text, ":::") {
		t.Errorf("directive delimiter not plain text: %+v", first)
	}
}

func TestParse_AltTrailerStaysText(t *testing.T) {
	doc := parse(t, "![img](a.png){alt='A photo'}\n")
	para := doc.Children[0]
	if para.Kind != markdown.BlockParagraph {
		t.Fatalf("expected paragraph, got kind %d", para.Kind)
	}
	last := para.Inlines[len(para.Inlines)-1]
	if last.Kind != markdown.InlineText || !strings.HasSuffix(last.Text, "'}") {
		t.Errorf("alt trailer not preserved as text: %+v", last)
	}
}

func TestRender_NestedQuoteList(t *testing.T) {
	src := "> - one\n> - two\n"
	doc := parse(t, src)
	if got := markdown.Render(doc, 88); got != src {
		t.Errorf("nested structure round-trip:\n  input:  %q\n  output: %q", src, got)
	}
}
