package placeholder_test

import (
	"testing"

	"github.com/valpere/peremd/internal/markdown"
	"github.com/valpere/peremd/internal/placeholder"
)

func inlineCode(text string) *markdown.Inline {
	return &markdown.Inline{Kind: markdown.InlineCode, Text: text}
}

func inlineText(text string) *markdown.Inline {
	return &markdown.Inline{Kind: markdown.InlineText, Text: text}
}

func TestProtect_NoCode(t *testing.T) {
	inlines := []*markdown.Inline{inlineText("Hello, world!")}
	m := placeholder.Protect(inlines)
	if len(m) != 0 {
		t.Errorf("expected empty map, got %d entries", len(m))
	}
	if inlines[0].Text != "Hello, world!" {
		t.Errorf("text mutated: %q", inlines[0].Text)
	}
}

func TestProtect_EncounterOrder(t *testing.T) {
	inlines := []*markdown.Inline{
		inlineCode("first"),
		inlineText(" and "),
		inlineCode("second"),
	}
	m := placeholder.Protect(inlines)

	if inlines[0].Text != "x000y" || inlines[2].Text != "x001y" {
		t.Errorf("expected tokens in encounter order, got %q and %q", inlines[0].Text, inlines[2].Text)
	}
	if m["x000y"] != "first" || m["x001y"] != "second" {
		t.Errorf("unexpected map contents: %v", m)
	}
}

func TestProtect_NestedSpans(t *testing.T) {
	inlines := []*markdown.Inline{
		{Kind: markdown.InlineEmph, Children: []*markdown.Inline{inlineCode("nested")}},
	}
	m := placeholder.Protect(inlines)
	if len(m) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(m))
	}
	if inlines[0].Children[0].Text != "x000y" {
		t.Errorf("nested code not protected: %q", inlines[0].Children[0].Text)
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	inlines := []*markdown.Inline{
		inlineText("Use "),
		inlineCode("fmt.Println"),
		inlineText(" and "),
		inlineCode("os.Exit"),
	}
	m := placeholder.Protect(inlines)
	placeholder.Restore(inlines, m)

	if inlines[1].Text != "fmt.Println" || inlines[3].Text != "os.Exit" {
		t.Errorf("round-trip failed: %q, %q", inlines[1].Text, inlines[3].Text)
	}
	if len(m) != 0 {
		t.Errorf("expected all entries consumed, %d left", len(m))
	}
}

func TestRestore_LostTokenLeftInMap(t *testing.T) {
	inlines := []*markdown.Inline{inlineCode("content")}
	m := placeholder.Protect(inlines)

	// Simulates a translation that dropped the code span entirely.
	placeholder.Restore(nil, m)
	if len(m) != 1 {
		t.Errorf("expected unconsumed entry to stay in map, got %d entries", len(m))
	}
}
