package frontmatter_test

import (
	"testing"

	"github.com/valpere/peremd/internal/frontmatter"
)

func TestExtract_NoFrontMatter(t *testing.T) {
	src := []byte("# Just a document\n")
	m, body, err := frontmatter.Extract(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != nil {
		t.Error("expected nil matter")
	}
	if string(body) != string(src) {
		t.Errorf("body changed: %q", body)
	}
}

func TestExtract_UnclosedFenceIsNotFrontMatter(t *testing.T) {
	src := []byte("---\ntitle: Hello\n")
	m, body, err := frontmatter.Extract(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != nil {
		t.Error("expected nil matter for unclosed fence")
	}
	if string(body) != string(src) {
		t.Errorf("body changed: %q", body)
	}
}

func TestExtract_SplitsBody(t *testing.T) {
	src := []byte("---\ntitle: Hello\n---\n\nBody text.\n")
	m, body, err := frontmatter.Extract(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil {
		t.Fatal("expected front matter")
	}
	if string(body) != "\nBody text.\n" {
		t.Errorf("unexpected body: %q", body)
	}
	title, ok := m.Title()
	if !ok || title != "Hello" {
		t.Errorf("expected title Hello, got %q (found=%v)", title, ok)
	}
}

func TestExtract_DotsCloseFence(t *testing.T) {
	src := []byte("---\ntitle: Hello\n...\nBody.\n")
	m, body, err := frontmatter.Extract(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil {
		t.Fatal("expected front matter")
	}
	if string(body) != "Body.\n" {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestSetTitle_RoundTrip(t *testing.T) {
	src := []byte("---\ntitle: Hello\nauthor: me\n---\nBody.\n")
	m, _, err := frontmatter.Extract(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.SetTitle("Bonjour")

	out, err := m.Render()
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	want := "---\ntitle: Bonjour\nauthor: me\n---\n"
	if string(out) != want {
		t.Errorf("render:\n  want: %q\n  got:  %q", want, out)
	}
}

func TestTitle_Absent(t *testing.T) {
	src := []byte("---\nauthor: me\n---\nBody.\n")
	m, _, err := frontmatter.Extract(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.Title(); ok {
		t.Error("expected no title")
	}
	// SetTitle on a titleless document is a no-op.
	m.SetTitle("ignored")
	out, err := m.Render()
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	want := "---\nauthor: me\n---\n"
	if string(out) != want {
		t.Errorf("render:\n  want: %q\n  got:  %q", want, out)
	}
}
