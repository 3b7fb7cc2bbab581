package marker_test

import (
	"testing"

	"github.com/valpere/peremd/internal/marker"
)

func TestUnwrap_RoundTrip(t *testing.T) {
	texts := []string{
		"Hello, world!",
		"# A heading",
		"- starts like a list item",
		"trailing punctuation...",
	}
	for _, text := range texts {
		got, res := marker.Unwrap(marker.Wrap(text))
		if got != text {
			t.Errorf("round-trip of %q gave %q", text, got)
		}
		if !res.Clean() {
			t.Errorf("expected clean result for %q, got %+v", text, res)
		}
	}
}

func TestUnwrap_StartMissing(t *testing.T) {
	got, res := marker.Unwrap("some text" + marker.End)
	if got != "some text" {
		t.Errorf("expected %q, got %q", "some text", got)
	}
	if !res.StartMissing || res.EndMissing {
		t.Errorf("expected only StartMissing, got %+v", res)
	}
}

func TestUnwrap_EndMissing(t *testing.T) {
	got, res := marker.Unwrap(marker.Start + "some text")
	if got != "some text" {
		t.Errorf("expected %q, got %q", "some text", got)
	}
	if res.StartMissing || !res.EndMissing {
		t.Errorf("expected only EndMissing, got %+v", res)
	}
}

func TestUnwrap_FuzzyStartRemnant(t *testing.T) {
	// The service dropped the dot and rearranged the colon.
	got, res := marker.Unwrap("xyz1: some text" + marker.End)
	if got != "some text" {
		t.Errorf("expected %q, got %q", "some text", got)
	}
	if !res.StartMissing {
		t.Errorf("expected StartMissing, got %+v", res)
	}
}

func TestUnwrap_ColonArtifactsTrimmed(t *testing.T) {
	// When a sentinel is lost its construction colons can leak into the
	// payload edges; they are trimmed only in that case.
	got, _ := marker.Unwrap("xyz1 :text:")
	if got != "text" {
		t.Errorf("expected %q, got %q", "text", got)
	}

	// With both sentinels intact, payload-edge colons are preserved.
	got, res := marker.Unwrap(marker.Wrap(":text:"))
	if got != ":text:" {
		t.Errorf("expected %q, got %q", ":text:", got)
	}
	if !res.Clean() {
		t.Errorf("expected clean result, got %+v", res)
	}
}

func TestUnwrap_BothMissing(t *testing.T) {
	got, res := marker.Unwrap("plain translated text")
	if got != "plain translated text" {
		t.Errorf("expected text back, got %q", got)
	}
	if !res.StartMissing || !res.EndMissing {
		t.Errorf("expected both sentinels missing, got %+v", res)
	}
}

func TestProtectedEntries_IdentityPairs(t *testing.T) {
	entries := marker.ProtectedEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for k, v := range entries {
		if k != v {
			t.Errorf("expected identity entry, got %q -> %q", k, v)
		}
	}
	if _, ok := entries["XYZ.1"]; !ok {
		t.Error("expected the start sentinel core as an entry")
	}
}
