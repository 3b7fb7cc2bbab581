package validator_test

import (
	"strings"
	"testing"

	"github.com/valpere/peremd/internal/placeholder"
	"github.com/valpere/peremd/internal/validator"
)

func TestRepairFragment_CleanPassThrough(t *testing.T) {
	ph := placeholder.Map{"x000y": "fmt.Println"}
	got, warnings, err := validator.RepairFragment("Use `x000y` to print.", ph)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if got != "Use `x000y` to print." {
		t.Errorf("text changed: %q", got)
	}
	if len(ph) != 1 {
		t.Errorf("map should keep recovered entries, got %d", len(ph))
	}
}

func TestRepairFragment_CaseNormalized(t *testing.T) {
	ph := placeholder.Map{"x000y": "code"}
	got, _, err := validator.RepairFragment("See `X000Y` here.", ph)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "`x000y`") {
		t.Errorf("token not canonicalized: %q", got)
	}
}

func TestRepairFragment_QuoteArtifactsReplaced(t *testing.T) {
	ph := placeholder.Map{"x000y": "code"}
	got, _, err := validator.RepairFragment("Use 'x000y' here.", ph)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "`x000y`") {
		t.Errorf("quotes not replaced by delimiters: %q", got)
	}
	if strings.Contains(got, "'") {
		t.Errorf("quote artifact survived: %q", got)
	}
}

func TestRepairFragment_MissingTokensTolerated(t *testing.T) {
	ph := placeholder.Map{"x000y": "a", "x001y": "b", "x002y": "c"}
	got, warnings, err := validator.RepairFragment("Only `x001y` survived.", ph)
	if err != nil {
		t.Fatalf("two losses should be tolerated, got: %v", err)
	}
	if len(warnings) != 2 {
		t.Errorf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	if len(ph) != 1 {
		t.Errorf("expected lost entries removed, map has %d", len(ph))
	}
	if _, ok := ph["x001y"]; !ok {
		t.Error("surviving token should stay in map")
	}
	if !strings.Contains(got, "`x001y`") {
		t.Errorf("surviving token not delimited: %q", got)
	}
}

func TestRepairFragment_TooManyMissing(t *testing.T) {
	ph := placeholder.Map{"x000y": "a", "x001y": "b", "x002y": "c"}
	if _, _, err := validator.RepairFragment("Nothing survived.", ph); err == nil {
		t.Error("expected error for three lost tokens")
	}
}

func TestRepairFragment_OddDelimitersCollapsed(t *testing.T) {
	ph := placeholder.Map{"x000y": "a"}
	got, warnings, err := validator.RepairFragment("```x000y`` B", ph)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "`x000y` B" {
		t.Errorf("expected collapsed runs, got %q", got)
	}
	if len(warnings) == 0 {
		t.Error("expected a collapse warning")
	}
}

func TestRepairFragment_OddDelimitersFatal(t *testing.T) {
	ph := placeholder.Map{"x000y": "a"}
	if _, _, err := validator.RepairFragment("`x000y` and ` stray", ph); err == nil {
		t.Error("expected error for unpairable delimiter")
	}
}

func TestIsValid_ShortTextPasses(t *testing.T) {
	v := validator.New("EN", "UK")
	ok, err := v.IsValid("Hi.", "UK")
	if !ok || err != nil {
		t.Errorf("short text should pass, got ok=%v err=%v", ok, err)
	}
}

func TestIsValid_EmptyFails(t *testing.T) {
	v := validator.New("EN", "UK")
	if ok, _ := v.IsValid("   ", "UK"); ok {
		t.Error("blank translation should fail")
	}
}

func TestIsValid_DetectsMismatch(t *testing.T) {
	v := validator.New("EN", "UK")
	ok, err := v.IsValid("The quick brown fox jumps over the lazy dog near the river bank.", "UK")
	if ok {
		t.Error("clear English should not validate as Ukrainian")
	}
	if err == nil {
		t.Error("expected an error naming the detected language")
	}
}

func TestIsValid_MatchingLanguage(t *testing.T) {
	v := validator.New("EN", "UK")
	ok, err := v.IsValid("The quick brown fox jumps over the lazy dog near the river bank.", "EN")
	if !ok || err != nil {
		t.Errorf("expected valid English, got ok=%v err=%v", ok, err)
	}
}
