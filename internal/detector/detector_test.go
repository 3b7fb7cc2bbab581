package detector_test

import (
	"testing"

	"github.com/valpere/peremd/internal/detector"
)

func TestDetectISO_English(t *testing.T) {
	d := detector.New("EN", "UK")
	code, ok := d.DetectISO("The quick brown fox jumps over the lazy dog near the river bank.")
	if !ok {
		t.Fatal("expected a detection result")
	}
	if code != "EN" {
		t.Errorf("expected EN, got %s", code)
	}
}

func TestDetectISO_EmptyText(t *testing.T) {
	d := detector.New("EN", "UK")
	if _, ok := d.DetectISO(""); ok {
		t.Error("empty text should not detect")
	}
}
