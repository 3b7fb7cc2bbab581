// Package validator repairs translated fragments and checks that they can
// be trusted: every placeholder token must survive the round trip (a small
// number of losses is tolerated), code-span delimiters must pair up, and
// the text should read as the target language.
package validator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/valpere/peremd/internal/detector"
	"github.com/valpere/peremd/internal/placeholder"
)

// missTolerance bounds how many placeholder tokens may vanish from one
// block before its translation is rejected outright.
const missTolerance = 2

// delimiter is the inline-code delimiter character.
const delimiter = "`"

var delimiterRun = regexp.MustCompile("`+")

// RepairFragment normalizes and re-delimits every placeholder token of ph
// found in the translated text. Tokens are matched case-insensitively and
// rewritten to canonical form; tokens missing entirely are dropped from ph
// with a warning, up to missTolerance per block — beyond that the fragment
// is rejected. Afterwards the total delimiter count must be even; an odd
// count triggers a run-collapse repair (adjacent spans merged by the
// service) and is fatal if it persists.
//
// ph keeps the entries for recovered tokens so the caller can restore them
// into the re-parsed tree; only tolerated losses are removed.
func RepairFragment(text string, ph placeholder.Map) (string, []string, error) {
	var warnings []string

	// Map order is not encounter order; sorting the zero-padded tokens is.
	keys := make([]string, 0, len(ph))
	for k := range ph {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	missed := 0
	for _, key := range keys {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(key))
		text = re.ReplaceAllLiteralString(text, key)

		loc := strings.Index(text, key)
		if loc == -1 {
			missed++
			if missed > missTolerance {
				return "", warnings, fmt.Errorf(
					"%d code placeholders lost in translation, cannot trust the result", missed)
			}
			warnings = append(warnings, fmt.Sprintf(
				"code placeholder %s (content %q) missing from translation, keeping original out", key, ph[key]))
			delete(ph, key)
			continue
		}
		text = reinsertDelimiters(text, loc, len(key))
	}

	if strings.Count(text, delimiter)%2 != 0 {
		text = delimiterRun.ReplaceAllString(text, delimiter)
		warnings = append(warnings, "collapsed adjacent code delimiters in translation")
		if strings.Count(text, delimiter)%2 != 0 {
			return "", warnings, fmt.Errorf("odd number of code delimiters after repair: %q", text)
		}
	}

	return text, warnings, nil
}

// reinsertDelimiters forces backticks immediately around the token at loc.
// The characters adjacent to the token are the rendered delimiters, which
// the service sometimes rewrites into quotes; they are replaced when they
// look like delimiter artifacts and kept otherwise.
func reinsertDelimiters(text string, loc, keyLen int) string {
	head := text[:loc]
	tail := text[loc+keyLen:]
	if r, size := lastRune(head); size > 0 && isDelimiterArtifact(r) {
		head = head[:len(head)-size]
	}
	if r, size := firstRune(tail); size > 0 && isDelimiterArtifact(r) {
		tail = tail[size:]
	}
	return head + delimiter + text[loc:loc+keyLen] + delimiter + tail
}

func isDelimiterArtifact(r rune) bool {
	switch r {
	case '`', '\'', '"', '‘', '’', '“', '”', '«', '»':
		return true
	}
	return false
}

func firstRune(s string) (rune, int) {
	for _, r := range s {
		return r, len(string(r))
	}
	return 0, 0
}

func lastRune(s string) (rune, int) {
	var last rune
	size := 0
	for _, r := range s {
		last = r
		size = len(string(r))
	}
	if size == 0 {
		return 0, 0
	}
	return last, size
}

// minValidationLength is the minimum rune count required to attempt
// language detection; shorter texts produce unreliable results and pass
// without validation.
const minValidationLength = 20

// Validator spot-checks that a translated fragment is written in the
// expected target language. The underlying detector is expensive to
// build; reuse the instance across blocks.
type Validator struct {
	det *detector.Detector
}

// New creates a Validator restricted to the given ISO codes (all lingua
// languages when empty).
func New(codes ...string) *Validator {
	return &Validator{det: detector.New(codes...)}
}

// IsValid returns true when translatedText appears to be written in
// targetLang. Short or ambiguous texts pass without error; a confident
// mismatch returns false and an error naming both codes.
func (v *Validator) IsValid(translatedText, targetLang string) (bool, error) {
	if targetLang == "" {
		return true, nil
	}

	text := strings.TrimSpace(translatedText)
	if text == "" {
		return false, fmt.Errorf("translation is empty")
	}
	if len([]rune(text)) < minValidationLength {
		return true, nil
	}

	detected, ok := v.det.DetectISO(text)
	if !ok {
		return true, nil
	}
	if !strings.EqualFold(detected, targetLang) {
		return false, fmt.Errorf("expected %s but detected %s", targetLang, detected)
	}
	return true, nil
}
