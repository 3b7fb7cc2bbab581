// Package marker implements the boundary sentinel protocol. Translation
// units that start or end with Markdown-significant characters are prone
// to having those characters trimmed or reformatted by the service, so
// every outgoing unit is bracketed by fixed sentinels the service is told
// not to touch; Unwrap strips them back off and reports what it found.
package marker

import (
	"regexp"
	"strings"
)

// Start is prepended to every translation unit. It ends with ": " rather
// than a bare "." because a trailing period can make the service eat the
// following space, and the space keeps the sentinel off the first word.
const Start = "XYZ.1: "

// End is the character-reversed Start, suffixed to the unit. Reversing
// keeps an accidental occurrence of one sentinel from matching the other.
var End = reverse(Start)

// Result reports which sentinels were recovered from a reply.
type Result struct {
	StartMissing bool
	EndMissing   bool
}

// Clean reports whether both sentinels were found intact.
func (r Result) Clean() bool {
	return !r.StartMissing && !r.EndMissing
}

// Wrap brackets text with the start and end sentinels.
func Wrap(text string) string {
	return Start + text + End
}

// Fuzzy sentinel remnants: the service occasionally drops the dot or
// colon, or shifts whitespace around the marker.
var (
	fuzzyStart = regexp.MustCompile(`(?i)^[\s:]*xyz\.?\s*1[.:]*\s?`)
	fuzzyEnd   = regexp.MustCompile(`(?i)\s?[.:]*1\.?\s*zyx[\s:]*$`)
)

// Unwrap strips the sentinels from a translated reply. A missing sentinel
// is reported in the Result rather than failing; in that case the matching
// edge is cleaned up best-effort and stray colon artifacts left over from
// the sentinel construction are trimmed.
func Unwrap(text string) (string, Result) {
	out := strings.TrimSpace(text)
	var res Result
	stripColons := false // only when a sentinel was not found cleanly

	if strings.HasPrefix(out, Start) {
		out = strings.TrimPrefix(out, Start)
	} else {
		res.StartMissing = true
		out = fuzzyStart.ReplaceAllString(out, "")
		stripColons = true
	}

	if strings.HasSuffix(out, End) {
		out = strings.TrimSuffix(out, End)
	} else {
		res.EndMissing = true
		out = fuzzyEnd.ReplaceAllString(out, "")
		stripColons = true
	}

	if stripColons {
		out = strings.Trim(out, ":")
	}
	return out, res
}

// ProtectedEntries returns the sentinel cores as identity glossary entries
// so any glossary sent to the service forbids altering them.
func ProtectedEntries() map[string]string {
	return map[string]string{
		strings.TrimSpace(strings.TrimSuffix(Start, ": ")): strings.TrimSpace(strings.TrimSuffix(Start, ": ")),
		strings.TrimSpace(strings.TrimPrefix(End, " :")):   strings.TrimSpace(strings.TrimPrefix(End, " :")),
	}
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
