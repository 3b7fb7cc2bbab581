// Package lang holds the fixed set of languages the translation service
// accepts and validates source/target pairs against it.
package lang

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is one entry of the supported set.
type Language struct {
	Code string
	Name string
}

// Supported lists every language accepted as a translation source or target.
var Supported = []Language{
	{"BG", "Bulgarian"},
	{"CS", "Czech"},
	{"DA", "Danish"},
	{"DE", "German"},
	{"EL", "Greek"},
	{"EN", "English"},
	{"ES", "Spanish"},
	{"ET", "Estonian"},
	{"FI", "Finnish"},
	{"FR", "French"},
	{"HU", "Hungarian"},
	{"ID", "Indonesian"},
	{"IT", "Italian"},
	{"JA", "Japanese"},
	{"KO", "Korean"},
	{"LT", "Lithuanian"},
	{"LV", "Latvian"},
	{"NB", "Norwegian (Bokmål)"},
	{"NL", "Dutch"},
	{"PL", "Polish"},
	{"PT", "Portuguese (all Portuguese varieties mixed)"},
	{"RO", "Romanian"},
	{"RU", "Russian"},
	{"SK", "Slovak"},
	{"SL", "Slovenian"},
	{"SV", "Swedish"},
	{"TR", "Turkish"},
	{"UK", "Ukrainian"},
	{"ZH", "Chinese"},
}

// glossaryCapable is the subset of Supported between which the service
// accepts glossaries.
var glossaryCapable = map[string]bool{
	"DE": true, "EN": true, "ES": true, "FR": true, "IT": true, "JA": true,
	"NL": true, "PL": true, "PT": true, "RU": true, "ZH": true,
}

// Pair is a validated (source, target) language combination. Codes are
// stored upper-cased.
type Pair struct {
	Source string
	Target string
}

// NewPair validates both codes against the supported set and rejects
// identical source and target languages.
func NewPair(source, target string) (Pair, error) {
	src, err := normalize(source)
	if err != nil {
		return Pair{}, fmt.Errorf("source language: %w", err)
	}
	tgt, err := normalize(target)
	if err != nil {
		return Pair{}, fmt.Errorf("target language: %w", err)
	}
	if src == tgt {
		return Pair{}, fmt.Errorf("source and target languages are the same (%s)", src)
	}
	return Pair{Source: src, Target: tgt}, nil
}

// GlossarySupported reports whether both languages of the pair accept
// glossaries.
func (p Pair) GlossarySupported() bool {
	return glossaryCapable[p.Source] && glossaryCapable[p.Target]
}

func (p Pair) String() string {
	return p.Source + "→" + p.Target
}

// IsGlossaryCapable reports whether a single upper-cased code is in the
// glossary-capable subset.
func IsGlossaryCapable(code string) bool {
	return glossaryCapable[strings.ToUpper(code)]
}

// Codes returns the supported codes in table order.
func Codes() []string {
	codes := make([]string, len(Supported))
	for i, l := range Supported {
		codes[i] = l.Code
	}
	return codes
}

// GlossaryCodes returns the glossary-capable codes in table order.
func GlossaryCodes() []string {
	var codes []string
	for _, l := range Supported {
		if glossaryCapable[l.Code] {
			codes = append(codes, l.Code)
		}
	}
	return codes
}

func normalize(code string) (string, error) {
	if len(code) != 2 {
		return "", fmt.Errorf("%q is not a two-letter language code (accepted: %s)",
			code, strings.Join(Codes(), ", "))
	}
	if _, err := language.Parse(code); err != nil {
		return "", fmt.Errorf("%q is not a valid language code: %w", code, err)
	}
	up := strings.ToUpper(code)
	for _, l := range Supported {
		if l.Code == up {
			return up, nil
		}
	}
	return "", fmt.Errorf("language %s is not in the accepted set: %s",
		up, strings.Join(Codes(), ", "))
}
