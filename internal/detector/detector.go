// Package detector wraps the lingua language detector behind the ISO
// 639-1 codes the rest of the tool speaks.
package detector

import (
	lingua "github.com/pemistahl/lingua-go"
)

type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector. When codes are given, only those languages are
// considered; detection against our fixed supported set is both cheaper
// and less ambiguous than loading every model lingua ships.
func New(codes ...string) *Detector {
	builder := lingua.NewLanguageDetectorBuilder()
	if len(codes) == 0 {
		return &Detector{detector: builder.FromAllLanguages().Build()}
	}
	iso := make([]lingua.IsoCode639_1, 0, len(codes))
	for _, code := range codes {
		iso = append(iso, lingua.GetIsoCode639_1FromValue(code))
	}
	return &Detector{detector: builder.FromIsoCodes639_1(iso...).Build()}
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// DetectISO returns the detected language as an upper-case ISO 639-1 code.
func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return lang.IsoCode639_1().String(), true
}
