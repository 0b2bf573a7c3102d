package extraction

import (
	"regexp"
	"strings"
)

// maxFieldLen clips extracted values to reject runaway matches.
const maxFieldLen = 200

// Affirmative tokens, including common OCR misreads of "Oui".
var affirmativeTokens = map[string]bool{
	"oui":   true,
	"qui":   true, // OCR misread of Oui
	"0ui":   true, // OCR misread of Oui
	"out":   true, // OCR misread of Oui
	"x":     true,
	"✓":     true,
	"√":     true,
	"coché": true,
	"coche": true,
	"yes":   true,
	"vrai":  true,
}

var negativeTokens = map[string]bool{
	"non":    true,
	"no":     true,
	"aucun":  true,
	"aucune": true,
	"faux":   true,
	"0":      true,
}

// isAffirmative reports whether a raw extracted token means "yes",
// tolerating scanning noise.
func isAffirmative(tok string) bool {
	return affirmativeTokens[strings.ToLower(strings.TrimSpace(tok))]
}

// isNegative reports whether a raw extracted token means "no".
func isNegative(tok string) bool {
	return negativeTokens[strings.ToLower(strings.TrimSpace(tok))]
}

// cleanValue trims an extracted value and clips it to maxFieldLen runes.
func cleanValue(v string) string {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, ".,;")
	v = strings.TrimSpace(v)
	if r := []rune(v); len(r) > maxFieldLen {
		v = string(r[:maxFieldLen])
	}
	return v
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// firstMatch applies ordered patterns to text and returns the first capture
// group of the first pattern that matches. Absence of a match is a normal,
// representable state: it returns "".
func firstMatch(text string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); len(m) > 1 {
			if v := cleanValue(m[1]); v != "" {
				return v
			}
		}
	}
	return ""
}

// Capture shared by value-style fields: everything up to end of line,
// excluding separators that start the next label.
const lineValue = `([^\n:;]+)`

// Answer token of a yes/no questionnaire entry.
const yesNoValue = `(oui|non|qui|0ui|out|yes|no|x|✓|√|coché|coche|aucune?)`
