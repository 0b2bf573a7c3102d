package analysis

import (
	"fmt"
	"strings"

	"assurdoc/internal/domain"
)

// identityField is one cross-document comparison: how to read the value
// off a document analysis and how to normalize it before comparing.
type identityField struct {
	champ     string
	value     func(domain.DocumentAnalysis) string
	normalize func(string) string
}

var identityFields = []identityField{
	{
		champ:     "nom",
		value:     func(a domain.DocumentAnalysis) string { return a.Personal.Nom },
		normalize: normalizeName,
	},
	{
		champ:     "date_naissance",
		value:     func(a domain.DocumentAnalysis) string { return a.Personal.DateNaissance },
		normalize: normalizeDate,
	},
	{
		champ:     "sexe",
		value:     func(a domain.DocumentAnalysis) string { return a.Personal.Sexe },
		normalize: normalizeSex,
	},
}

// normalizeName uppercases and trims so that casing and stray whitespace
// between documents never count as a mismatch.
func normalizeName(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

// normalizeDate maps every separator to "/" so 12-05-1980 and 12/05/1980
// compare equal.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	r := strings.NewReplacer("-", "/", ".", "/", " ", "/")
	return r.Replace(s)
}

// normalizeSex reduces the usual spellings to M or F; anything else is
// compared as-is, uppercased.
func normalizeSex(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M", "H", "HOMME", "MASCULIN", "MALE":
		return "M"
	case "F", "FEMME", "FÉMININ", "FEMININ", "FEMALE":
		return "F"
	default:
		return strings.ToUpper(strings.TrimSpace(s))
	}
}

// CheckConsistency compares identity fields across the documents of one
// demande. The first document holding a value for a field is the reference;
// any later document holding a different normalized value yields a CRITICAL
// incoherence. Fields missing on either side are never a mismatch.
func CheckConsistency(analyses []domain.DocumentAnalysis) []domain.Incoherence {
	var out []domain.Incoherence

	for _, f := range identityFields {
		refValue := ""
		refNorm := ""
		refDoc := ""
		for _, a := range analyses {
			raw := strings.TrimSpace(f.value(a))
			if raw == "" {
				continue
			}
			norm := f.normalize(raw)
			if refNorm == "" {
				refValue, refNorm, refDoc = raw, norm, a.Document.Filename
				continue
			}
			if norm != refNorm {
				out = append(out, domain.Incoherence{
					Champ: f.champ,
					Description: fmt.Sprintf("Le champ %q diffère entre les documents %s et %s",
						f.champ, refDoc, a.Document.Filename),
					Valeur1:  refValue,
					Valeur2:  raw,
					Severite: domain.SeverityCritical,
				})
			}
		}
	}
	return out
}
