package extraction

import (
	"regexp"

	"assurdoc/internal/domain"
)

// personalRule binds one PersonalInfo field to its ordered pattern list.
// The first pattern that matches wins; later rules never overwrite a field
// already set.
type personalRule struct {
	champ    string
	patterns []*regexp.Regexp
	assign   func(*domain.PersonalInfo, string)
}

var personalRules = []personalRule{
	{
		champ: "nom",
		patterns: compile(
			`(?im)^\s*nom(?:\s+de\s+famille)?\s*[:\-]\s*`+lineValue,
			`(?im)^\s*surname\s*[:\-]\s*`+lineValue,
			`(?im)^\s*nom\s+et\s+pr[ée]nom\s*[:\-]\s*([^\n:;,]+)`,
		),
		assign: func(p *domain.PersonalInfo, v string) { p.Nom = v },
	},
	{
		champ: "prenom",
		patterns: compile(
			`(?im)^\s*pr[ée]nom(?:\(s\))?\s*[:\-]\s*`+lineValue,
			`(?im)^\s*given\s+names?\s*[:\-]\s*`+lineValue,
		),
		assign: func(p *domain.PersonalInfo, v string) { p.Prenom = v },
	},
	{
		champ: "date_naissance",
		patterns: compile(
			`(?i)date\s+de\s+naissance\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`,
			`(?i)n[ée]\(?e?\)?\s+le\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`,
			`(?i)date\s+of\s+birth\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`,
			`(?i)naissance\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`,
		),
		assign: func(p *domain.PersonalInfo, v string) { p.DateNaissance = v },
	},
	{
		champ: "sexe",
		patterns: compile(
			`(?im)^\s*sexe\s*[:\-]\s*(masculin|f[ée]minin|homme|femme|[MF])\b`,
			`(?im)^\s*sex\s*[:\-]\s*(male|female|[MF])\b`,
		),
		assign: func(p *domain.PersonalInfo, v string) { p.Sexe = v },
	},
	{
		champ: "telephone",
		patterns: compile(
			`(?i)t[ée]l(?:[ée]phone)?\.?\s*[:\-]?\s*((?:\+?\d[\d\s.\-]{7,}\d))`,
			`(?i)portable\s*[:\-]?\s*((?:\+?\d[\d\s.\-]{7,}\d))`,
			`(?i)phone\s*[:\-]?\s*((?:\+?\d[\d\s.\-]{7,}\d))`,
		),
		assign: func(p *domain.PersonalInfo, v string) { p.Telephone = v },
	},
	{
		champ: "email",
		patterns: compile(
			`(?i)e-?mail\s*[:\-]?\s*([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+)`,
			`(?i)courriel\s*[:\-]?\s*([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+)`,
			`([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`,
		),
		assign: func(p *domain.PersonalInfo, v string) { p.Email = v },
	},
	{
		champ: "adresse",
		patterns: compile(
			`(?im)^\s*adresse(?:\s+postale)?\s*[:\-]\s*`+lineValue,
			`(?im)^\s*domicile\s*[:\-]\s*`+lineValue,
			`(?im)^\s*address\s*[:\-]\s*`+lineValue,
		),
		assign: func(p *domain.PersonalInfo, v string) { p.Adresse = v },
	},
	{
		champ: "ville",
		patterns: compile(
			`(?im)^\s*ville\s*[:\-]\s*`+lineValue,
			`(?im)^\s*commune\s*[:\-]\s*`+lineValue,
			`(?im)^\s*city\s*[:\-]\s*`+lineValue,
		),
		assign: func(p *domain.PersonalInfo, v string) { p.Ville = v },
	},
	{
		champ: "pays",
		patterns: compile(
			`(?im)^\s*pays(?:\s+de\s+r[ée]sidence)?\s*[:\-]\s*`+lineValue,
			`(?im)^\s*nationalit[ée]\s*[:\-]\s*`+lineValue,
			`(?im)^\s*country\s*[:\-]\s*`+lineValue,
		),
		assign: func(p *domain.PersonalInfo, v string) { p.Pays = v },
	},
	{
		champ: "destination_voyage",
		patterns: compile(
			`(?im)^\s*destination(?:\s+du\s+voyage)?\s*[:\-]\s*`+lineValue,
			`(?im)^\s*pays\s+de\s+destination\s*[:\-]\s*`+lineValue,
		),
		assign: func(p *domain.PersonalInfo, v string) { p.DestinationVoyage = v },
	},
	{
		champ: "frequence_voyage",
		patterns: compile(
			`(?im)^\s*fr[ée]quence\s+(?:de\s+|des\s+)?voyages?\s*[:\-]\s*`+lineValue,
			`(?im)^\s*voyages?\s+par\s+an\s*[:\-]\s*`+lineValue,
		),
		assign: func(p *domain.PersonalInfo, v string) { p.FrequenceVoyage = v },
	},
}

// ExtractPersonalInfo maps raw OCR text to structured identity fields.
// Unmatched fields stay at their empty default; no extraction failure is
// fatal.
func ExtractPersonalInfo(text string) domain.PersonalInfo {
	var info domain.PersonalInfo
	for _, rule := range personalRules {
		if v := firstMatch(text, rule.patterns); v != "" {
			rule.assign(&info, v)
		}
	}
	return info
}
