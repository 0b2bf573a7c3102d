// Package routing selects which insurers are concerned by a finished
// analysis. Matching is by coverage zone, then by covered country, then by
// destination; the result is never empty as long as insurers exist.
package routing

import (
	"strings"

	"assurdoc/internal/domain"
)

// zoneByCountry maps travel destinations to the coarse coverage zones
// insurers declare. Lookups are lowercase.
var zoneByCountry = map[string]string{
	"france":      "europe",
	"espagne":     "europe",
	"italie":      "europe",
	"allemagne":   "europe",
	"portugal":    "europe",
	"belgique":    "europe",
	"suisse":      "europe",
	"royaume-uni": "europe",

	"thaïlande": "asie",
	"thailande": "asie",
	"japon":     "asie",
	"chine":     "asie",
	"inde":      "asie",
	"vietnam":   "asie",
	"indonésie": "asie",
	"indonesie": "asie",

	"maroc":          "afrique",
	"tunisie":        "afrique",
	"algérie":        "afrique",
	"algerie":        "afrique",
	"sénégal":        "afrique",
	"senegal":        "afrique",
	"afrique du sud": "afrique",

	"états-unis": "amerique",
	"etats-unis": "amerique",
	"usa":        "amerique",
	"canada":     "amerique",
	"brésil":     "amerique",
	"bresil":     "amerique",
	"mexique":    "amerique",

	"australie":        "oceanie",
	"nouvelle-zélande": "oceanie",
	"nouvelle-zelande": "oceanie",
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if norm(item) == v {
			return true
		}
	}
	return false
}

// Match returns the insurers concerned by the analysis. Priority per
// insurer: coverage zone of the destination, then covered country, then
// the destination named verbatim among covered countries. When nothing
// matches, international insurers take the demande; when none exist either,
// the first insurer does, so a demande is never left unrouted.
func Match(a *domain.DemandeAnalysis, insurers []domain.Insurer) []domain.Insurer {
	if len(insurers) == 0 {
		return nil
	}

	destination := norm(a.Personal.DestinationVoyage)
	pays := norm(a.Personal.Pays)
	zone := zoneByCountry[destination]

	var out []domain.Insurer
	for _, ins := range insurers {
		switch {
		case zone != "" && containsFold(ins.Zones, zone):
			out = append(out, ins)
		case pays != "" && containsFold(ins.Pays, pays):
			out = append(out, ins)
		case destination != "" && containsFold(ins.Pays, destination):
			out = append(out, ins)
		}
	}
	if len(out) > 0 {
		return out
	}

	for _, ins := range insurers {
		if ins.International {
			out = append(out, ins)
		}
	}
	if len(out) > 0 {
		return out
	}

	return insurers[:1]
}
