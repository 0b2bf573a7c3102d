package routing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assurdoc/internal/domain"
)

func insurer(nom string, zones, pays []string, international bool) domain.Insurer {
	return domain.Insurer{
		ID:            uuid.New(),
		Nom:           nom,
		Zones:         zones,
		Pays:          pays,
		International: international,
	}
}

func analysisTo(destination, pays string) *domain.DemandeAnalysis {
	return &domain.DemandeAnalysis{
		DemandeID: "d-1",
		Personal:  domain.PersonalInfo{DestinationVoyage: destination, Pays: pays},
	}
}

func TestMatch_ByZone(t *testing.T) {
	asie := insurer("Asie Assur", []string{"Asie"}, nil, false)
	europe := insurer("Euro Assur", []string{"Europe"}, nil, false)

	got := Match(analysisTo("Thaïlande", "France"), []domain.Insurer{asie, europe})

	require.Len(t, got, 1)
	assert.Equal(t, "Asie Assur", got[0].Nom)
}

func TestMatch_ByCountryWhenNoZoneMatches(t *testing.T) {
	fr := insurer("France Assur", nil, []string{"France"}, false)
	other := insurer("Autre", nil, []string{"Maroc"}, false)

	got := Match(analysisTo("", "France"), []domain.Insurer{fr, other})

	require.Len(t, got, 1)
	assert.Equal(t, "France Assur", got[0].Nom)
}

func TestMatch_DestinationAmongCoveredCountries(t *testing.T) {
	jp := insurer("Japon Direct", nil, []string{"Japon"}, false)

	got := Match(analysisTo("Japon", ""), []domain.Insurer{jp})

	require.Len(t, got, 1)
	assert.Equal(t, "Japon Direct", got[0].Nom)
}

func TestMatch_InternationalFallback(t *testing.T) {
	local := insurer("Local", []string{"Europe"}, nil, false)
	intl := insurer("Monde Assur", nil, nil, true)

	got := Match(analysisTo("Antarctique", ""), []domain.Insurer{local, intl})

	require.Len(t, got, 1)
	assert.Equal(t, "Monde Assur", got[0].Nom)
}

func TestMatch_NeverEmptyWhenInsurersExist(t *testing.T) {
	a := insurer("Premier", []string{"Asie"}, nil, false)
	b := insurer("Second", []string{"Afrique"}, nil, false)

	got := Match(analysisTo("Antarctique", ""), []domain.Insurer{a, b})

	require.Len(t, got, 1)
	assert.Equal(t, "Premier", got[0].Nom)
}

func TestMatch_NoInsurers(t *testing.T) {
	assert.Nil(t, Match(analysisTo("France", ""), nil))
}

func TestMatch_CaseInsensitive(t *testing.T) {
	asie := insurer("Asie Assur", []string{"ASIE"}, nil, false)

	got := Match(analysisTo("thaïlande", ""), []domain.Insurer{asie})

	require.Len(t, got, 1)
}
