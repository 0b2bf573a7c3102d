package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assurdoc/internal/domain"
)

func TestWriteAnalyses(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())

	created := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, w.WriteAnalyses([]domain.DemandeAnalysis{{
		DemandeID: "d-1",
		Personal:  domain.PersonalInfo{Nom: "DUPONT", Prenom: "Jean", DestinationVoyage: "Thaïlande"},
		Avis:      domain.AvisFavorable,
		Scores: domain.ScoreSet{
			ScoreRisque:            0.25,
			ProbabiliteAcceptation: 0.75,
			ProbabiliteFraude:      0.1,
			NiveauRisque:           domain.NiveauFaible,
		},
		Documents: []domain.DocumentAnalysis{{}, {}},
		CreatedAt: created,
	}}))
	w.Flush()
	require.NoError(t, w.Error())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, len(columns), len(records[1]))
	assert.Equal(t, "d-1", records[1][0])
	assert.Equal(t, "DUPONT", records[1][1])
	assert.Equal(t, "favorable", records[1][4])
	assert.Equal(t, "0.25", records[1][6])
	assert.Equal(t, "2", records[1][13])
	assert.Equal(t, created.Format(time.RFC3339), records[1][16])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "analyses_juin", SanitizeFilename("analyses juin"))
	assert.Equal(t, "a_b", SanitizeFilename("a///b"))
	assert.Equal(t, "rapport", SanitizeFilename("__rapport__"))
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename("analyses du jour")
	assert.Contains(t, name, "analyses_du_jour_")
	assert.Contains(t, name, ".csv")
}
