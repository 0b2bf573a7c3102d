// Package csvexport renders analyses as CSV for back-office tooling.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"assurdoc/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Demande ID",
	"Nom",
	"Prénom",
	"Destination",
	"Avis",
	"Action recommandée",
	"Score risque",
	"Niveau risque",
	"Probabilité acceptation",
	"Probabilité fraude",
	"Niveau fraude",
	"Score cohérence",
	"Score confiance",
	"Nb documents",
	"Nb incohérences",
	"Nb signaux fraude",
	"Créée le",
}

// Writer wraps csv.Writer for exporting analyses as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteAnalyses converts a batch of analyses to CSV rows and writes them.
func (w *Writer) WriteAnalyses(analyses []domain.DemandeAnalysis) error {
	for i := range analyses {
		if err := w.csv.Write(analysisToRow(&analyses[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func analysisToRow(a *domain.DemandeAnalysis) []string {
	row := make([]string, len(columns))
	row[0] = a.DemandeID
	row[1] = a.Personal.Nom
	row[2] = a.Personal.Prenom
	row[3] = a.Personal.DestinationVoyage
	row[4] = string(a.Avis)
	row[5] = a.ActionRecommandee
	row[6] = formatScore(a.Scores.ScoreRisque)
	row[7] = a.Scores.NiveauRisque
	row[8] = formatScore(a.Scores.ProbabiliteAcceptation)
	row[9] = formatScore(a.Scores.ProbabiliteFraude)
	row[10] = a.Scores.NiveauFraude
	row[11] = formatScore(a.Scores.ScoreCoherence)
	row[12] = formatScore(a.Scores.ScoreConfiance)
	row[13] = strconv.Itoa(len(a.Documents))
	row[14] = strconv.Itoa(len(a.Incoherences))
	row[15] = strconv.Itoa(len(a.SignauxFraude))
	row[16] = a.CreatedAt.Format(time.RFC3339)
	return row
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string) string {
	return fmt.Sprintf("%s_%s.csv", SanitizeFilename(name), time.Now().Format("2006-01-02"))
}
