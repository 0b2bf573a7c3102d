package doccheck

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"assurdoc/internal/domain"
)

// expiryWarningWindow is the soft-warning horizon before expiry.
const expiryWarningWindow = 30 * 24 * time.Hour

var issueDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)date\s+de\s+d[ée]livrance\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
	regexp.MustCompile(`(?i)d[ée]livr[ée]\s+le\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
	regexp.MustCompile(`(?i)date\s+d'[ée]mission\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
	regexp.MustCompile(`(?i)date\s+of\s+issue\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
}

var expiryDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)date\s+d'expiration\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
	regexp.MustCompile(`(?i)expire\s+le\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
	regexp.MustCompile(`(?i)valable\s+jusqu'au\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
	regexp.MustCompile(`(?i)date\s+de\s+fin\s+de\s+validit[ée]\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
	regexp.MustCompile(`(?i)date\s+of\s+expiry\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
}

// ExtractDates pulls the issuance and expiry dates out of the text.
// Either may be empty.
func ExtractDates(text string) (issue, expiry string) {
	for _, p := range issueDatePatterns {
		if m := p.FindStringSubmatch(text); len(m) > 1 {
			issue = strings.TrimSpace(m[1])
			break
		}
	}
	for _, p := range expiryDatePatterns {
		if m := p.FindStringSubmatch(text); len(m) > 1 {
			expiry = strings.TrimSpace(m[1])
			break
		}
	}
	return issue, expiry
}

var dateLayouts = []string{
	"02/01/2006", "02-01-2006", "02.01.2006",
	"02/01/06", "2006-01-02",
}

// ParseDate parses the date shapes the extraction patterns produce.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
}

// CheckExpiry evaluates the expiry date against now. A past expiry is a
// fraud-grade finding; expiry within 30 days is a soft warning.
func CheckExpiry(expiry string, now time.Time) (estExpire bool, message string) {
	if expiry == "" {
		return false, ""
	}
	expDate, err := ParseDate(expiry)
	if err != nil {
		return false, ""
	}

	switch {
	case expDate.Before(now.Truncate(24 * time.Hour)):
		return true, fmt.Sprintf("Document expiré depuis le %s : signal de fraude potentiel", expiry)
	case expDate.Before(now.Add(expiryWarningWindow)):
		return false, fmt.Sprintf("Document proche de l'expiration (%s)", expiry)
	default:
		return false, ""
	}
}

// Checker runs the full metadata and validity pass over one raw document.
type Checker struct{}

// NewChecker creates a document validity checker.
func NewChecker() *Checker {
	return &Checker{}
}

// Check produces the validity findings for one document and its extracted
// fields. Degraded conditions are represented as data, never as errors; the
// pipeline always gets a result.
func (c *Checker) Check(doc domain.RawDocument, info domain.PersonalInfo, q domain.HealthQuestionnaire) domain.DocumentVerification {
	v := domain.DocumentVerification{
		TypeDocument:       DetectType(doc.Texte, doc.Filename),
		CoherenceInterDocs: true,
	}

	v.DateEmission, v.DateExpiration = ExtractDates(doc.Texte)
	v.EstExpire, v.MessageExpiration = CheckExpiry(v.DateExpiration, time.Now())

	v.QualiteOK, v.BesoinNouveauFichier, v.MessageQualite = CheckQuality(doc.ConfianceOCR, doc.Texte)
	v.EstComplet, v.DoitVerifier, v.MessageCompletude = CheckCompleteness(info, q)

	return v
}
