// Package ocr turns uploaded files into raw text plus a confidence grade.
// PDF text layers are extracted directly; plain text passes through. A file
// we cannot read still yields a degraded document so the pipeline can run
// and report the problem as data.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"

	"assurdoc/internal/domain"
)

// degradedConfidence is reported when a file is recognized but its text
// cannot be extracted cleanly.
const degradedConfidence = 0.3

// Engine extracts text from uploaded documents.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Extract sniffs the file type and extracts its text. Unsupported types
// are an error; a supported but unreadable file yields a degraded document
// with partial text and low confidence, not an error.
func (e *Engine) Extract(ctx context.Context, filename string, data []byte) (domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return domain.RawDocument{}, err
	}

	mime := mimetype.Detect(data)
	doc := domain.RawDocument{
		Filename: filename,
		MimeType: mime.String(),
	}

	switch {
	case mime.Is("application/pdf"):
		text, err := extractPDF(data)
		doc.Texte = text
		if err != nil {
			doc.ConfianceOCR = degradedConfidence
			return doc, nil
		}
		doc.ConfianceOCR = gradeText(text)
		return doc, nil

	case strings.HasPrefix(mime.String(), "text/"):
		doc.Texte = string(data)
		doc.ConfianceOCR = gradeText(doc.Texte)
		return doc, nil

	default:
		return domain.RawDocument{}, fmt.Errorf("%w: %s (%s)", domain.ErrUnsupportedFileType, filename, mime.String())
	}
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var buf bytes.Buffer
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	if _, err := buf.ReadFrom(plain); err != nil {
		return buf.String(), fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

// gradeText estimates extraction confidence from the text itself: length
// and the share of letters and digits. Scanned PDFs with no text layer
// come out short and noisy, and land at the degraded grade.
func gradeText(text string) float64 {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) == 0 {
		return degradedConfidence
	}

	var total, clean int
	for _, r := range trimmed {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsPunct(r) {
			clean++
		}
	}
	if total == 0 {
		return degradedConfidence
	}

	conf := 0.95 * float64(clean) / float64(total)
	if len(trimmed) < 100 {
		conf *= 0.7
	}
	if conf < degradedConfidence {
		conf = degradedConfidence
	}
	return conf
}
