package doccheck

import (
	"strings"

	"assurdoc/internal/domain"
)

// typeKeywords lists detection keywords per document type, in priority
// order: passport > national id > driving license > attestation.
var typeKeywords = []struct {
	docType  domain.DocumentType
	text     []string
	filename []string
}{
	{
		docType:  domain.DocTypePasseport,
		text:     []string{"passeport", "passport"},
		filename: []string{"passeport", "passport"},
	},
	{
		docType:  domain.DocTypeCarteIdentite,
		text:     []string{"carte nationale d'identité", "carte d'identité", "identity card", "carte nationale d'identite"},
		filename: []string{"cni", "identite", "identity"},
	},
	{
		docType:  domain.DocTypePermisConduire,
		text:     []string{"permis de conduire", "driving licence", "driving license"},
		filename: []string{"permis"},
	},
	{
		docType:  domain.DocTypeAttestation,
		text:     []string{"attestation", "certificat médical", "certificat medical"},
		filename: []string{"attestation", "certificat"},
	},
}

// DetectType identifies the document type from keyword sets over the text,
// falling back to the filename when the text gives nothing.
func DetectType(text, filename string) domain.DocumentType {
	lowText := strings.ToLower(text)
	for _, tk := range typeKeywords {
		for _, kw := range tk.text {
			if strings.Contains(lowText, kw) {
				return tk.docType
			}
		}
	}

	lowName := strings.ToLower(filename)
	for _, tk := range typeKeywords {
		for _, kw := range tk.filename {
			if strings.Contains(lowName, kw) {
				return tk.docType
			}
		}
	}

	return domain.DocTypeInconnu
}
