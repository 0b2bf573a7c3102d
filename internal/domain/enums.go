package domain

// DocumentType is the detected kind of an uploaded identity/medical document.
type DocumentType string

const (
	DocTypePasseport      DocumentType = "passeport"
	DocTypeCarteIdentite  DocumentType = "carte_identite"
	DocTypePermisConduire DocumentType = "permis_conduire"
	DocTypeAttestation    DocumentType = "attestation"
	DocTypeAutre          DocumentType = "autre"
	DocTypeInconnu        DocumentType = "inconnu"
)

// Avis is the synthesized underwriting decision.
type Avis string

const (
	AvisFavorable   Avis = "favorable"
	AvisReserve     Avis = "reserve"
	AvisDefavorable Avis = "defavorable"
	AvisRejetFraude Avis = "rejet_fraude"
)

// ValidAvis reports whether s is a known decision bucket.
func ValidAvis(s string) bool {
	switch Avis(s) {
	case AvisFavorable, AvisReserve, AvisDefavorable, AvisRejetFraude:
		return true
	}
	return false
}

// Severity grades a finding. Cross-document identity mismatches are critical.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// NotificationStatus tracks delivery of a routing notification to an insurer.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// UserRole defines the back-office actors. Each role maps to one scoped view
// of an analysis; admin additionally manages users and insurers.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleAssureur   UserRole = "assureur"
	RoleMedecin    UserRole = "medecin"
	RoleTechnicien UserRole = "technicien"
	RoleAgent      UserRole = "agent"
)

// Risk, fraud and confidence level labels.
const (
	NiveauFaible    = "Faible"
	NiveauModere    = "Modéré"
	NiveauEleve     = "Élevé"
	NiveauTresEleve = "Très élevé"

	NiveauFraudeFaible    = "FAIBLE"
	NiveauFraudeModere    = "MODÉRÉ"
	NiveauFraudeEleve     = "ÉLEVÉ"
	NiveauFraudeTresEleve = "TRÈS ÉLEVÉ"
)
