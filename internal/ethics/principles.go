// Package ethics evaluates proposed medical actions against a fixed set of
// Hippocratic principles, detects emergencies and frames responses that
// fail evaluation.
package ethics

// Principle keys.
const (
	DoNoHarm           = "do_no_harm"
	Confidentiality    = "confidentiality"
	Beneficence        = "beneficence"
	PatientAutonomy    = "patient_autonomy"
	Justice            = "justice"
	InformedConsent    = "informed_consent"
	ProfessionalEthics = "professional_ethics"
	MedicalAccuracy    = "medical_accuracy"
	ReferralAwareness  = "referral_awareness"
	EmergencyProtocol  = "emergency_protocol"
)

// Principle is one registry entry. Checked is false for principles that are
// descriptive only and have no predicate.
type Principle struct {
	Key         string `json:"key"`
	Description string `json:"description"`
	Checked     bool   `json:"checked"`
}

var registry = []Principle{
	{DoNoHarm, "First, do no harm (primum non nocere)", true},
	{Confidentiality, "Respect patient privacy and confidentiality", true},
	{Beneficence, "Act in the best interest of the patient", true},
	{PatientAutonomy, "Respect patient's right to make decisions", true},
	{Justice, "Treat all patients fairly and equally", false},
	{InformedConsent, "Ensure patient understanding and consent", true},
	{ProfessionalEthics, "Maintain professional standards and ethics", false},
	{MedicalAccuracy, "Provide accurate medical information", true},
	{ReferralAwareness, "Know when to refer to human healthcare providers", true},
	{EmergencyProtocol, "Recognize and appropriately handle medical emergencies", false},
}

// Principles returns the registry in its fixed order.
func Principles() []Principle {
	return append([]Principle(nil), registry...)
}

// Describe returns the description of the principle with the given key.
func Describe(key string) (string, bool) {
	for _, p := range registry {
		if p.Key == key {
			return p.Description, true
		}
	}
	return "", false
}
