// Package response frames a generated answer for display: an emergency banner
// in front, consolidated warnings and the general disclaimer behind. The
// answer body itself is never altered.
package response

import "strings"

// EmergencyBanner is prepended to emergency responses.
const EmergencyBanner = "\n\n🚨 EMERGENCY WARNING: This appears to be a medical emergency. " +
	"Seek immediate emergency medical care or call your local emergency services.\n"

// Disclaimer is appended to every transformed response.
const Disclaimer = "IMPORTANT: This is AI-assisted medical information. Always consult with qualified " +
	"healthcare professionals for medical advice, diagnosis, or treatment. Seek immediate " +
	"emergency care for urgent medical conditions."

const considerationsHeader = "\n\nImportant considerations:\n"

// Transform assembles the user-facing text. Order is fixed: banner (when
// isEmergency), original text, considerations block (when warnings is
// non-empty), disclaimer.
func Transform(original string, warnings []string, isEmergency bool) string {
	var b strings.Builder
	b.Grow(len(original) + len(EmergencyBanner) + len(Disclaimer) + 64*len(warnings))

	if isEmergency {
		b.WriteString(EmergencyBanner)
	}
	b.WriteString(original)

	if len(warnings) > 0 {
		b.WriteString(considerationsHeader)
		for _, w := range warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(Disclaimer)
	return b.String()
}
