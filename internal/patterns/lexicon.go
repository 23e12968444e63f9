package patterns

import "strings"

var emergencyKeywords = []string{
	"heart attack",
	"stroke",
	"bleeding",
	"unconscious",
	"breathing difficulty",
	"not breathing",
	"severe pain",
	"chest pain",
	"head injury",
	"seizure",
	"anaphylaxis",
	"suicide",
	"self-harm",
	"overdose",
	"poisoning",
	"emergency",
	"critical",
	"urgent",
}

var riskWords = []string{"dangerous", "risk", "harm", "death", "fatal", "severe"}

var uncertaintyWords = []string{"maybe", "possibly", "might", "unclear", "unknown"}

var connectives = []string{"if", "then", "because", "therefore", "due to", "causes"}

var sensitiveContextKeys = []string{"personal_info", "contact", "identity"}

// EmergencyKeywords returns the emergency trigger list.
func EmergencyKeywords() []string { return append([]string(nil), emergencyKeywords...) }

// RiskWords returns the harm lexicon used by the do-no-harm check.
func RiskWords() []string { return append([]string(nil), riskWords...) }

// UncertaintyWords returns the hedging lexicon used by the accuracy check.
func UncertaintyWords() []string { return append([]string(nil), uncertaintyWords...) }

// Connectives returns the logical connectives a sound statement must contain.
func Connectives() []string { return append([]string(nil), connectives...) }

// SensitiveContextKeys returns the context keys that trigger a
// confidentiality recommendation.
func SensitiveContextKeys() []string { return append([]string(nil), sensitiveContextKeys...) }

// FirstIn reports the first term of terms that occurs in text as a
// case-insensitive substring.
func FirstIn(text string, terms []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return t, true
		}
	}
	return "", false
}

// AllIn returns every term of terms that occurs in text, in list order.
func AllIn(text string, terms []string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, t := range terms {
		if strings.Contains(lower, t) {
			out = append(out, t)
		}
	}
	return out
}

// IsEmergency reports whether text contains any emergency keyword.
func IsEmergency(text string) bool {
	_, ok := FirstIn(text, emergencyKeywords)
	return ok
}

// HasConnective reports whether text contains a logical connective.
func HasConnective(text string) bool {
	_, ok := FirstIn(text, connectives)
	return ok
}
