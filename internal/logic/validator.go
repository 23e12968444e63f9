// Package logic judges whether medical statements are well-formed, compares
// statements for equivalence and validates conclusions against premises.
package logic

import (
	"math"
	"strings"

	"github.com/draiml/draiml/internal/knowledge"
	"github.com/draiml/draiml/internal/patterns"
	"github.com/draiml/draiml/internal/textutil"
)

// EquivalenceThreshold is the token-overlap ratio above which two statements
// are considered equivalent.
const EquivalenceThreshold = 0.70

// minSoundTokens is exclusive: a sound statement has more tokens than this.
const minSoundTokens = 3

// Verdict reasons.
const (
	ReasonMissingInput = "Missing conclusion or premises"
	ReasonSound        = "Logically sound conclusion"
	ReasonInvalid      = "Invalid logical structure"
)

// Verdict is the result of ValidateConclusion.
type Verdict struct {
	Valid      bool    `json:"valid"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

// Validator is built once from a knowledge base and is safe for concurrent use.
type Validator struct {
	terms termMatcher
}

// NewValidator builds a validator over kb's terminology keys. A nil kb uses
// the built-in defaults.
func NewValidator(kb *knowledge.Base) *Validator {
	if kb == nil {
		kb = knowledge.Default()
	}
	return &Validator{terms: newTermMatcher(kb.TerminologyKeys())}
}

// MedicalTerms returns the terminology keys found in statement.
func (v *Validator) MedicalTerms(statement string) []string {
	return v.terms.find(statement)
}

// HasTerminology reports whether statement contains any terminology key.
func (v *Validator) HasTerminology(statement string) bool {
	return v.terms.any(statement)
}

// IsSound reports whether statement is non-trivial, contains domain
// terminology and contains a logical connective.
func (v *Validator) IsSound(statement string) bool {
	if strings.TrimSpace(statement) == "" {
		return false
	}
	if len(textutil.Fields(statement)) <= minSoundTokens {
		return false
	}
	if !v.HasTerminology(statement) {
		return false
	}
	return patterns.HasConnective(statement)
}

// AreEquivalent reports whether a and b match after normalization or share
// more than EquivalenceThreshold of their tokens.
func (v *Validator) AreEquivalent(a, b string) bool {
	na, nb := textutil.Normalize(a), textutil.Normalize(b)
	if na == nb {
		return true
	}
	return Overlap(a, b) > EquivalenceThreshold
}

// Overlap is the Jaccard ratio of the token sets of a and b.
func Overlap(a, b string) float64 {
	return textutil.Jaccard(textutil.TokenSet(a), textutil.TokenSet(b))
}

// ValidateConclusion checks conclusion against premises. Only the wording of
// the conclusion decides validity; premises contribute to confidence.
func (v *Validator) ValidateConclusion(conclusion string, premises []string) Verdict {
	if strings.TrimSpace(conclusion) == "" || len(premises) == 0 {
		return Verdict{Valid: false, Reason: ReasonMissingInput, Confidence: 0}
	}
	if !v.IsSound(conclusion) {
		return Verdict{Valid: false, Reason: ReasonInvalid, Confidence: 0}
	}

	premiseFactor := math.Min(float64(len(premises))/3, 1)
	logicFactor := 0.5
	if patterns.HasConnective(conclusion) {
		logicFactor = 1
	}
	medicalFactor := 0.7
	if v.HasTerminology(conclusion) {
		medicalFactor = 1
	}
	avg := (premiseFactor + logicFactor + medicalFactor) / 3
	return Verdict{Valid: true, Reason: ReasonSound, Confidence: math.Round(avg*100) / 100}
}
