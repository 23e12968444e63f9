package server

import (
	"time"

	"github.com/draiml/draiml/internal/confidence"
	"github.com/draiml/draiml/internal/model"
	"github.com/draiml/draiml/internal/response"
	"github.com/draiml/draiml/internal/socratic"
)

// maxTextBytes bounds every free-text field.
const maxTextBytes = 32 * 1024

// ValidateResponseRequest carries a generated answer to be checked.
type ValidateResponseRequest struct {
	Response string         `json:"response" validate:"maxbytes" example:"Rest and drink plenty of fluids."`
	Context  map[string]any `json:"context,omitempty"`
	Severity string         `json:"severity,omitempty" validate:"omitempty,oneof=mild moderate severe critical" example:"moderate"`
}

// ValidateResponseResponse is the validation result plus the framing that was
// added around the original text, if any.
type ValidateResponseResponse struct {
	*model.ValidationResult
	Framing []response.Segment `json:"framing,omitempty"`
}

// EvaluateRequest asks for a full ethical evaluation of an action.
type EvaluateRequest struct {
	Action   string         `json:"action" validate:"maxbytes" example:"Prescribe ibuprofen for mild back pain."`
	Context  map[string]any `json:"context,omitempty"`
	Severity string         `json:"severity,omitempty" validate:"omitempty,oneof=mild moderate severe critical" example:"mild"`
}

// ConclusionRequest validates a conclusion against premises.
type ConclusionRequest struct {
	Conclusion string   `json:"conclusion" validate:"maxbytes" example:"Fever persists because of infection."`
	Premises   []string `json:"premises" validate:"max=100,dive,maxbytes"`
}

// AnalyzeRequest asks for a statement breakdown.
type AnalyzeRequest struct {
	Statement string `json:"statement" validate:"maxbytes" example:"Sudden severe chest pain because of pneumonia."`
}

// EquivalenceRequest compares two statements.
type EquivalenceRequest struct {
	A string `json:"a" validate:"maxbytes"`
	B string `json:"b" validate:"maxbytes"`
}

// EquivalenceResponse reports the comparison.
type EquivalenceResponse struct {
	Equivalent bool    `json:"equivalent"`
	Overlap    float64 `json:"overlap" example:"0.8"`
}

// ConfidenceRequest is the explicit scorer input.
type ConfidenceRequest struct {
	MedicalTerms        []string `json:"medical_terms" validate:"max=1000"`
	PatternsIdentified  []string `json:"patterns_identified" validate:"max=1000"`
	ContextScore        *float64 `json:"context_score,omitempty" validate:"omitempty,gte=0,lte=1"`
	Contradictions      bool     `json:"contradictions"`
	MissingContext      bool     `json:"missing_context"`
	EmergencyIndicators bool     `json:"emergency_indicators"`
}

func (r ConfidenceRequest) data() confidence.ValidationData {
	return confidence.ValidationData{
		MedicalTerms:        r.MedicalTerms,
		PatternsIdentified:  r.PatternsIdentified,
		ContextScore:        r.ContextScore,
		Contradictions:      r.Contradictions,
		MissingContext:      r.MissingContext,
		EmergencyIndicators: r.EmergencyIndicators,
	}
}

// PremiseRequest adds a premise to a session.
type PremiseRequest struct {
	Premise string `json:"premise" validate:"maxbytes" example:"Fever occurs because of infection."`
}

// PremiseResponse reports whether the premise was accepted.
type PremiseResponse struct {
	Accepted bool                 `json:"accepted"`
	Premises []string             `json:"premises"`
	Rejected []socratic.Rejection `json:"rejected"`
}

// SessionConclusionRequest draws a conclusion in a session.
type SessionConclusionRequest struct {
	Conclusion string `json:"conclusion" validate:"maxbytes"`
}

// SessionResponse describes a socratic session.
type SessionResponse struct {
	ID          string                `json:"id" example:"5f0c3c1e-8a4e-4c55-9a77-2b1d0f6d9e11"`
	CreatedAt   time.Time             `json:"created_at"`
	Premises    []string              `json:"premises"`
	Rejected    []socratic.Rejection  `json:"rejected"`
	Conclusions []socratic.Conclusion `json:"conclusions"`
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Decisions int    `json:"decisions" example:"12"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"session not found"`
}
