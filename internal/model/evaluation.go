package model

import "time"

// Severity levels accepted by the ethics evaluator. Any other string is
// recorded verbatim.
const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
	SeverityCritical = "critical"
)

// EthicalCheck is the outcome of one principle predicate.
type EthicalCheck struct {
	// Principle is the registry key of the principle checked (e.g. "do_no_harm").
	Principle string `json:"principle"`

	// Passed is false only when the predicate found a real violation.
	Passed bool `json:"passed"`

	// Warning is set only for failed checks.
	Warning *string `json:"warning"`

	// Recommendation may be set for passed checks as advice.
	Recommendation *string `json:"recommendation"`
}

// EthicalEvaluation is the audit record produced for every evaluated action.
// It is immutable once appended to the decision ledger.
type EthicalEvaluation struct {
	// ID is a uuid assigned at evaluation time.
	ID string `json:"id"`

	Timestamp      time.Time `json:"timestamp"`
	ProposedAction string    `json:"proposed_action"`
	SeverityLevel  string    `json:"severity_level"`

	// EthicalChecks are in the fixed evaluation order.
	EthicalChecks []EthicalCheck `json:"ethical_checks"`

	// IsApproved is the conjunction of every check's Passed flag.
	IsApproved bool `json:"is_approved"`

	// Warnings and Recommendations collect the texts of failed checks, in
	// check order.
	Warnings        []string `json:"warnings"`
	Recommendations []string `json:"recommendations"`

	EmergencyStatus bool `json:"emergency_status"`
}

// Clone returns a deep copy of e.
func (e *EthicalEvaluation) Clone() *EthicalEvaluation {
	if e == nil {
		return nil
	}
	out := *e
	out.EthicalChecks = make([]EthicalCheck, len(e.EthicalChecks))
	for i, c := range e.EthicalChecks {
		out.EthicalChecks[i] = EthicalCheck{
			Principle:      c.Principle,
			Passed:         c.Passed,
			Warning:        cloneString(c.Warning),
			Recommendation: cloneString(c.Recommendation),
		}
	}
	out.Warnings = append([]string{}, e.Warnings...)
	out.Recommendations = append([]string{}, e.Recommendations...)
	return &out
}

// Check returns the check for principle, if present.
func (e *EthicalEvaluation) Check(principle string) (EthicalCheck, bool) {
	for _, c := range e.EthicalChecks {
		if c.Principle == principle {
			return c, true
		}
	}
	return EthicalCheck{}, false
}

// ValidationResult is the response-level view of an evaluation.
type ValidationResult struct {
	OriginalResponse string   `json:"original_response"`
	IsValid          bool     `json:"is_valid"`
	Warnings         []string `json:"warnings"`
	Recommendations  []string `json:"recommendations"`
	EmergencyStatus  bool     `json:"emergency_status"`

	// ModifiedResponse equals OriginalResponse when the evaluation was
	// approved and not an emergency; otherwise it is the framed text.
	ModifiedResponse string `json:"modified_response"`

	// EvaluationID links back to the ledger entry.
	EvaluationID string `json:"evaluation_id"`
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
