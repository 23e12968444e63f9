package confidence

// Component is one weighted sub-score of a Factor.
type Component struct {
	Name   string  `json:"name" yaml:"name"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Factor is a named, weighted group of components. Component weights of a
// factor are expected to sum to 1; factor weights are not required to.
type Factor struct {
	Name       string      `json:"name" yaml:"name"`
	Weight     float64     `json:"weight" yaml:"weight"`
	Components []Component `json:"components" yaml:"components"`
}

// Definition is the ordered factor list. Order fixes both evaluation order and
// the order of reliability indicators.
type Definition []Factor

// Factor names of the default definition.
const (
	FactorMedicalContext     = "medical_context"
	FactorLogicalStructure   = "logical_structure"
	FactorEvidenceSupport    = "evidence_support"
	FactorConsistency        = "consistency"
	FactorSeverityAssessment = "severity_assessment"
)

// Components of the medical_context factor that have built-in evaluators.
const (
	ComponentTerminology      = "terminology"
	ComponentPatternMatch     = "pattern_match"
	ComponentContextRelevance = "context_relevance"
)

// DefaultDefinition returns a fresh copy of the standard five-factor model.
func DefaultDefinition() Definition {
	return Definition{
		{Name: FactorMedicalContext, Weight: 0.25, Components: []Component{
			{ComponentTerminology, 0.4},
			{ComponentPatternMatch, 0.3},
			{ComponentContextRelevance, 0.3},
		}},
		{Name: FactorLogicalStructure, Weight: 0.20, Components: []Component{
			{"syntax", 0.3},
			{"coherence", 0.4},
			{"completeness", 0.3},
		}},
		{Name: FactorEvidenceSupport, Weight: 0.25, Components: []Component{
			{"symptom_clarity", 0.35},
			{"condition_correlation", 0.35},
			{"temporal_relationship", 0.30},
		}},
		{Name: FactorConsistency, Weight: 0.15, Components: []Component{
			{"internal_consistency", 0.5},
			{"knowledge_base_alignment", 0.5},
		}},
		{Name: FactorSeverityAssessment, Weight: 0.15, Components: []Component{
			{"severity_clarity", 0.4},
			{"urgency_recognition", 0.3},
			{"risk_assessment", 0.3},
		}},
	}
}

func (d Definition) clone() Definition {
	out := make(Definition, len(d))
	for i, f := range d {
		out[i] = Factor{Name: f.Name, Weight: f.Weight, Components: append([]Component(nil), f.Components...)}
	}
	return out
}
