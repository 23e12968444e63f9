// Package confidence computes a weighted composite confidence score over a
// two-level factor/component model.
package confidence

import (
	"math"
	"strings"
)

// NeutralScore is used for any component without a registered evaluator.
const NeutralScore = 0.5

// ValidationData carries the side-channel evidence a score is derived from.
// A nil ContextScore means no score was supplied.
type ValidationData struct {
	MedicalTerms        []string `json:"medical_terms,omitempty"`
	PatternsIdentified  []string `json:"patterns_identified,omitempty"`
	ContextScore        *float64 `json:"context_score,omitempty"`
	Contradictions      bool     `json:"contradictions,omitempty"`
	MissingContext      bool     `json:"missing_context,omitempty"`
	EmergencyIndicators bool     `json:"emergency_indicators,omitempty"`
}

// Level buckets an overall score.
type Level string

const (
	LevelVeryLow  Level = "Very Low"
	LevelLow      Level = "Low"
	LevelModerate Level = "Moderate"
	LevelHigh     Level = "High"
	LevelVeryHigh Level = "Very High"
)

// Result is the outcome of Scorer.Score. It is never mutated after return.
type Result struct {
	OverallConfidence float64 `json:"overall_confidence"`
	// ComponentScores holds each component's weighted contribution.
	ComponentScores       map[string]map[string]float64 `json:"component_scores"`
	FactorScores          map[string]float64            `json:"factor_scores"`
	Level                 Level                         `json:"confidence_level"`
	ReliabilityIndicators []string                      `json:"reliability_indicators"`
}

// Evaluator scores one component from the validation data.
type Evaluator func(data ValidationData) float64

type evalKey struct{ factor, component string }

// Option customizes a Scorer.
type Option func(*Scorer)

// WithEvaluator registers fn for factor/component, replacing any built-in.
func WithEvaluator(factor, component string, fn Evaluator) Option {
	return func(s *Scorer) {
		if fn != nil {
			s.evaluators[evalKey{factor, component}] = fn
		}
	}
}

// Scorer is immutable after construction and safe for concurrent use.
type Scorer struct {
	def        Definition
	evaluators map[evalKey]Evaluator
}

// NewScorer builds a scorer over def. A nil def selects DefaultDefinition.
func NewScorer(def Definition, opts ...Option) *Scorer {
	if def == nil {
		def = DefaultDefinition()
	}
	s := &Scorer{
		def: def.clone(),
		evaluators: map[evalKey]Evaluator{
			{FactorMedicalContext, ComponentTerminology}:      evaluateTerminology,
			{FactorMedicalContext, ComponentPatternMatch}:     evaluatePatterns,
			{FactorMedicalContext, ComponentContextRelevance}: evaluateContext,
		},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Definition returns a copy of the factor model in use.
func (s *Scorer) Definition() Definition {
	return s.def.clone()
}

// Score evaluates data against every factor in definition order. The overall
// value is rounded to three decimals and is not clamped.
func (s *Scorer) Score(data ValidationData) *Result {
	res := &Result{
		ComponentScores: make(map[string]map[string]float64, len(s.def)),
		FactorScores:    make(map[string]float64, len(s.def)),
	}

	var overall float64
	for _, f := range s.def {
		comps := make(map[string]float64, len(f.Components))
		var factorScore float64
		for _, c := range f.Components {
			// explicit conversions keep the products rounded before the sum
			contrib := float64(s.evaluate(f.Name, c.Name, data) * c.Weight)
			comps[c.Name] = contrib
			factorScore += contrib
		}
		res.ComponentScores[f.Name] = comps
		res.FactorScores[f.Name] = factorScore
		overall += float64(factorScore * f.Weight)
	}

	res.OverallConfidence = roundTo(overall, 3)
	res.Level = LevelFor(res.OverallConfidence)
	res.ReliabilityIndicators = s.indicators(res.FactorScores, data)
	return res
}

func (s *Scorer) evaluate(factor, component string, data ValidationData) float64 {
	if fn, ok := s.evaluators[evalKey{factor, component}]; ok {
		return fn(data)
	}
	return NeutralScore
}

func (s *Scorer) indicators(scores map[string]float64, data ValidationData) []string {
	out := []string{}
	for _, f := range s.def {
		words := strings.ReplaceAll(f.Name, "_", " ")
		switch score := scores[f.Name]; {
		case score < 0.5:
			out = append(out, "Low "+words+" confidence")
		case score > 0.8:
			out = append(out, "Strong "+words+" confidence")
		}
	}
	if data.Contradictions {
		out = append(out, "Contains contradictions")
	}
	if data.MissingContext {
		out = append(out, "Incomplete context")
	}
	if data.EmergencyIndicators {
		out = append(out, "Emergency indicators present")
	}
	return out
}

// LevelFor maps a score onto its bucket, checking the highest threshold first.
func LevelFor(score float64) Level {
	switch {
	case score >= 0.90:
		return LevelVeryHigh
	case score >= 0.75:
		return LevelHigh
	case score >= 0.60:
		return LevelModerate
	case score >= 0.40:
		return LevelLow
	default:
		return LevelVeryLow
	}
}

// terminology is deliberately uncapped: ten or more terms score above 1.
func evaluateTerminology(d ValidationData) float64 {
	return float64(len(d.MedicalTerms)) / 10
}

func evaluatePatterns(d ValidationData) float64 {
	return float64(len(d.PatternsIdentified)) / 5
}

func evaluateContext(d ValidationData) float64 {
	if d.ContextScore == nil {
		return NeutralScore
	}
	return *d.ContextScore
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Float returns a pointer to v, for populating ValidationData.ContextScore.
func Float(v float64) *float64 { return &v }
