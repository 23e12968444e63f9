package logic

import (
	"math"
	"slices"
	"time"

	"github.com/draiml/draiml/internal/confidence"
	"github.com/draiml/draiml/internal/knowledge"
	"github.com/draiml/draiml/internal/logging"
	"github.com/draiml/draiml/internal/patterns"
	"github.com/draiml/draiml/internal/textutil"
)

// Context types.
const (
	ContextClinical    = "clinical"
	ContextTerminology = "terminology"
	ContextSymptomatic = "symptomatic"
	ContextUnknown     = "unknown"
)

// SeverityUnspecified is reported when no severity cue is present.
const SeverityUnspecified = "unspecified"

// severityRank orders severity subcategories from most to least severe.
var severityRank = []string{"critical", "severe", "moderate", "mild"}

// conflicts are subcategory pairs that cannot describe the same finding.
var conflicts = []struct{ category, a, b string }{
	{"severity", "mild", "severe"},
	{"severity", "mild", "critical"},
	{"temporal", "acute", "chronic"},
}

// MedicalContext summarizes the domain vocabulary found in a statement.
type MedicalContext struct {
	HasMedicalTerms    bool     `json:"has_medical_terms"`
	HasMedicalPatterns bool     `json:"has_medical_patterns"`
	IdentifiedTerms    []string `json:"identified_terms"`
	IdentifiedPatterns []string `json:"identified_patterns"`
	ContextScore       float64  `json:"context_score"`
	ContextType        string   `json:"context_type"`
}

// LogicalStructure describes the surface form checked by IsSound.
type LogicalStructure struct {
	TokenCount  int      `json:"token_count"`
	Connectives []string `json:"connectives"`
	IsSound     bool     `json:"is_sound"`
}

// Contradiction is a pair of descriptors that should not co-occur.
type Contradiction struct {
	Type        string   `json:"type"`
	Category    string   `json:"category,omitempty"`
	Descriptors []string `json:"descriptors"`
	Reason      string   `json:"reason"`
}

// Relationship links a symptom to a condition it is a known symptom of.
type Relationship struct {
	Symptom   string `json:"symptom"`
	Condition string `json:"condition"`
	Kind      string `json:"kind"`
}

// Relationships lists the entities found and how they relate.
type Relationships struct {
	Symptoms   []string       `json:"symptoms"`
	Conditions []string       `json:"conditions"`
	Links      []Relationship `json:"relationships"`
	Confidence float64        `json:"confidence"`
}

// ReasoningStep is one step of the explanation chain.
type ReasoningStep struct {
	Step       string   `json:"step"`
	Reasoning  string   `json:"reasoning"`
	Confidence *float64 `json:"confidence,omitempty"`
	Details    []string `json:"details,omitempty"`
}

// Analysis is the full breakdown of one statement.
type Analysis struct {
	Timestamp           time.Time                   `json:"timestamp"`
	Statement           string                      `json:"original_statement"`
	Patterns            map[string][]patterns.Match `json:"patterns_identified"`
	MedicalContext      MedicalContext              `json:"medical_context"`
	LogicalStructure    LogicalStructure            `json:"logical_structure"`
	Contradictions      []Contradiction             `json:"contradictions"`
	Relationships       Relationships               `json:"relationships"`
	Severity            string                      `json:"severity"`
	EmergencyIndicators []string                    `json:"emergency_indicators"`
	Confidence          *confidence.Result          `json:"confidence"`
	ReasoningChain      []ReasoningStep             `json:"reasoning_chain"`
}

// ValidationData derives the scorer input from the analysis.
func (a *Analysis) ValidationData() confidence.ValidationData {
	score := a.MedicalContext.ContextScore
	return confidence.ValidationData{
		MedicalTerms:        append([]string(nil), a.MedicalContext.IdentifiedTerms...),
		PatternsIdentified:  append([]string(nil), a.MedicalContext.IdentifiedPatterns...),
		ContextScore:        &score,
		Contradictions:      len(a.Contradictions) > 0,
		MissingContext:      !a.MedicalContext.HasMedicalTerms,
		EmergencyIndicators: len(a.EmergencyIndicators) > 0,
	}
}

// Analyzer produces Analysis values. It is safe for concurrent use.
type Analyzer struct {
	validator  *Validator
	kb         *knowledge.Base
	scorer     *confidence.Scorer
	symptoms   termMatcher
	conditions termMatcher
	logger     logging.Logger
	now        func() time.Time
}

// NewAnalyzer wires an analyzer. Nil kb or scorer select the defaults.
func NewAnalyzer(kb *knowledge.Base, scorer *confidence.Scorer, logger logging.Logger) *Analyzer {
	if kb == nil {
		kb = knowledge.Default()
	}
	if scorer == nil {
		scorer = confidence.NewScorer(nil)
	}
	if logger == nil {
		logger = logging.NewStdoutLogger("analyzer")
	}
	return &Analyzer{
		validator:  NewValidator(kb),
		kb:         kb,
		scorer:     scorer,
		symptoms:   newTermMatcher(kb.SymptomTerms()),
		conditions: newTermMatcher(kb.ConditionTerms()),
		logger:     logger,
		now:        time.Now,
	}
}

// Analyze strips markup from statement and breaks it down.
func (an *Analyzer) Analyze(statement string) *Analysis {
	text := textutil.PlainText(statement)

	a := &Analysis{
		Timestamp: an.now().UTC(),
		Statement: statement,
		Patterns:  patterns.MatchAll(text),
	}
	a.MedicalContext = an.medicalContext(text)
	a.LogicalStructure = LogicalStructure{
		TokenCount:  len(textutil.Fields(text)),
		Connectives: nonNil(patterns.AllIn(text, patterns.Connectives())),
		IsSound:     an.validator.IsSound(text),
	}
	a.Contradictions = an.contradictions(text, a.Patterns)
	a.Relationships = an.relationships(text)
	a.Severity = severity(a.Patterns["severity"])
	a.EmergencyIndicators = an.emergencyIndicators(text)
	a.Confidence = an.scorer.Score(a.ValidationData())
	a.ReasoningChain = reasoningChain(a)

	an.logger.Debug("statement analyzed",
		logging.Field{Key: "context_type", Value: a.MedicalContext.ContextType},
		logging.Field{Key: "severity", Value: a.Severity},
		logging.Field{Key: "overall_confidence", Value: a.Confidence.OverallConfidence})
	return a
}

func (an *Analyzer) medicalContext(text string) MedicalContext {
	terms := nonNil(an.validator.MedicalTerms(text))

	labels := []string{}
	for _, cat := range patterns.CategoriesInGroup(patterns.GroupSymptom) {
		for _, m := range patterns.MatchCategory(text, cat) {
			labels = append(labels, m.Label())
		}
	}

	mc := MedicalContext{
		HasMedicalTerms:    len(terms) > 0,
		HasMedicalPatterns: len(labels) > 0,
		IdentifiedTerms:    terms,
		IdentifiedPatterns: labels,
	}

	var score float64
	if mc.HasMedicalTerms {
		score += 0.5
	}
	if mc.HasMedicalPatterns {
		score += 0.3
	}
	score += math.Min(0.2, 0.05*float64(len(terms)+len(labels)))
	mc.ContextScore = math.Round(score*100) / 100

	switch {
	case mc.HasMedicalTerms && mc.HasMedicalPatterns:
		mc.ContextType = ContextClinical
	case mc.HasMedicalTerms:
		mc.ContextType = ContextTerminology
	case mc.HasMedicalPatterns:
		mc.ContextType = ContextSymptomatic
	default:
		mc.ContextType = ContextUnknown
	}
	return mc
}

func (an *Analyzer) contradictions(text string, found map[string][]patterns.Match) []Contradiction {
	out := []Contradiction{}
	for _, c := range conflicts {
		var hasA, hasB bool
		for _, m := range found[c.category] {
			hasA = hasA || m.Subcategory == c.a
			hasB = hasB || m.Subcategory == c.b
		}
		if hasA && hasB {
			out = append(out, Contradiction{
				Type:        "internal",
				Category:    c.category,
				Descriptors: []string{c.a, c.b},
				Reason:      "Statement describes the same finding as both " + c.a + " and " + c.b,
			})
		}
	}

	mentioned := an.conditions.find(text)
	for _, name := range mentioned {
		cond, ok := an.kb.Condition(name)
		if !ok || len(cond.Contraindications) == 0 {
			continue
		}
		for _, ci := range newTermMatcher(cond.Contraindications).find(text) {
			out = append(out, Contradiction{
				Type:        "knowledge_base",
				Descriptors: []string{name, ci},
				Reason:      ci + " is contraindicated for " + name,
			})
		}
	}
	return out
}

func (an *Analyzer) relationships(text string) Relationships {
	r := Relationships{
		Symptoms:   nonNil(an.symptoms.find(text)),
		Conditions: nonNil(an.conditions.find(text)),
		Links:      []Relationship{},
	}
	for _, cname := range r.Conditions {
		cond, ok := an.kb.Condition(cname)
		if !ok {
			continue
		}
		for _, s := range r.Symptoms {
			if slices.ContainsFunc(cond.CommonSymptoms, func(cs string) bool { return textutil.Normalize(cs) == s }) {
				r.Links = append(r.Links, Relationship{Symptom: s, Condition: cname, Kind: "common_symptom"})
			}
		}
	}
	if pairs := len(r.Symptoms) * len(r.Conditions); pairs > 0 {
		r.Confidence = math.Round(float64(len(r.Links))/float64(pairs)*100) / 100
	}
	return r
}

func (an *Analyzer) emergencyIndicators(text string) []string {
	out := nonNil(patterns.AllIn(text, patterns.EmergencyKeywords()))
	for _, p := range an.kb.SymptomPatterns.Emergency {
		p = textutil.Normalize(p)
		if p != "" && !slices.Contains(out, p) {
			if _, ok := patterns.FirstIn(text, []string{p}); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

func severity(matches []patterns.Match) string {
	for _, level := range severityRank {
		for _, m := range matches {
			if m.Subcategory == level {
				return level
			}
		}
	}
	return SeverityUnspecified
}

func reasoningChain(a *Analysis) []ReasoningStep {
	chain := []ReasoningStep{}
	if a.MedicalContext.HasMedicalTerms {
		score := a.MedicalContext.ContextScore
		chain = append(chain, ReasoningStep{
			Step:       "context",
			Reasoning:  "Medical context identified based on terminology",
			Confidence: &score,
			Details:    a.MedicalContext.IdentifiedTerms,
		})
	}
	var labels []string
	for _, cat := range patterns.Categories() {
		for _, m := range a.Patterns[cat] {
			labels = append(labels, m.Label())
		}
	}
	if len(labels) > 0 {
		chain = append(chain, ReasoningStep{
			Step:      "patterns",
			Reasoning: "Medical patterns detected in statement",
			Details:   labels,
		})
	}
	if len(a.Relationships.Links) > 0 {
		details := make([]string, 0, len(a.Relationships.Links))
		for _, l := range a.Relationships.Links {
			details = append(details, l.Symptom+" -> "+l.Condition)
		}
		chain = append(chain, ReasoningStep{
			Step:      "relationships",
			Reasoning: "Medical relationships identified",
			Details:   details,
		})
	}
	if len(a.Contradictions) > 0 {
		details := make([]string, 0, len(a.Contradictions))
		for _, c := range a.Contradictions {
			details = append(details, c.Reason)
		}
		chain = append(chain, ReasoningStep{
			Step:      "contradictions",
			Reasoning: "Contradictions found in statement",
			Details:   details,
		})
	}
	return chain
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
