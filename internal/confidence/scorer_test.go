package confidence_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/draiml/draiml/internal/confidence"
)

func terms(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "term"
	}
	return out
}

func TestScore_EmptyDataUsesNeutralDefaults(t *testing.T) {
	t.Parallel()
	s := confidence.NewScorer(nil)

	res := s.Score(confidence.ValidationData{})

	if res.OverallConfidence != 0.413 {
		t.Errorf("expected overall 0.413, got %v", res.OverallConfidence)
	}
	if res.Level != confidence.LevelLow {
		t.Errorf("expected Low, got %q", res.Level)
	}
	want := []string{"Low medical context confidence"}
	if diff := cmp.Diff(want, res.ReliabilityIndicators); diff != "" {
		t.Errorf("indicators mismatch (-want +got):\n%s", diff)
	}
	for _, f := range []string{"logical_structure", "evidence_support", "consistency", "severity_assessment"} {
		if got := res.FactorScores[f]; got != 0.5 {
			t.Errorf("expected neutral factor %s = 0.5, got %v", f, got)
		}
	}
}

func TestScore_KnownInputs(t *testing.T) {
	t.Parallel()
	s := confidence.NewScorer(confidence.DefaultDefinition())

	cases := []struct {
		name     string
		data     confidence.ValidationData
		overall  float64
		level    confidence.Level
		medical  float64
		firstInd string
	}{
		{
			name:    "moderate evidence",
			data:    confidence.ValidationData{MedicalTerms: terms(5), PatternsIdentified: terms(5), ContextScore: confidence.Float(0.8)},
			overall: 0.56, level: confidence.LevelLow, medical: 0.74,
		},
		{
			name:    "saturated evidence",
			data:    confidence.ValidationData{MedicalTerms: terms(10), PatternsIdentified: terms(5), ContextScore: confidence.Float(1.0)},
			overall: 0.625, level: confidence.LevelModerate, medical: 1.0, firstInd: "Strong medical context confidence",
		},
		{
			name:    "uncapped terminology",
			data:    confidence.ValidationData{MedicalTerms: terms(20), PatternsIdentified: terms(10), ContextScore: confidence.Float(1.0)},
			overall: 0.8, level: confidence.LevelHigh, medical: 1.7, firstInd: "Strong medical context confidence",
		},
		{
			name:    "explicit zero context",
			data:    confidence.ValidationData{ContextScore: confidence.Float(0)},
			overall: 0.375, level: confidence.LevelVeryLow, medical: 0, firstInd: "Low medical context confidence",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := s.Score(tc.data)
			if res.OverallConfidence != tc.overall {
				t.Errorf("expected overall %v, got %v", tc.overall, res.OverallConfidence)
			}
			if res.Level != tc.level {
				t.Errorf("expected level %q, got %q", tc.level, res.Level)
			}
			if got := res.FactorScores["medical_context"]; math.Abs(got-tc.medical) > 1e-9 {
				t.Errorf("expected medical_context %v, got %v", tc.medical, got)
			}
			if tc.firstInd == "" {
				if len(res.ReliabilityIndicators) != 0 {
					t.Errorf("expected no indicators, got %v", res.ReliabilityIndicators)
				}
			} else if len(res.ReliabilityIndicators) == 0 || res.ReliabilityIndicators[0] != tc.firstInd {
				t.Errorf("expected first indicator %q, got %v", tc.firstInd, res.ReliabilityIndicators)
			}
		})
	}
}

func TestScore_ComponentScoresAreWeightedContributions(t *testing.T) {
	t.Parallel()
	res := confidence.NewScorer(nil).Score(confidence.ValidationData{
		MedicalTerms: terms(5), PatternsIdentified: terms(5), ContextScore: confidence.Float(0.8),
	})

	want := map[string]float64{"terminology": 0.2, "pattern_match": 0.3, "context_relevance": 0.24}
	approx := cmpopts.EquateApprox(0, 1e-9)
	if diff := cmp.Diff(want, res.ComponentScores["medical_context"], approx); diff != "" {
		t.Errorf("medical_context components mismatch (-want +got):\n%s", diff)
	}
	if got := res.ComponentScores["consistency"]["internal_consistency"]; got != 0.25 {
		t.Errorf("expected neutral contribution 0.25, got %v", got)
	}
}

func TestScore_FlagIndicatorsFollowFactorIndicatorsInFixedOrder(t *testing.T) {
	t.Parallel()
	res := confidence.NewScorer(nil).Score(confidence.ValidationData{
		EmergencyIndicators: true,
		MissingContext:      true,
		Contradictions:      true,
	})

	want := []string{
		"Low medical context confidence",
		"Contains contradictions",
		"Incomplete context",
		"Emergency indicators present",
	}
	if diff := cmp.Diff(want, res.ReliabilityIndicators); diff != "" {
		t.Errorf("indicators mismatch (-want +got):\n%s", diff)
	}
}

func TestScore_OverallIsNotClamped(t *testing.T) {
	t.Parallel()
	def := confidence.Definition{
		{Name: "medical_context", Weight: 1, Components: []confidence.Component{{Name: "terminology", Weight: 1}}},
	}
	res := confidence.NewScorer(def).Score(confidence.ValidationData{MedicalTerms: terms(20)})

	if res.OverallConfidence != 2.0 {
		t.Errorf("expected unclamped overall 2.0, got %v", res.OverallConfidence)
	}
	if res.Level != confidence.LevelVeryHigh {
		t.Errorf("expected Very High, got %q", res.Level)
	}
}

func TestWithEvaluator_OverridesNeutralDefault(t *testing.T) {
	t.Parallel()
	s := confidence.NewScorer(nil,
		confidence.WithEvaluator("consistency", "internal_consistency", func(d confidence.ValidationData) float64 {
			if d.Contradictions {
				return 0
			}
			return 1
		}),
	)

	clean := s.Score(confidence.ValidationData{})
	if got := clean.FactorScores["consistency"]; got != 0.75 {
		t.Errorf("expected consistency 0.75, got %v", got)
	}
	dirty := s.Score(confidence.ValidationData{Contradictions: true})
	if got := dirty.FactorScores["consistency"]; got != 0.25 {
		t.Errorf("expected consistency 0.25, got %v", got)
	}
}

func TestNewScorer_CopiesDefinition(t *testing.T) {
	t.Parallel()
	def := confidence.DefaultDefinition()
	s := confidence.NewScorer(def)
	def[0].Weight = 100

	if got := s.Definition()[0].Weight; got != 0.25 {
		t.Errorf("expected scorer to keep its own copy, got weight %v", got)
	}
}

func TestLevelFor_BucketsAreMonotoneAndExhaustive(t *testing.T) {
	t.Parallel()
	cases := []struct {
		score float64
		want  confidence.Level
	}{
		{-1, confidence.LevelVeryLow},
		{0, confidence.LevelVeryLow},
		{0.399, confidence.LevelVeryLow},
		{0.40, confidence.LevelLow},
		{0.599, confidence.LevelLow},
		{0.60, confidence.LevelModerate},
		{0.749, confidence.LevelModerate},
		{0.75, confidence.LevelHigh},
		{0.899, confidence.LevelHigh},
		{0.90, confidence.LevelVeryHigh},
		{1.7, confidence.LevelVeryHigh},
	}
	rank := map[confidence.Level]int{
		confidence.LevelVeryLow: 0, confidence.LevelLow: 1, confidence.LevelModerate: 2,
		confidence.LevelHigh: 3, confidence.LevelVeryHigh: 4,
	}
	prev := -1
	for _, tc := range cases {
		got := confidence.LevelFor(tc.score)
		if got != tc.want {
			t.Errorf("LevelFor(%v) = %q, want %q", tc.score, got, tc.want)
		}
		if rank[got] < prev {
			t.Errorf("LevelFor not monotone at %v", tc.score)
		}
		prev = rank[got]
	}
}
