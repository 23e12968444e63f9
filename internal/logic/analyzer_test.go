package logic_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/draiml/draiml/internal/confidence"
	"github.com/draiml/draiml/internal/logic"
	"github.com/draiml/draiml/internal/testutil"
)

func TestAnalyze_ClinicalStatement(t *testing.T) {
	t.Parallel()
	an := logic.NewAnalyzer(sampleBase(t), nil, &testutil.DummyLogger{})

	a := an.Analyze("Sudden severe chest pain and fever because of pneumonia")

	mc := a.MedicalContext
	if diff := cmp.Diff([]string{"chest pain", "fever", "pneumonia"}, mc.IdentifiedTerms); diff != "" {
		t.Errorf("terms mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"temporal:acute", "severity:severe"}, mc.IdentifiedPatterns); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
	if mc.ContextScore != 1.0 || mc.ContextType != logic.ContextClinical {
		t.Errorf("expected clinical context scored 1.0, got %v %q", mc.ContextScore, mc.ContextType)
	}
	if !a.LogicalStructure.IsSound || a.LogicalStructure.TokenCount != 9 {
		t.Errorf("unexpected logical structure %+v", a.LogicalStructure)
	}
	if a.Severity != "severe" {
		t.Errorf("expected severity severe, got %q", a.Severity)
	}
	if diff := cmp.Diff([]string{"chest pain"}, a.EmergencyIndicators); diff != "" {
		t.Errorf("emergency indicators mismatch (-want +got):\n%s", diff)
	}

	wantLinks := []logic.Relationship{
		{Symptom: "chest pain", Condition: "pneumonia", Kind: "common_symptom"},
		{Symptom: "fever", Condition: "pneumonia", Kind: "common_symptom"},
	}
	if diff := cmp.Diff(wantLinks, a.Relationships.Links); diff != "" {
		t.Errorf("relationships mismatch (-want +got):\n%s", diff)
	}
	if a.Relationships.Confidence != 1 {
		t.Errorf("expected relationship confidence 1, got %v", a.Relationships.Confidence)
	}
	if len(a.Contradictions) != 0 {
		t.Errorf("expected no contradictions, got %+v", a.Contradictions)
	}

	if a.Confidence.OverallConfidence != 0.51 || a.Confidence.Level != confidence.LevelLow {
		t.Errorf("expected overall 0.51 Low, got %v %q", a.Confidence.OverallConfidence, a.Confidence.Level)
	}
	if diff := cmp.Diff([]string{"Emergency indicators present"}, a.Confidence.ReliabilityIndicators); diff != "" {
		t.Errorf("indicators mismatch (-want +got):\n%s", diff)
	}

	var steps []string
	for _, s := range a.ReasoningChain {
		steps = append(steps, s.Step)
	}
	if diff := cmp.Diff([]string{"context", "patterns", "relationships"}, steps); diff != "" {
		t.Errorf("reasoning chain mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyze_Contradictions(t *testing.T) {
	t.Parallel()
	an := logic.NewAnalyzer(sampleBase(t), nil, &testutil.DummyLogger{})

	a := an.Analyze("Slight but intense headache, sudden yet persistent, in hypertension treated with ibuprofen")

	var got [][]string
	for _, c := range a.Contradictions {
		got = append(got, append([]string{c.Type}, c.Descriptors...))
	}
	want := [][]string{
		{"internal", "mild", "severe"},
		{"internal", "acute", "chronic"},
		{"knowledge_base", "hypertension", "ibuprofen"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("contradictions mismatch (-want +got):\n%s", diff)
	}
	if a.Severity != "severe" {
		t.Errorf("expected most severe descriptor to win, got %q", a.Severity)
	}
	if !a.ValidationData().Contradictions {
		t.Error("expected contradictions flag in validation data")
	}
	last := a.ReasoningChain[len(a.ReasoningChain)-1]
	if last.Step != "contradictions" || len(last.Details) != 3 {
		t.Errorf("expected contradictions step with 3 details, got %+v", last)
	}
}

func TestAnalyze_EmptyStatement(t *testing.T) {
	t.Parallel()
	an := logic.NewAnalyzer(nil, nil, &testutil.DummyLogger{})

	a := an.Analyze("")

	if a.MedicalContext.ContextType != logic.ContextUnknown || a.MedicalContext.ContextScore != 0 {
		t.Errorf("expected unknown context with score 0, got %+v", a.MedicalContext)
	}
	if a.Severity != logic.SeverityUnspecified {
		t.Errorf("expected unspecified severity, got %q", a.Severity)
	}
	if len(a.ReasoningChain) != 0 {
		t.Errorf("expected empty reasoning chain, got %+v", a.ReasoningChain)
	}
	if a.Confidence.OverallConfidence != 0.375 || a.Confidence.Level != confidence.LevelVeryLow {
		t.Errorf("expected 0.375 Very Low, got %v %q", a.Confidence.OverallConfidence, a.Confidence.Level)
	}
	want := []string{"Low medical context confidence", "Incomplete context"}
	if diff := cmp.Diff(want, a.Confidence.ReliabilityIndicators); diff != "" {
		t.Errorf("indicators mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyze_StripsMarkup(t *testing.T) {
	t.Parallel()
	an := logic.NewAnalyzer(sampleBase(t), nil, &testutil.DummyLogger{})
	raw := "<p>Fever <b>because</b> of infection today</p>"

	a := an.Analyze(raw)

	if a.Statement != raw {
		t.Errorf("expected original statement preserved, got %q", a.Statement)
	}
	if !a.LogicalStructure.IsSound {
		t.Error("expected stripped statement to be sound")
	}
	if diff := cmp.Diff([]string{"because"}, a.LogicalStructure.Connectives); diff != "" {
		t.Errorf("connectives mismatch (-want +got):\n%s", diff)
	}
}
