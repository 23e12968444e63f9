// Package patterns holds the static lexical cue tables used across the
// validation pipeline: the symptom/condition/treatment/risk taxonomy and the
// emergency, risk and uncertainty word lists. Tables are package-level and
// only reachable through accessors that return copies.
package patterns

import "strings"

// Category groups.
const (
	GroupSymptom   = "symptom"
	GroupCondition = "condition"
	GroupTreatment = "treatment"
	GroupRisk      = "risk"
)

type subcategory struct {
	name    string
	phrases []string
}

type category struct {
	name  string
	group string
	subs  []subcategory
}

// taxonomy is ordered so every traversal is deterministic.
var taxonomy = []category{
	{name: "temporal", group: GroupSymptom, subs: []subcategory{
		{"acute", []string{"sudden", "abrupt", "recent", "new onset", "immediate"}},
		{"chronic", []string{"long-term", "ongoing", "persistent", "continuous", "lasting"}},
		{"intermittent", []string{"comes and goes", "periodic", "recurring", "occasional", "fluctuating"}},
		{"progressive", []string{"worsening", "increasing", "deteriorating", "advancing", "developing"}},
	}},
	{name: "severity", group: GroupSymptom, subs: []subcategory{
		{"mild", []string{"slight", "minor", "minimal", "light", "gentle"}},
		{"moderate", []string{"medium", "intermediate", "moderate-intensity", "substantial"}},
		{"severe", []string{"intense", "extreme", "severe", "excruciating", "unbearable"}},
		{"critical", []string{"life-threatening", "emergency", "critical", "urgent", "serious"}},
	}},
	{name: "quality", group: GroupSymptom, subs: []subcategory{
		{"pain", []string{"sharp", "dull", "throbbing", "burning", "stabbing", "aching"}},
		{"sensation", []string{"tingling", "numbness", "itching", "pressure", "tightness"}},
		{"visual", []string{"blurred", "double vision", "spots", "flashing", "dimness"}},
		{"auditory", []string{"ringing", "buzzing", "muffled", "loss of hearing"}},
	}},
	{name: "location", group: GroupSymptom, subs: []subcategory{
		{"specific", []string{"localized", "focused", "specific area", "point tenderness"}},
		{"radiating", []string{"spreading", "moving", "radiating to", "extending"}},
		{"bilateral", []string{"both sides", "bilateral", "symmetrical"}},
		{"systemic", []string{"throughout body", "generalized", "systemic", "widespread"}},
	}},
	{name: "condition", group: GroupCondition, subs: []subcategory{
		{"diagnostic", []string{"diagnosed with", "confirmed", "testing showed", "results indicate"}},
		{"suspected", []string{"suspected", "possible", "probable", "likely", "consistent with"}},
		{"differential", []string{"rule out", "versus", "differential includes", "to consider"}},
		{"comorbid", []string{"along with", "associated with", "complicated by", "concurrent"}},
	}},
	{name: "treatment", group: GroupTreatment, subs: []subcategory{
		{"medication", []string{"prescribed", "taking", "administered", "dosage", "frequency"}},
		{"procedure", []string{"underwent", "performed", "scheduled for", "completed"}},
		{"therapy", []string{"physical therapy", "occupational therapy", "counseling", "rehabilitation"}},
		{"lifestyle", []string{"diet", "exercise", "sleep", "stress management", "lifestyle changes"}},
	}},
	{name: "risk_factors", group: GroupRisk, subs: []subcategory{
		{"demographic", []string{"age", "gender", "ethnicity", "family history"}},
		{"lifestyle", []string{"smoking", "alcohol", "diet", "exercise", "occupation"}},
		{"medical", []string{"previous condition", "chronic disease", "medication history"}},
		{"environmental", []string{"exposure to", "travel history", "living conditions"}},
	}},
}

func lookup(name string) *category {
	for i := range taxonomy {
		if taxonomy[i].name == name {
			return &taxonomy[i]
		}
	}
	return nil
}

// Categories returns the category names in definition order.
func Categories() []string {
	out := make([]string, 0, len(taxonomy))
	for _, c := range taxonomy {
		out = append(out, c.name)
	}
	return out
}

// CategoriesInGroup returns the categories that belong to group, in order.
func CategoriesInGroup(group string) []string {
	var out []string
	for _, c := range taxonomy {
		if c.group == group {
			out = append(out, c.name)
		}
	}
	return out
}

// Subcategories returns the subcategory names of cat, or nil if cat is unknown.
func Subcategories(cat string) []string {
	c := lookup(cat)
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.subs))
	for _, s := range c.subs {
		out = append(out, s.name)
	}
	return out
}

// Phrases returns a copy of the phrase list for cat/sub.
func Phrases(cat, sub string) []string {
	c := lookup(cat)
	if c == nil {
		return nil
	}
	for _, s := range c.subs {
		if s.name == sub {
			return append([]string(nil), s.phrases...)
		}
	}
	return nil
}

// Match records which phrases of one subcategory occurred in a text.
type Match struct {
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Phrases     []string `json:"phrases"`
}

// Label renders the match as "category:subcategory".
func (m Match) Label() string {
	return m.Category + ":" + m.Subcategory
}

// MatchCategory returns the subcategories of cat with at least one phrase
// occurring in text. Matching is a case-insensitive substring test.
func MatchCategory(text, cat string) []Match {
	c := lookup(cat)
	if c == nil {
		return nil
	}
	lower := strings.ToLower(text)
	var out []Match
	for _, s := range c.subs {
		var hits []string
		for _, p := range s.phrases {
			if strings.Contains(lower, p) {
				hits = append(hits, p)
			}
		}
		if len(hits) > 0 {
			out = append(out, Match{Category: c.name, Subcategory: s.name, Phrases: hits})
		}
	}
	return out
}

// MatchAll runs MatchCategory over every category and keys the results by
// category name. Categories without hits map to an empty slice.
func MatchAll(text string) map[string][]Match {
	out := make(map[string][]Match, len(taxonomy))
	for _, c := range taxonomy {
		m := MatchCategory(text, c.name)
		if m == nil {
			m = []Match{}
		}
		out[c.name] = m
	}
	return out
}
