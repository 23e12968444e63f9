// Package knowledge loads the medical terminology, condition and symptom
// pattern documents the validators match against. A document that is absent
// or unreadable is replaced by a minimal built-in default.
package knowledge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/draiml/draiml/internal/logging"
)

// Term describes one terminology entry.
type Term struct {
	Description string   `yaml:"description" json:"description,omitempty"`
	Synonyms    []string `yaml:"synonyms" json:"synonyms,omitempty"`
}

// Terminology groups terms by category.
type Terminology struct {
	Symptoms    map[string]Term `yaml:"symptoms" json:"symptoms"`
	Conditions  map[string]Term `yaml:"conditions" json:"conditions"`
	Procedures  map[string]Term `yaml:"procedures" json:"procedures"`
	Medications map[string]Term `yaml:"medications" json:"medications"`
}

// Condition is one entry of the conditions database.
type Condition struct {
	RequiresProfessional bool     `yaml:"requires_professional" json:"requires_professional"`
	Severity             string   `yaml:"severity" json:"severity"`
	CommonSymptoms       []string `yaml:"common_symptoms" json:"common_symptoms"`
	Contraindications    []string `yaml:"contraindications" json:"contraindications"`
	RelatedConditions    []string `yaml:"related_conditions" json:"related_conditions"`
}

// SymptomPatterns lists symptom phrases by temporal class.
type SymptomPatterns struct {
	Acute     []string `yaml:"acute" json:"acute"`
	Chronic   []string `yaml:"chronic" json:"chronic"`
	Emergency []string `yaml:"emergency" json:"emergency"`
	Common    []string `yaml:"common" json:"common"`
}

// Base is the loaded domain knowledge. It is read-only after Load.
type Base struct {
	Terminology     Terminology
	Conditions      map[string]Condition
	SymptomPatterns SymptomPatterns

	keys []string
}

// Terminology category names, which are themselves part of the key set.
const (
	CategorySymptoms    = "symptoms"
	CategoryConditions  = "conditions"
	CategoryProcedures  = "procedures"
	CategoryMedications = "medications"
)

// DefaultTerminology has every category present and empty.
func DefaultTerminology() Terminology {
	return Terminology{
		Symptoms:    map[string]Term{},
		Conditions:  map[string]Term{},
		Procedures:  map[string]Term{},
		Medications: map[string]Term{},
	}
}

// DefaultConditions holds the single generic entry.
func DefaultConditions() map[string]Condition {
	return map[string]Condition{
		"general": {
			RequiresProfessional: true,
			Severity:             "variable",
			CommonSymptoms:       []string{},
			Contraindications:    []string{},
			RelatedConditions:    []string{},
		},
	}
}

// DefaultSymptomPatterns has every temporal class present and empty.
func DefaultSymptomPatterns() SymptomPatterns {
	return SymptomPatterns{Acute: []string{}, Chronic: []string{}, Emergency: []string{}, Common: []string{}}
}

// Default returns a Base built only from defaults.
func Default() *Base {
	return newBase(DefaultTerminology(), DefaultConditions(), DefaultSymptomPatterns())
}

// Load reads the documents named in cfg. It never fails: each missing,
// unreadable or malformed document is logged and replaced by its default.
func Load(cfg Config, logger logging.Logger) *Base {
	if logger == nil {
		logger = logging.NewStdoutLogger("knowledge")
	}

	term := DefaultTerminology()
	if !loadDocument(cfg.TerminologyPath, "terminology", &term, logger) {
		term = DefaultTerminology()
	}
	fillTerminology(&term)

	conds := map[string]Condition{}
	if !loadDocument(cfg.ConditionsPath, "conditions", &conds, logger) || len(conds) == 0 {
		conds = DefaultConditions()
	}

	sp := DefaultSymptomPatterns()
	if !loadDocument(cfg.SymptomPatternsPath, "symptom_patterns", &sp, logger) {
		sp = DefaultSymptomPatterns()
	}

	b := newBase(term, conds, sp)
	logger.Debug("knowledge base loaded",
		logging.Field{Key: "terms", Value: len(b.keys)},
		logging.Field{Key: "conditions", Value: len(b.Conditions)})
	return b
}

// loadDocument decodes path into out. YAML is a superset of JSON, so both
// document formats go through the same decoder.
func loadDocument(path, name string, out any, logger logging.Logger) bool {
	if path == "" {
		logger.Info("no document configured, using default", logging.Field{Key: "document", Value: name})
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("document not found, using default",
				logging.Field{Key: "document", Value: name}, logging.Field{Key: "path", Value: path})
		} else {
			logger.Info("document unreadable, using default",
				logging.Field{Key: "document", Value: name}, logging.Field{Key: "error", Value: err})
		}
		return false
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		logger.Warn("document malformed, using default",
			logging.Field{Key: "document", Value: name},
			logging.Field{Key: "error", Value: fmt.Errorf("decoding %s: %w", path, err)})
		return false
	}
	return true
}

func fillTerminology(t *Terminology) {
	if t.Symptoms == nil {
		t.Symptoms = map[string]Term{}
	}
	if t.Conditions == nil {
		t.Conditions = map[string]Term{}
	}
	if t.Procedures == nil {
		t.Procedures = map[string]Term{}
	}
	if t.Medications == nil {
		t.Medications = map[string]Term{}
	}
}

func newBase(t Terminology, c map[string]Condition, sp SymptomPatterns) *Base {
	b := &Base{Terminology: t, Conditions: c, SymptomPatterns: sp}
	seen := map[string]struct{}{}
	add := func(k string) {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			return
		}
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			b.keys = append(b.keys, k)
		}
	}
	for _, cat := range []string{CategorySymptoms, CategoryConditions, CategoryProcedures, CategoryMedications} {
		add(cat)
	}
	for _, m := range []map[string]Term{t.Symptoms, t.Conditions, t.Procedures, t.Medications} {
		for k := range m {
			add(k)
		}
	}
	sort.Strings(b.keys)
	return b
}

// TerminologyKeys returns the lower-cased union of category names and term
// keys, sorted.
func (b *Base) TerminologyKeys() []string {
	return append([]string(nil), b.keys...)
}

// SymptomTerms returns the sorted symptom term keys.
func (b *Base) SymptomTerms() []string { return sortedKeys(b.Terminology.Symptoms) }

// ConditionTerms returns the sorted union of condition term keys and
// conditions database names, excluding the generic fallback entry.
func (b *Base) ConditionTerms() []string {
	set := map[string]Term{}
	for k, v := range b.Terminology.Conditions {
		set[strings.ToLower(k)] = v
	}
	for k := range b.Conditions {
		if k != "general" {
			set[strings.ToLower(k)] = Term{}
		}
	}
	return sortedKeys(set)
}

// Condition looks up a condition by case-insensitive name.
func (b *Base) Condition(name string) (Condition, bool) {
	if c, ok := b.Conditions[name]; ok {
		return c, true
	}
	for k, c := range b.Conditions {
		if strings.EqualFold(k, name) {
			return c, true
		}
	}
	return Condition{}, false
}

func sortedKeys(m map[string]Term) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, strings.ToLower(k))
	}
	sort.Strings(out)
	return out
}
