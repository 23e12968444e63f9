package knowledge

// Config points at the three domain documents. Empty paths select the
// built-in defaults without attempting a read.
type Config struct {
	TerminologyPath     string `yaml:"terminology_path" json:"terminology_path,omitempty"`
	ConditionsPath      string `yaml:"conditions_path" json:"conditions_path,omitempty"`
	SymptomPatternsPath string `yaml:"symptom_patterns_path" json:"symptom_patterns_path,omitempty"`
}
