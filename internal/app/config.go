package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/draiml/draiml/internal/knowledge"
	"github.com/draiml/draiml/internal/logging"
	"github.com/draiml/draiml/internal/recorder"
	"github.com/draiml/draiml/internal/server"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the process configuration. Each section belongs to the package
// that consumes it.
type Config struct {
	Logging   logging.Config   `yaml:"logging"`
	Server    server.Config    `yaml:"server"`
	Recorder  recorder.Config  `yaml:"recorder"`
	Knowledge knowledge.Config `yaml:"knowledge"`

	// RuntimeMetrics adds Go runtime and process collectors to /metrics.
	RuntimeMetrics bool `yaml:"runtime_metrics"`
}

// DefaultConfig returns a Config populated with sensible development defaults.
func DefaultConfig() *Config {
	return &Config{
		Logging: logging.Config{Level: "info", Format: "json"},
		Server: server.Config{
			ListenAddr:      ":8080",
			ReadTimeout:     15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
			EnableH2C:       true,
			EnableSwagger:   true,
		},
		Recorder: recorder.Config{
			Kind:             recorder.KindMemory,
			SubscriberBuffer: 16,
		},
		Knowledge: knowledge.Config{
			TerminologyPath:     "data/terminology.yaml",
			ConditionsPath:      "data/conditions.yaml",
			SymptomPatternsPath: "data/symptom_patterns.yaml",
		},
		RuntimeMetrics: true,
	}
}

// LoadConfig overlays the YAML file at path onto DefaultConfig and validates
// the result. An empty path returns the validated defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var configValidate = validator.New()

// Validate checks field constraints and the cross-field rules the tags
// cannot express.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if k := c.Recorder.Kind; k != "" && k != recorder.KindMemory && c.Recorder.Path == "" {
		return fmt.Errorf("%w: recorder.path is required for kind %q", ErrInvalidConfig, k)
	}
	return nil
}
