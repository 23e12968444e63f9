package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/draiml/draiml/internal/app"
	"github.com/draiml/draiml/internal/knowledge"
	"github.com/draiml/draiml/internal/recorder"
	"github.com/draiml/draiml/internal/testutil"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestDefaultConfig_Valid(t *testing.T) {
	t.Parallel()
	if err := app.DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadConfig_Overlay(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "draiml.yaml", `
logging:
  level: debug
server:
  listen_addr: "127.0.0.1:9090"
  read_timeout: 5s
recorder:
  kind: sqlite
  path: /tmp/decisions.db
`)

	cfg, err := app.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Server.ListenAddr != "127.0.0.1:9090" || cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected default shutdown timeout to survive overlay, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Recorder.Kind != recorder.KindSQLite || cfg.Recorder.Path != "/tmp/decisions.db" {
		t.Errorf("unexpected recorder config %+v", cfg.Recorder)
	}
	if cfg.Knowledge.TerminologyPath != "data/terminology.yaml" {
		t.Errorf("expected default knowledge paths, got %+v", cfg.Knowledge)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"unknown sink":      "recorder:\n  kind: postgres\n  path: x\n",
		"sink without path": "recorder:\n  kind: badger\n",
		"bad log level":     "logging:\n  level: loud\n",
		"empty listen addr": "server:\n  listen_addr: \"\"\n",
		"negative buffer":   "recorder:\n  subscriber_buffer: -1\n",
	}
	for name, content := range cases {
		_, err := app.LoadConfig(writeFile(t, "c.yaml", content))
		if !errors.Is(err, app.ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}

	if _, err := app.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := app.LoadConfig(writeFile(t, "broken.yaml", "server: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestNewApplication_NilLogger(t *testing.T) {
	t.Parallel()
	if _, err := app.NewApplication(app.DefaultConfig(), nil); !errors.Is(err, app.ErrNilLogger) {
		t.Fatalf("expected ErrNilLogger, got %v", err)
	}
}

func TestNewApplication_WiresDurableLedger(t *testing.T) {
	t.Parallel()
	root := filepath.Join("..", "..", "data")
	cfg := app.DefaultConfig()
	cfg.Recorder = recorder.Config{Kind: recorder.KindSQLite, Path: filepath.Join(t.TempDir(), "decisions.db")}
	cfg.Knowledge.TerminologyPath = filepath.Join(root, "terminology.yaml")
	cfg.Knowledge.ConditionsPath = filepath.Join(root, "conditions.yaml")
	cfg.Knowledge.SymptomPatternsPath = filepath.Join(root, "symptom_patterns.yaml")
	cfg.RuntimeMetrics = false

	a, err := app.NewApplication(cfg, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	defer a.Close()

	ev := a.Ethics.Evaluate(context.Background(), "Chest pain at rest", nil, "")
	if !ev.EmergencyStatus {
		t.Errorf("expected emergency evaluation")
	}

	entries, err := a.Ledger.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Evaluation.ID != ev.ID {
		t.Fatalf("expected the evaluation in the durable sink, got %+v", entries)
	}

	if !a.Validator.IsSound("Fever occurs because of infection") {
		t.Error("expected validator built over the loaded terminology")
	}
	deps := a.ServerDeps()
	if deps.Ledger != a.Ledger || deps.Metrics == nil {
		t.Error("expected server deps to share the application components")
	}
	if deps.NewSession == nil || deps.NewSession().ID == "" {
		t.Error("expected server deps to build sessions through the application")
	}
}

func TestNewApplication_ResumesLedgerSequence(t *testing.T) {
	t.Parallel()
	cfg := app.DefaultConfig()
	cfg.Recorder = recorder.Config{Kind: recorder.KindSQLite, Path: filepath.Join(t.TempDir(), "decisions.db")}
	cfg.Knowledge = knowledge.Config{}
	cfg.RuntimeMetrics = false

	for run := 1; run <= 2; run++ {
		a, err := app.NewApplication(cfg, &testutil.DummyLogger{})
		if err != nil {
			t.Fatalf("NewApplication: %v", err)
		}
		a.Ethics.Evaluate(context.Background(), "Rest at home", nil, "")
		entries := a.Ledger.Entries()
		_ = a.Close()
		if len(entries) != 1 || entries[0].Seq != run {
			t.Errorf("run %d: expected one entry with seq %d, got %+v", run, run, entries)
		}
	}
}

func TestNewApplication_UnopenableSink(t *testing.T) {
	t.Parallel()
	blocker := writeFile(t, "file", "x")
	cfg := app.DefaultConfig()
	cfg.Recorder = recorder.Config{Kind: recorder.KindJSONL, Path: filepath.Join(blocker, "decisions.jsonl")}
	cfg.RuntimeMetrics = false

	if _, err := app.NewApplication(cfg, &testutil.DummyLogger{}); err == nil {
		t.Fatal("expected error opening a sink under a regular file")
	}
}
