package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/draiml/draiml/internal/confidence"
	"github.com/draiml/draiml/internal/ethics"
	"github.com/draiml/draiml/internal/knowledge"
	"github.com/draiml/draiml/internal/logging"
	"github.com/draiml/draiml/internal/logic"
	"github.com/draiml/draiml/internal/metrics"
	"github.com/draiml/draiml/internal/recorder"
	"github.com/draiml/draiml/internal/server"
	"github.com/draiml/draiml/internal/socratic"
)

// ErrNilLogger is returned by NewApplication when no logger is supplied.
var ErrNilLogger = errors.New("app: nil logger")

// Application is the global runtime state container. It holds the config
// and the pipeline components that are built once and shared across
// requests. Pass Application into modules that need access to them rather
// than using package-level variables.
type Application struct {
	Config *Config
	Logger logging.Logger

	Knowledge *knowledge.Base
	Scorer    *confidence.Scorer
	Validator *logic.Validator
	Analyzer  *logic.Analyzer
	Ledger    *recorder.Ledger
	Ethics    *ethics.Evaluator
	Metrics   *metrics.Metrics
}

// NewApplication validates cfg and constructs every component. The caller
// owns the returned Application and must Close it.
func NewApplication(cfg *Config, logger logging.Logger) (*Application, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sink, err := recorder.NewSink(cfg.Recorder, logger.With(logging.Field{Key: "component", Value: "recorder"}))
	if err != nil {
		return nil, fmt.Errorf("opening decision sink: %w", err)
	}

	kb := knowledge.Load(cfg.Knowledge, logger)
	scorer := confidence.NewScorer(nil)
	m := metrics.New(cfg.RuntimeMetrics)
	ledger := recorder.NewLedger(sink, recorder.WithSubscriberBuffer(cfg.Recorder.SubscriberBuffer))
	if err := ledger.Resume(context.Background()); err != nil {
		_ = ledger.Close()
		return nil, fmt.Errorf("resuming decision ledger: %w", err)
	}

	a := &Application{
		Config:    cfg,
		Logger:    logger,
		Knowledge: kb,
		Scorer:    scorer,
		Validator: logic.NewValidator(kb),
		Analyzer:  logic.NewAnalyzer(kb, scorer, logger),
		Ledger:    ledger,
		Ethics:    ethics.NewEvaluator(ledger, logger, ethics.WithObserver(m)),
		Metrics:   m,
	}
	logger.Info("application initialized",
		logging.Field{Key: "sink", Value: sinkKind(cfg.Recorder.Kind)},
		logging.Field{Key: "terminology_keys", Value: len(kb.TerminologyKeys())})
	return a, nil
}

// NewSession starts a socratic session over the shared components.
func (a *Application) NewSession() *socratic.Session {
	return socratic.NewSession(a.Validator, a.Ethics, a.Logger)
}

// ServerDeps exposes the components the HTTP server needs.
func (a *Application) ServerDeps() server.Deps {
	return server.Deps{
		Validator:  a.Validator,
		Analyzer:   a.Analyzer,
		Scorer:     a.Scorer,
		Ethics:     a.Ethics,
		Ledger:     a.Ledger,
		Metrics:    a.Metrics,
		NewSession: a.NewSession,
	}
}

// Close releases the ledger and its sink.
func (a *Application) Close() error {
	if a == nil {
		return errors.New("application is nil")
	}
	a.Logger.Info("application shutdown initiated")
	return a.Ledger.Close()
}

func sinkKind(k string) string {
	if k == "" {
		return recorder.KindMemory
	}
	return k
}
