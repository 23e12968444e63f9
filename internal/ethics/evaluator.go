package ethics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/draiml/draiml/internal/logging"
	"github.com/draiml/draiml/internal/model"
	"github.com/draiml/draiml/internal/patterns"
	"github.com/draiml/draiml/internal/recorder"
	"github.com/draiml/draiml/internal/response"
)

// DefaultSeverity is used when Evaluate is called with an empty severity.
const DefaultSeverity = model.SeverityModerate

// Recorder receives every evaluation before it is returned to the caller.
// recorder.Ledger satisfies it.
type Recorder interface {
	Append(ctx context.Context, ev *model.EthicalEvaluation) (int, error)
}

// Observer is notified of evaluations and recording failures.
type Observer interface {
	ObserveEvaluation(ev *model.EthicalEvaluation)
	ObserveRecordFailure()
}

type nopObserver struct{}

func (nopObserver) ObserveEvaluation(*model.EthicalEvaluation) {}
func (nopObserver) ObserveRecordFailure()                      {}

// Option customizes an Evaluator.
type Option func(*Evaluator)

// WithObserver attaches an observer.
func WithObserver(o Observer) Option {
	return func(e *Evaluator) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithClock overrides the evaluation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) { e.now = now }
}

// WithIDFunc overrides evaluation id generation.
func WithIDFunc(fn func() string) Option {
	return func(e *Evaluator) { e.newID = fn }
}

// Evaluator runs the principle checks and records each evaluation. It holds
// no per-call state and is safe for concurrent use when its Recorder is.
type Evaluator struct {
	recorder Recorder
	observer Observer
	logger   logging.Logger
	now      func() time.Time
	newID    func() string
}

// NewEvaluator creates an evaluator. A nil recorder keeps evaluations in a
// private in-memory ledger.
func NewEvaluator(rec Recorder, logger logging.Logger, opts ...Option) *Evaluator {
	if rec == nil {
		rec = recorder.NewLedger(nil)
	}
	if logger == nil {
		logger = logging.NewStdoutLogger("ethics")
	}
	e := &Evaluator{
		recorder: rec,
		observer: nopObserver{},
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// IsEmergency reports whether text contains any emergency keyword.
func IsEmergency(text string) bool {
	return patterns.IsEmergency(text)
}

// Evaluate checks action against every principle predicate and records the
// result. Recording failures are logged and never fail the evaluation.
func (e *Evaluator) Evaluate(ctx context.Context, action string, patientContext map[string]any, severity string) *model.EthicalEvaluation {
	if severity == "" {
		severity = DefaultSeverity
	}
	emergency := IsEmergency(action)

	ev := &model.EthicalEvaluation{
		ID:              e.newID(),
		Timestamp:       e.now().UTC(),
		ProposedAction:  action,
		SeverityLevel:   severity,
		EthicalChecks:   make([]model.EthicalCheck, 0, len(checks)),
		IsApproved:      true,
		Warnings:        []string{},
		Recommendations: []string{},
		EmergencyStatus: emergency,
	}
	for _, fn := range checks {
		c := fn(action, patientContext, emergency)
		ev.EthicalChecks = append(ev.EthicalChecks, c)
		if c.Passed {
			continue
		}
		ev.IsApproved = false
		if c.Warning != nil {
			ev.Warnings = append(ev.Warnings, *c.Warning)
		}
		if c.Recommendation != nil {
			ev.Recommendations = append(ev.Recommendations, *c.Recommendation)
		}
	}

	e.record(ctx, ev)
	return ev
}

func (e *Evaluator) record(ctx context.Context, ev *model.EthicalEvaluation) {
	seq, err := e.recorder.Append(ctx, ev)
	if err != nil {
		e.logger.Warn("failed to record decision",
			logging.Field{Key: "evaluation_id", Value: ev.ID},
			logging.Field{Key: "seq", Value: seq},
			logging.Field{Key: "error", Value: err})
		e.observer.ObserveRecordFailure()
	}
	e.observer.ObserveEvaluation(ev)
	e.logger.Info("medical decision evaluated",
		logging.Field{Key: "evaluation_id", Value: ev.ID},
		logging.Field{Key: "severity", Value: ev.SeverityLevel},
		logging.Field{Key: "approved", Value: ev.IsApproved},
		logging.Field{Key: "emergency", Value: ev.EmergencyStatus},
		logging.Field{Key: "warnings", Value: len(ev.Warnings)})
}

// ValidateResponse evaluates a generated response and frames it when it is
// not approved or describes an emergency.
func (e *Evaluator) ValidateResponse(ctx context.Context, resp string, patientContext map[string]any, severity string) *model.ValidationResult {
	ev := e.Evaluate(ctx, resp, patientContext, severity)

	out := &model.ValidationResult{
		OriginalResponse: resp,
		IsValid:          ev.IsApproved,
		Warnings:         append([]string{}, ev.Warnings...),
		Recommendations:  append([]string{}, ev.Recommendations...),
		EmergencyStatus:  ev.EmergencyStatus,
		ModifiedResponse: resp,
		EvaluationID:     ev.ID,
	}
	if !ev.IsApproved || ev.EmergencyStatus {
		out.ModifiedResponse = response.Transform(resp, ev.Warnings, ev.EmergencyStatus)
	}
	return out
}
