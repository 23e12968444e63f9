// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"context"
	"sync"

	"github.com/draiml/draiml/internal/logging"
	"github.com/draiml/draiml/internal/model"
	"github.com/draiml/draiml/internal/recorder"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// WarnCount returns the number of warnings logged so far.
func (l *DummyLogger) WarnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Warns)
}

// ─── Sink ──────────────────────────────────────────────────────────────

// DummySink implements recorder.Sink in memory.
// Set AppendErr to make every Append fail after recording the attempt.
type DummySink struct {
	mu        sync.Mutex
	Entries   []recorder.Entry
	Attempts  int
	AppendErr error
	Closed    bool
}

func (d *DummySink) Append(_ context.Context, e recorder.Entry) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Attempts++
	if d.AppendErr != nil {
		return d.AppendErr
	}
	d.Entries = append(d.Entries, e)
	return nil
}

func (d *DummySink) List(_ context.Context, limit int) ([]recorder.Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := append([]recorder.Entry(nil), d.Entries...)
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (d *DummySink) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Closed = true
	return nil
}

// ─── Recorder ──────────────────────────────────────────────────────────

// DummyRecorder records appended evaluations without a ledger.
type DummyRecorder struct {
	mu    sync.Mutex
	Evals []*model.EthicalEvaluation
	Err   error
}

func (r *DummyRecorder) Append(_ context.Context, ev *model.EthicalEvaluation) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Evals = append(r.Evals, ev.Clone())
	return len(r.Evals), r.Err
}

// ─── Observer ──────────────────────────────────────────────────────────

// DummyObserver counts evaluation observations.
type DummyObserver struct {
	mu             sync.Mutex
	Evaluations    int
	RecordFailures int
}

func (o *DummyObserver) ObserveEvaluation(*model.EthicalEvaluation) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Evaluations++
}

func (o *DummyObserver) ObserveRecordFailure() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.RecordFailures++
}
