// Package recorder keeps the append-only decision ledger: every ethical
// evaluation in call order, held in memory and mirrored to a durable sink.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/draiml/draiml/internal/logging"
	"github.com/draiml/draiml/internal/model"
)

var (
	// ErrUnknownSinkKind is returned by NewSink for an unsupported Config.Kind.
	ErrUnknownSinkKind = errors.New("recorder: unknown sink kind")

	// ErrNilEvaluation is returned when appending a nil evaluation.
	ErrNilEvaluation = errors.New("recorder: nil evaluation")

	// ErrLedgerClosed is returned by Append and Resume after Close.
	ErrLedgerClosed = errors.New("recorder: ledger closed")

	// ErrResumeAfterAppend is returned when Resume follows an Append.
	ErrResumeAfterAppend = errors.New("recorder: resume after append")

	// ErrMissingPath is returned when a durable sink has no path configured.
	ErrMissingPath = errors.New("recorder: sink path required")
)

// Entry is one ledger record.
type Entry struct {
	Seq        int                     `json:"seq"`
	RecordedAt time.Time               `json:"recorded_at"`
	Evaluation model.EthicalEvaluation `json:"evaluation"`
}

func (e Entry) clone() Entry {
	e.Evaluation = *e.Evaluation.Clone()
	return e
}

// Sink is a durable, append-only mirror of the ledger. List returns the most
// recent limit entries in insertion order; limit <= 0 returns everything.
type Sink interface {
	Append(ctx context.Context, e Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

// NopSink keeps nothing; the in-memory ledger is the only record.
type NopSink struct{}

func (NopSink) Append(context.Context, Entry) error        { return nil }
func (NopSink) List(context.Context, int) ([]Entry, error) { return nil, nil }
func (NopSink) Close() error                               { return nil }

// NewSink opens the sink described by cfg.
func NewSink(cfg Config, logger logging.Logger) (Sink, error) {
	if logger == nil {
		logger = logging.NewStdoutLogger("recorder")
	}
	switch cfg.Kind {
	case "", KindMemory:
		return NopSink{}, nil
	case KindSQLite, KindBadger, KindJSONL:
		if cfg.Path == "" {
			return nil, fmt.Errorf("%s sink: %w", cfg.Kind, ErrMissingPath)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSinkKind, cfg.Kind)
	}

	logger = logger.With(logging.Field{Key: "sink", Value: cfg.Kind})
	switch cfg.Kind {
	case KindSQLite:
		return NewSQLiteSink(cfg.Path, logger)
	case KindBadger:
		return NewBadgerSink(cfg.Path, logger)
	default:
		return NewJSONLSink(cfg.Path, logger)
	}
}

// tail keeps the last limit entries of es.
func tail(es []Entry, limit int) []Entry {
	if limit > 0 && len(es) > limit {
		return es[len(es)-limit:]
	}
	return es
}
