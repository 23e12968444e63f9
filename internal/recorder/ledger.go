package recorder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/draiml/draiml/internal/model"
)

const defaultSubscriberBuffer = 16

// Ledger is the in-memory, append-only decision log. Append and the sink
// mirror run under one mutex, so durable order always equals call order.
type Ledger struct {
	mu      sync.Mutex
	entries []Entry
	base    int // last durable seq found by Resume
	sink    Sink
	now     func() time.Time

	subBuffer int
	subs      map[int]chan Entry
	nextSub   int
	closed    bool
}

// LedgerOption customizes a Ledger.
type LedgerOption func(*Ledger)

// WithClock overrides the time source used for RecordedAt.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) { l.now = now }
}

// WithSubscriberBuffer sets the channel capacity for Subscribe.
func WithSubscriberBuffer(n int) LedgerOption {
	return func(l *Ledger) {
		if n > 0 {
			l.subBuffer = n
		}
	}
}

// NewLedger creates a ledger mirrored to sink. A nil sink keeps the ledger
// in memory only.
func NewLedger(sink Sink, opts ...LedgerOption) *Ledger {
	if sink == nil {
		sink = NopSink{}
	}
	l := &Ledger{
		sink:      sink,
		now:       time.Now,
		subBuffer: defaultSubscriberBuffer,
		subs:      map[int]chan Entry{},
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Resume continues the sequence after the last entry already held by the
// durable sink, so Seq stays monotonic across restarts. Call it before the
// first Append.
func (l *Ledger) Resume(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case l.closed:
		return ErrLedgerClosed
	case len(l.entries) > 0:
		return ErrResumeAfterAppend
	}
	if _, ok := l.sink.(NopSink); ok {
		return nil
	}
	last, err := l.sink.List(ctx, 1)
	if err != nil {
		return fmt.Errorf("reading last durable entry: %w", err)
	}
	if len(last) > 0 {
		l.base = last[len(last)-1].Seq
	}
	return nil
}

// Append records a deep copy of ev and mirrors it to the sink. The returned
// sequence number is 1-based. A sink error is returned after the in-memory
// append has already succeeded. A closed ledger rejects the entry with
// ErrLedgerClosed and records nothing.
func (l *Ledger) Append(ctx context.Context, ev *model.EthicalEvaluation) (int, error) {
	if ev == nil {
		return 0, ErrNilEvaluation
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, ErrLedgerClosed
	}

	e := Entry{
		Seq:        l.base + len(l.entries) + 1,
		RecordedAt: l.now().UTC(),
		Evaluation: *ev.Clone(),
	}
	l.entries = append(l.entries, e)

	for _, ch := range l.subs {
		select {
		case ch <- e.clone():
		default:
			// slow subscriber; the ledger never blocks on it
		}
	}

	if err := l.sink.Append(ctx, e.clone()); err != nil {
		return e.Seq, fmt.Errorf("mirroring entry %d: %w", e.Seq, err)
	}
	return e.Seq, nil
}

// Entries returns copies of every entry in append order.
func (l *Ledger) Entries() []Entry {
	return l.Recent(0)
}

// Recent returns copies of the last limit entries; limit <= 0 returns all.
func (l *Ledger) Recent(limit int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	src := tail(l.entries, limit)
	out := make([]Entry, len(src))
	for i, e := range src {
		out[i] = e.clone()
	}
	return out
}

// Len returns the number of entries appended during this process.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// List reads from the durable sink, or from memory when the ledger has no
// durable sink.
func (l *Ledger) List(ctx context.Context, limit int) ([]Entry, error) {
	if _, ok := l.sink.(NopSink); ok {
		return l.Recent(limit), nil
	}
	return l.sink.List(ctx, limit)
}

// Subscribe returns a channel receiving every entry appended after the call
// and a cancel func that unsubscribes and closes the channel.
func (l *Ledger) Subscribe() (<-chan Entry, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch := make(chan Entry, l.subBuffer)
	if l.closed {
		close(ch)
		return ch, func() {}
	}
	id := l.nextSub
	l.nextSub++
	l.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			if c, ok := l.subs[id]; ok {
				delete(l.subs, id)
				close(c)
			}
		})
	}
}

// Close ends all subscriptions and closes the sink.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	for id, ch := range l.subs {
		delete(l.subs, id)
		close(ch)
	}
	return l.sink.Close()
}
