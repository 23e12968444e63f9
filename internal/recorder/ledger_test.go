package recorder_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/draiml/draiml/internal/model"
	"github.com/draiml/draiml/internal/recorder"
	"github.com/draiml/draiml/internal/testutil"
)

func evaluation(id string) *model.EthicalEvaluation {
	return &model.EthicalEvaluation{
		ID:             id,
		Timestamp:      time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		ProposedAction: "action " + id,
		SeverityLevel:  model.SeverityModerate,
		EthicalChecks: []model.EthicalCheck{
			{Principle: "do_no_harm", Passed: true},
			{Principle: "medical_accuracy", Passed: true, Recommendation: model.StringPtr("Verify information with current medical guidelines")},
		},
		IsApproved:      true,
		Warnings:        []string{},
		Recommendations: []string{},
	}
}

func fixedClock() func() time.Time {
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	var mu sync.Mutex
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		n++
		return t0.Add(time.Duration(n) * time.Second)
	}
}

func TestLedger_AppendOrderAndSequence(t *testing.T) {
	t.Parallel()
	sink := &testutil.DummySink{}
	l := recorder.NewLedger(sink, recorder.WithClock(fixedClock()))

	for i := 1; i <= 3; i++ {
		seq, err := l.Append(context.Background(), evaluation(fmt.Sprintf("e%d", i)))
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if seq != i {
			t.Errorf("expected seq %d, got %d", i, seq)
		}
	}

	entries := l.Entries()
	if len(entries) != 3 || l.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d (Len=%d)", len(entries), l.Len())
	}
	for i, e := range entries {
		if want := fmt.Sprintf("e%d", i+1); e.Evaluation.ID != want {
			t.Errorf("entry %d: expected %s, got %s", i, want, e.Evaluation.ID)
		}
		if !e.RecordedAt.After(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)) {
			t.Errorf("entry %d: unexpected RecordedAt %v", i, e.RecordedAt)
		}
	}
	if len(sink.Entries) != 3 || sink.Entries[2].Seq != 3 {
		t.Errorf("expected sink mirror of 3 entries in order, got %+v", sink.Entries)
	}
}

func TestLedger_EntriesAreIsolatedFromCallerMutation(t *testing.T) {
	t.Parallel()
	l := recorder.NewLedger(nil)
	ev := evaluation("e1")
	if _, err := l.Append(context.Background(), ev); err != nil {
		t.Fatalf("append: %v", err)
	}

	ev.ProposedAction = "mutated"
	*ev.EthicalChecks[1].Recommendation = "mutated"
	ev.Warnings = append(ev.Warnings, "mutated")

	got := l.Entries()[0]
	if got.Evaluation.ProposedAction != "action e1" {
		t.Errorf("expected stored action unaffected, got %q", got.Evaluation.ProposedAction)
	}
	if *got.Evaluation.EthicalChecks[1].Recommendation == "mutated" {
		t.Error("expected stored recommendation unaffected")
	}

	got.Evaluation.EthicalChecks[0].Passed = false
	if !l.Entries()[0].Evaluation.EthicalChecks[0].Passed {
		t.Error("expected returned entries to be copies")
	}
}

func TestLedger_SinkFailureKeepsInMemoryEntry(t *testing.T) {
	t.Parallel()
	sink := &testutil.DummySink{AppendErr: errors.New("disk full")}
	l := recorder.NewLedger(sink)

	seq, err := l.Append(context.Background(), evaluation("e1"))
	if err == nil {
		t.Fatal("expected mirror error")
	}
	if seq != 1 || l.Len() != 1 {
		t.Errorf("expected entry kept in memory, seq=%d len=%d", seq, l.Len())
	}
	if sink.Attempts != 1 {
		t.Errorf("expected one mirror attempt, got %d", sink.Attempts)
	}
}

func TestLedger_AppendNil(t *testing.T) {
	t.Parallel()
	l := recorder.NewLedger(nil)
	if _, err := l.Append(context.Background(), nil); !errors.Is(err, recorder.ErrNilEvaluation) {
		t.Errorf("expected ErrNilEvaluation, got %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("expected no entries, got %d", l.Len())
	}
}

func TestLedger_RecentAndList(t *testing.T) {
	t.Parallel()
	mem := recorder.NewLedger(nil)
	sink := &testutil.DummySink{}
	durable := recorder.NewLedger(sink)
	for i := 1; i <= 5; i++ {
		_, _ = mem.Append(context.Background(), evaluation(fmt.Sprintf("e%d", i)))
		_, _ = durable.Append(context.Background(), evaluation(fmt.Sprintf("e%d", i)))
	}

	recent := mem.Recent(2)
	if len(recent) != 2 || recent[0].Seq != 4 || recent[1].Seq != 5 {
		t.Errorf("expected last two entries, got %+v", recent)
	}

	fromMem, err := mem.List(context.Background(), 3)
	if err != nil || len(fromMem) != 3 || fromMem[0].Seq != 3 {
		t.Errorf("expected memory-backed list of 3, got %d entries (%v)", len(fromMem), err)
	}

	sink.Entries = sink.Entries[:4] // list must come from the sink, not memory
	fromSink, err := durable.List(context.Background(), 0)
	if err != nil || len(fromSink) != 4 {
		t.Errorf("expected sink-backed list of 4, got %d entries (%v)", len(fromSink), err)
	}
}

func TestLedger_SubscribeReceivesNewEntries(t *testing.T) {
	t.Parallel()
	l := recorder.NewLedger(nil)
	ch, cancel := l.Subscribe()

	_, _ = l.Append(context.Background(), evaluation("e1"))

	select {
	case e := <-ch:
		if e.Evaluation.ID != "e1" {
			t.Errorf("expected e1, got %s", e.Evaluation.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("expected entry on subscription channel")
	}

	cancel()
	cancel() // idempotent
	if _, ok := <-ch; ok {
		t.Error("expected channel closed after cancel")
	}
}

func TestLedger_SlowSubscriberDoesNotBlockAppends(t *testing.T) {
	t.Parallel()
	l := recorder.NewLedger(nil, recorder.WithSubscriberBuffer(1))
	_, cancel := l.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			_, _ = l.Append(context.Background(), evaluation(fmt.Sprintf("e%d", i)))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("appends blocked on an unread subscriber")
	}
	if l.Len() != 10 {
		t.Errorf("expected 10 entries, got %d", l.Len())
	}
}

func TestLedger_CloseEndsSubscriptionsAndClosesSink(t *testing.T) {
	t.Parallel()
	sink := &testutil.DummySink{}
	l := recorder.NewLedger(sink)
	ch, _ := l.Subscribe()

	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, ok := <-ch; ok {
		t.Error("expected subscription closed")
	}
	if !sink.Closed {
		t.Error("expected sink closed")
	}
	late, _ := l.Subscribe()
	if _, ok := <-late; ok {
		t.Error("expected subscription after close to be closed immediately")
	}
}

func TestLedger_AppendAfterCloseIsRejected(t *testing.T) {
	t.Parallel()
	sink := &testutil.DummySink{}
	l := recorder.NewLedger(sink)
	if _, err := l.Append(context.Background(), evaluation("before")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	seq, err := l.Append(context.Background(), evaluation("after"))
	if !errors.Is(err, recorder.ErrLedgerClosed) {
		t.Fatalf("expected ErrLedgerClosed, got %v", err)
	}
	if seq != 0 {
		t.Errorf("expected seq 0, got %d", seq)
	}
	if l.Len() != 1 || len(sink.Entries) != 1 {
		t.Errorf("expected closed ledger unchanged, got %d in memory, %d in sink", l.Len(), len(sink.Entries))
	}
	if err := l.Resume(context.Background()); !errors.Is(err, recorder.ErrLedgerClosed) {
		t.Errorf("expected Resume to report ErrLedgerClosed, got %v", err)
	}
}

func TestLedger_ResumeAfterAppend(t *testing.T) {
	t.Parallel()
	l := recorder.NewLedger(&testutil.DummySink{})
	defer l.Close()
	_, _ = l.Append(context.Background(), evaluation("e1"))
	if err := l.Resume(context.Background()); !errors.Is(err, recorder.ErrResumeAfterAppend) {
		t.Fatalf("expected ErrResumeAfterAppend, got %v", err)
	}
}

func TestLedger_ConcurrentAppendsAreSerialized(t *testing.T) {
	t.Parallel()
	sink := &testutil.DummySink{}
	l := recorder.NewLedger(sink)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = l.Append(context.Background(), evaluation(fmt.Sprintf("e%d", i)))
		}(i)
	}
	wg.Wait()

	entries := l.Entries()
	if len(entries) != 20 || len(sink.Entries) != 20 {
		t.Fatalf("expected 20 entries in memory and sink, got %d/%d", len(entries), len(sink.Entries))
	}
	for i := range entries {
		if entries[i].Seq != i+1 || sink.Entries[i].Seq != i+1 {
			t.Errorf("position %d: memory seq %d, sink seq %d", i, entries[i].Seq, sink.Entries[i].Seq)
		}
		if entries[i].Evaluation.ID != sink.Entries[i].Evaluation.ID {
			t.Errorf("position %d: memory %s differs from sink %s", i, entries[i].Evaluation.ID, sink.Entries[i].Evaluation.ID)
		}
	}
}
