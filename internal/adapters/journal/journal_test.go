package journal

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func event(i int) Event {
	return Event{
		At:            time.Unix(int64(i), 0),
		Kind:          KindSubmissionAccepted,
		CompetitionID: "comp-1",
		Detail:        fmt.Sprintf("event-%d", i),
	}
}

func TestJournal_RecordAndRecent(t *testing.T) {
	ctx := context.Background()
	j := NewInMemoryJournal(WithCapacity(8))

	if got := j.Recent(ctx, 10); got != nil {
		t.Errorf("expected nil from empty journal, got %v", got)
	}
	if n := j.Len(ctx); n != 0 {
		t.Errorf("expected len 0, got %d", n)
	}

	for i := 0; i < 3; i++ {
		j.Record(ctx, event(i))
	}

	if n := j.Len(ctx); n != 3 {
		t.Errorf("expected len 3, got %d", n)
	}

	recent := j.Recent(ctx, 10)
	if len(recent) != 3 {
		t.Fatalf("expected 3 events, got %d", len(recent))
	}
	// Newest first.
	for i, e := range recent {
		want := fmt.Sprintf("event-%d", 2-i)
		if e.Detail != want {
			t.Errorf("position %d: expected %s, got %s", i, want, e.Detail)
		}
	}

	limited := j.Recent(ctx, 2)
	if len(limited) != 2 || limited[0].Detail != "event-2" {
		t.Errorf("unexpected limited result: %v", limited)
	}

	if got := j.Recent(ctx, 0); got != nil {
		t.Errorf("expected nil for n=0, got %v", got)
	}
}

func TestJournal_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	j := NewInMemoryJournal(WithCapacity(4))

	for i := 0; i < 10; i++ {
		j.Record(ctx, event(i))
	}

	if n := j.Len(ctx); n != 4 {
		t.Errorf("expected len capped at 4, got %d", n)
	}

	recent := j.Recent(ctx, 4)
	if len(recent) != 4 {
		t.Fatalf("expected 4 events, got %d", len(recent))
	}
	for i, e := range recent {
		want := fmt.Sprintf("event-%d", 9-i)
		if e.Detail != want {
			t.Errorf("position %d: expected %s, got %s", i, want, e.Detail)
		}
	}
}

func TestJournal_ConcurrentRecord(t *testing.T) {
	ctx := context.Background()
	j := NewInMemoryJournal(WithCapacity(64))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				j.Record(ctx, event(g*100+i))
				j.Recent(ctx, 8)
			}
		}(g)
	}
	wg.Wait()

	if n := j.Len(ctx); n != 64 {
		t.Errorf("expected journal full at 64, got %d", n)
	}
}
