package aggregator

import (
	"context"
	"testing"
	"time"

	"github.com/Sonukumar0009/Farmart/internal/model"
)

func TestRunTotals(t *testing.T) {
	ch := make(chan model.Event, 100)
	agg := New(ch, func() int64 { return 3 })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go agg.Start(ctx)

	ch <- model.Event{Type: model.EventRunStarted}
	ch <- model.Event{Type: model.EventMemberScanned, LinesMatched: 4}
	ch <- model.Event{Type: model.EventMemberSkipped}
	ch <- model.Event{Type: model.EventMemberScanned, LinesMatched: 2}
	ch <- model.Event{Type: model.EventRunFinished, OutputPath: "out/output_D.txt"}

	time.Sleep(200 * time.Millisecond)

	stats := agg.Snapshot()
	if stats.Runs != 1 || stats.Failures != 0 {
		t.Errorf("expected 1 run / 0 failures, got %d / %d", stats.Runs, stats.Failures)
	}
	if stats.MembersScanned != 2 || stats.MembersSkipped != 1 {
		t.Errorf("expected 2 scanned / 1 skipped, got %d / %d", stats.MembersScanned, stats.MembersSkipped)
	}
	if stats.LinesMatched != 6 {
		t.Errorf("expected 6 matched lines, got %d", stats.LinesMatched)
	}
	if stats.LastOutput != "out/output_D.txt" {
		t.Errorf("expected last output, got %q", stats.LastOutput)
	}
	if stats.LastRunAt == nil {
		t.Error("expected last run time")
	}
	if stats.DroppedEvents != 3 {
		t.Errorf("expected 3 dropped, got %d", stats.DroppedEvents)
	}
}

func TestFailuresRecorded(t *testing.T) {
	ch := make(chan model.Event, 10)
	agg := New(ch, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go agg.Start(ctx)

	ch <- model.Event{Type: model.EventRunFailed, Error: "archive not found"}
	time.Sleep(200 * time.Millisecond)

	stats := agg.Snapshot()
	if stats.Runs != 1 || stats.Failures != 1 {
		t.Errorf("expected 1 run / 1 failure, got %d / %d", stats.Runs, stats.Failures)
	}
	if stats.LastError != "archive not found" {
		t.Errorf("expected last error, got %q", stats.LastError)
	}
}

func TestStopsWhenChannelCloses(t *testing.T) {
	ch := make(chan model.Event)
	agg := New(ch, nil)

	done := make(chan struct{})
	go func() {
		agg.Start(context.Background())
		close(done)
	}()

	close(ch)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("aggregator did not stop after channel close")
	}
}
