package hub

import (
	"testing"
	"time"

	"github.com/Sonukumar0009/Farmart/internal/model"
)

func TestHubBroadcast(t *testing.T) {
	h := New()

	sub1 := h.Subscribe()
	sub2 := h.Subscribe()

	h.Publish(model.Event{Type: model.EventRunFinished, Date: "2024-01-01"})

	// Both subscribers should receive it.
	for i, sub := range []<-chan model.Event{sub1, sub2} {
		select {
		case ev := <-sub:
			if ev.Type != model.EventRunFinished || ev.Date != "2024-01-01" {
				t.Errorf("sub%d: unexpected event %+v", i+1, ev)
			}
		case <-time.After(time.Second):
			t.Fatalf("sub%d: timed out", i+1)
		}
	}
}

func TestHubSlowConsumer(t *testing.T) {
	h := New()

	// A subscriber that never reads.
	_ = h.Subscribe()

	for i := 0; i < subscriberBuffer+100; i++ {
		h.Publish(model.Event{Type: model.EventMemberScanned})
	}

	if got := h.Dropped(); got != 100 {
		t.Errorf("expected 100 dropped events, got %d", got)
	}
}

func TestHubUnsubscribe(t *testing.T) {
	h := New()
	sub := h.Subscribe()
	h.Unsubscribe(sub)

	if _, ok := <-sub; ok {
		t.Error("expected channel closed after Unsubscribe")
	}

	// Publishing with no subscribers must not panic or block.
	h.Publish(model.Event{Type: model.EventRunStarted})
}

func TestHubClose(t *testing.T) {
	h := New()
	sub := h.Subscribe()
	h.Close()

	if _, ok := <-sub; ok {
		t.Error("expected channel closed after Close")
	}
	late := h.Subscribe()
	if _, ok := <-late; ok {
		t.Error("expected closed channel for subscription after Close")
	}
}

func TestHubLen(t *testing.T) {
	h := New()
	a := h.Subscribe()
	_ = h.Subscribe()
	if h.Len() != 2 {
		t.Fatalf("expected 2 subscribers, got %d", h.Len())
	}
	h.Unsubscribe(a)
	if h.Len() != 1 {
		t.Errorf("expected 1 subscriber, got %d", h.Len())
	}
}
