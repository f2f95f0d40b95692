package aggregator

import (
	"context"
	"sync"
	"time"

	"github.com/Sonukumar0009/Farmart/internal/model"
)

// Stats holds a point-in-time snapshot of extraction metrics.
type Stats struct {
	Uptime         string     `json:"uptime"`
	Runs           int64      `json:"runs"`
	Failures       int64      `json:"failures"`
	MembersScanned int64      `json:"members_scanned"`
	MembersSkipped int64      `json:"members_skipped"`
	LinesMatched   int64      `json:"lines_matched"`
	DroppedEvents  int64      `json:"dropped_events"`
	LastRunAt      *time.Time `json:"last_run_at,omitempty"`
	LastOutput     string     `json:"last_output,omitempty"`
	LastError      string     `json:"last_error,omitempty"`
}

// Aggregator consumes extraction events and keeps running totals.
type Aggregator struct {
	mu        sync.RWMutex
	startTime time.Time
	stats     Stats
	dropped   func() int64
	events    <-chan model.Event
}

// New creates an Aggregator that reads from the given Hub subscriber channel.
// droppedFn reports the Hub's dropped event count.
func New(events <-chan model.Event, droppedFn func() int64) *Aggregator {
	return &Aggregator{
		startTime: time.Now(),
		dropped:   droppedFn,
		events:    events,
	}
}

// Snapshot returns the current metrics.
func (a *Aggregator) Snapshot() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := a.stats
	if a.stats.LastRunAt != nil {
		t := *a.stats.LastRunAt
		s.LastRunAt = &t
	}
	s.Uptime = time.Since(a.startTime).Truncate(time.Second).String()
	if a.dropped != nil {
		s.DroppedEvents = a.dropped()
	}
	return s
}

// Start consumes events until the context is cancelled or the channel closes.
func (a *Aggregator) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-a.events:
			if !ok {
				return
			}
			a.record(ev)
		}
	}
}

func (a *Aggregator) record(ev model.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch ev.Type {
	case model.EventMemberScanned:
		a.stats.MembersScanned++
		a.stats.LinesMatched += ev.LinesMatched
	case model.EventMemberSkipped:
		a.stats.MembersSkipped++
	case model.EventRunFinished:
		a.stats.Runs++
		a.stats.LastOutput = ev.OutputPath
		a.stats.LastError = ""
		a.markRun(ev.Time)
	case model.EventRunFailed:
		a.stats.Runs++
		a.stats.Failures++
		a.stats.LastError = ev.Error
		a.markRun(ev.Time)
	}
}

func (a *Aggregator) markRun(t time.Time) {
	if t.IsZero() {
		t = time.Now()
	}
	a.stats.LastRunAt = &t
}
