package model

import "time"

// EventType names a step in the life of an extraction run.
type EventType string

const (
	EventRunStarted    EventType = "run.started"
	EventMemberScanned EventType = "member.scanned"
	EventMemberSkipped EventType = "member.skipped"
	EventRunFinished   EventType = "run.finished"
	EventRunFailed     EventType = "run.failed"
)

// Event is a progress notification emitted while an extraction runs.
type Event struct {
	Type         EventType `json:"type"`
	Time         time.Time `json:"time"`
	Date         string    `json:"date"`
	Member       string    `json:"member,omitempty"`
	LinesMatched int64     `json:"lines_matched,omitempty"`
	OutputPath   string    `json:"output_path,omitempty"`
	Error        string    `json:"error,omitempty"`
}
