package model

import "time"

// MemberKind classifies an archive member by its name suffix.
type MemberKind string

const (
	KindPlain       MemberKind = "log"
	KindGzip        MemberKind = "gzip"
	KindUnsupported MemberKind = "unsupported"
)

// MemberResult describes what happened to a single archive member during a scan.
type MemberResult struct {
	Name         string     `json:"name"`
	Kind         MemberKind `json:"kind"`
	Skipped      bool       `json:"skipped,omitempty"`
	LinesRead    int64      `json:"lines_read"`
	LinesMatched int64      `json:"lines_matched"`
}

// Report summarises one extraction run.
type Report struct {
	Date           string         `json:"date"`
	Archive        string         `json:"archive"`
	OutputPath     string         `json:"output_path"`
	Members        []MemberResult `json:"members"`
	MembersScanned int            `json:"members_scanned"`
	MembersSkipped int            `json:"members_skipped"`
	LinesRead      int64          `json:"lines_read"`
	LinesMatched   int64          `json:"lines_matched"`
	BytesWritten   int64          `json:"bytes_written"`
	StartedAt      time.Time      `json:"started_at"`
	FinishedAt     time.Time      `json:"finished_at"`
}

// Add records a member result and updates the running totals.
func (r *Report) Add(m MemberResult) {
	r.Members = append(r.Members, m)
	if m.Skipped {
		r.MembersSkipped++
		return
	}
	r.MembersScanned++
	r.LinesRead += m.LinesRead
	r.LinesMatched += m.LinesMatched
}

// Duration returns how long the run took. Zero if the run has not finished.
func (r Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
