// AngelaMos | 2026
// entity.go

package performance

import (
	"time"
)

// Performance is the materialized progress of one user on one subject. It is
// always recomputable from the task rows and is never written directly.
type Performance struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	SubjectID      string    `db:"subject_id"`
	Progress       float64   `db:"progress"`
	CompletionTime int       `db:"completion_time"`
	LastUpdated    time.Time `db:"last_updated"`
}

func (p *Performance) OwnerID() string {
	return p.UserID
}

// SubjectPerformance joins a performance row with its subject and task counts.
type SubjectPerformance struct {
	Performance
	SubjectName    string `db:"subject_name"`
	TotalTasks     int    `db:"total_tasks"`
	CompletedTasks int    `db:"completed_tasks"`
}

type Band string

const (
	BandLow    Band = "tier1"
	BandMiddle Band = "tier2"
	BandHigh   Band = "tier3"
)

// Overview summarizes a user's progress across every subject.
type Overview struct {
	TotalSubjects  int
	TotalTasks     int
	CompletedTasks int
	Percentage     float64
	Band           Band
	Message        string
}
