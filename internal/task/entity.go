// AngelaMos | 2026
// entity.go

package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/carterperez-dev/studyplanner/internal/core"
)

// Status is unordered: any value may follow any other.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

func ParseStatus(s string) (Status, error) {
	switch normalizeEnum(s) {
	case "pending":
		return StatusPending, nil
	case "inprogress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("status %q: %w", s, core.ErrInvalidInput)
	}
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func ParsePriority(s string) (Priority, error) {
	switch normalizeEnum(s) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("priority %q: %w", s, core.ErrInvalidInput)
	}
}

func normalizeEnum(s string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").
		Replace(strings.ToLower(strings.TrimSpace(s)))
}

var deadlineLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDeadline accepts a date-time or a bare date. A bare date means the
// end of that day, 23:59. Zones are ignored and times are stored as UTC.
func ParseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d.Add(23*time.Hour + 59*time.Minute), nil
	}

	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(
				t.Year(), t.Month(), t.Day(),
				t.Hour(), t.Minute(), 0, 0,
				time.UTC,
			), nil
		}
	}

	return time.Time{}, fmt.Errorf("deadline %q: %w", s, core.ErrInvalidInput)
}

type Task struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	SubjectID   string    `db:"subject_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Deadline    time.Time `db:"deadline"`
	Status      Status    `db:"status"`
	Priority    Priority  `db:"priority"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (t *Task) OwnerID() string {
	return t.UserID
}

func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// TaskWithSubject is the list view row.
type TaskWithSubject struct {
	Task
	SubjectName string `db:"subject_name"`
}
