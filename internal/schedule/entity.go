// AngelaMos | 2026
// entity.go

package schedule

import (
	"time"

	"github.com/carterperez-dev/studyplanner/internal/calendar"
)

// Schedule books one task into a time slot on a single day.
type Schedule struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	TaskID    string         `db:"task_id"`
	Date      calendar.Date  `db:"date"`
	StartTime calendar.Clock `db:"start_time"`
	EndTime   calendar.Clock `db:"end_time"`
	CreatedAt time.Time      `db:"created_at"`
}

func (s *Schedule) OwnerID() string {
	return s.UserID
}

func (s *Schedule) Interval() calendar.Interval {
	return calendar.Interval{Start: s.StartTime, End: s.EndTime}
}

// ScheduleWithTask is the calendar view row.
type ScheduleWithTask struct {
	Schedule
	TaskTitle   string `db:"task_title"`
	TaskStatus  string `db:"task_status"`
	SubjectName string `db:"subject_name"`
}
