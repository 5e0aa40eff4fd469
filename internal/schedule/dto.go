// AngelaMos | 2026
// dto.go

package schedule

import (
	"time"

	"github.com/carterperez-dev/studyplanner/internal/calendar"
	"github.com/carterperez-dev/studyplanner/internal/task"
)

type CreateScheduleRequest struct {
	TaskID    string `json:"task_id"    validate:"required"`
	Date      string `json:"date"       validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time"   validate:"required"`
}

type ScheduleResponse struct {
	ID          string         `json:"id"`
	TaskID      string         `json:"task_id"`
	TaskTitle   string         `json:"task_title,omitempty"`
	TaskStatus  string         `json:"task_status,omitempty"`
	SubjectName string         `json:"subject_name,omitempty"`
	Date        calendar.Date  `json:"date"`
	StartTime   calendar.Clock `json:"start_time"`
	EndTime     calendar.Clock `json:"end_time"`
	Minutes     int            `json:"minutes"`
	CreatedAt   time.Time      `json:"created_at"`
}

// CalendarResponse is the body of GET /schedule.
type CalendarResponse struct {
	Schedules []ScheduleResponse  `json:"schedules"`
	Tasks     []task.TaskResponse `json:"tasks"`
}

func ToScheduleResponse(s *Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:        s.ID,
		TaskID:    s.TaskID,
		Date:      s.Date,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Minutes:   s.Interval().Minutes(),
		CreatedAt: s.CreatedAt,
	}
}

func ToScheduleResponseList(slots []ScheduleWithTask) []ScheduleResponse {
	out := make([]ScheduleResponse, 0, len(slots))
	for i := range slots {
		resp := ToScheduleResponse(&slots[i].Schedule)
		resp.TaskTitle = slots[i].TaskTitle
		resp.TaskStatus = slots[i].TaskStatus
		resp.SubjectName = slots[i].SubjectName
		out = append(out, resp)
	}
	return out
}
