// AngelaMos | 2026
// dto.go

package performance

import (
	"time"
)

type PerformanceResponse struct {
	ID             string    `json:"id"`
	SubjectID      string    `json:"subject_id"`
	SubjectName    string    `json:"subject_name"`
	Progress       float64   `json:"progress"`
	CompletionTime int       `json:"completion_time"`
	TotalTasks     int       `json:"total_tasks"`
	CompletedTasks int       `json:"completed_tasks"`
	LastUpdated    time.Time `json:"last_updated"`
}

type OverviewResponse struct {
	TotalSubjects  int     `json:"total_subjects"`
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	Percentage     float64 `json:"percentage"`
	Band           Band    `json:"band"`
	Message        string  `json:"message"`
}

func ToPerformanceResponse(p *SubjectPerformance) PerformanceResponse {
	return PerformanceResponse{
		ID:             p.ID,
		SubjectID:      p.SubjectID,
		SubjectName:    p.SubjectName,
		Progress:       p.Progress,
		CompletionTime: p.CompletionTime,
		TotalTasks:     p.TotalTasks,
		CompletedTasks: p.CompletedTasks,
		LastUpdated:    p.LastUpdated,
	}
}

func ToPerformanceResponseList(perfs []SubjectPerformance) []PerformanceResponse {
	out := make([]PerformanceResponse, 0, len(perfs))
	for i := range perfs {
		out = append(out, ToPerformanceResponse(&perfs[i]))
	}
	return out
}

func ToOverviewResponse(o *Overview) OverviewResponse {
	return OverviewResponse{
		TotalSubjects:  o.TotalSubjects,
		TotalTasks:     o.TotalTasks,
		CompletedTasks: o.CompletedTasks,
		Percentage:     o.Percentage,
		Band:           o.Band,
		Message:        o.Message,
	}
}
