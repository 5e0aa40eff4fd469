// AngelaMos | 2026
// dto.go

package subject

import (
	"time"
)

type CreateSubjectRequest struct {
	Name          string `json:"name"           validate:"required,min=1,max=100"`
	Difficulty    string `json:"difficulty"     validate:"required"`
	EstimatedTime int    `json:"estimated_time" validate:"required,min=1,max=100000"`
}

type UpdateSubjectRequest struct {
	Name          *string `json:"name,omitempty"           validate:"omitempty,min=1,max=100"`
	Difficulty    *string `json:"difficulty,omitempty"`
	EstimatedTime *int    `json:"estimated_time,omitempty" validate:"omitempty,min=1,max=100000"`
}

type SubjectResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Difficulty    Difficulty `json:"difficulty"`
	EstimatedTime int        `json:"estimated_time"`
	CreatedAt     time.Time  `json:"created_at"`
}

func ToSubjectResponse(s *Subject) SubjectResponse {
	return SubjectResponse{
		ID:            s.ID,
		Name:          s.Name,
		Difficulty:    s.Difficulty,
		EstimatedTime: s.EstimatedTime,
		CreatedAt:     s.CreatedAt,
	}
}

func ToSubjectResponseList(subjects []Subject) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(subjects))
	for i := range subjects {
		out = append(out, ToSubjectResponse(&subjects[i]))
	}
	return out
}
