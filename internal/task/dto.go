// AngelaMos | 2026
// dto.go

package task

import (
	"time"
)

type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Deadline    string `json:"deadline"    validate:"required"`
	SubjectID   string `json:"subject_id"  validate:"required"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"       validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Deadline    *string `json:"deadline,omitempty"`
	SubjectID   *string `json:"subject_id,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// StatusResponse is the compact reply of the status endpoint.
type StatusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type TaskResponse struct {
	ID          string    `json:"id"`
	SubjectID   string    `json:"subject_id"`
	SubjectName string    `json:"subject_name,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToTaskResponse(t *Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		SubjectID:   t.SubjectID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		Status:      t.Status,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ToTaskResponseList(tasks []TaskWithSubject) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		resp := ToTaskResponse(&tasks[i].Task)
		resp.SubjectName = tasks[i].SubjectName
		out = append(out, resp)
	}
	return out
}
