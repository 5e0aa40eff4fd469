// AngelaMos | 2026
// dto.go

package dashboard

import (
	"github.com/carterperez-dev/studyplanner/internal/performance"
	"github.com/carterperez-dev/studyplanner/internal/subject"
	"github.com/carterperez-dev/studyplanner/internal/task"
	"github.com/carterperez-dev/studyplanner/internal/user"
)

type SummaryResponse struct {
	Subjects     []subject.SubjectResponse         `json:"subjects"`
	Tasks        []task.TaskResponse               `json:"tasks"`
	Performances []performance.PerformanceResponse `json:"performances"`
}

type ProfileResponse struct {
	User user.UserResponse `json:"user"`
	performance.OverviewResponse
}

func ToSummaryResponse(s *Summary) SummaryResponse {
	return SummaryResponse{
		Subjects:     subject.ToSubjectResponseList(s.Subjects),
		Tasks:        task.ToTaskResponseList(s.Upcoming),
		Performances: performance.ToPerformanceResponseList(s.Performances),
	}
}

func ToProfileResponse(p *Profile) ProfileResponse {
	return ProfileResponse{
		User:             user.ToUserResponse(p.User),
		OverviewResponse: performance.ToOverviewResponse(p.Overview),
	}
}
