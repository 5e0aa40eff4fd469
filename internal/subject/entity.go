// AngelaMos | 2026
// entity.go

package subject

import (
	"fmt"
	"strings"
	"time"

	"github.com/carterperez-dev/studyplanner/internal/core"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("difficulty %q: %w", s, core.ErrInvalidInput)
	}
}

// Subject owns tasks and a performance row; deleting it cascades to both
// and to the tasks' schedule slots.
type Subject struct {
	ID            string     `db:"id"`
	UserID        string     `db:"user_id"`
	Name          string     `db:"name"`
	Difficulty    Difficulty `db:"difficulty"`
	EstimatedTime int        `db:"estimated_time"`
	CreatedAt     time.Time  `db:"created_at"`
}

func (s *Subject) OwnerID() string {
	return s.UserID
}
