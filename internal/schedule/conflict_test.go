// AngelaMos | 2026
// conflict_test.go

package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carterperez-dev/studyplanner/internal/calendar"
)

func slot(userID, date, start, end string) Schedule {
	return Schedule{
		UserID:    userID,
		Date:      calendar.MustDate(date),
		StartTime: calendar.MustClock(start),
		EndTime:   calendar.MustClock(end),
	}
}

func TestHasConflict(t *testing.T) {
	existing := []Schedule{
		slot("u1", "2025-03-01", "09:00", "10:00"),
		slot("u1", "2025-03-01", "14:00", "15:00"),
		slot("u2", "2025-03-01", "11:00", "12:00"),
		slot("u1", "2025-03-02", "11:00", "12:00"),
	}

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"touching end", "10:00", "11:00", false},
		{"touching start", "08:00", "09:00", false},
		{"inside", "09:15", "09:45", true},
		{"covering", "08:00", "16:00", true},
		{"overlapping tail", "14:30", "15:30", true},
		{"other user's slot", "11:00", "12:00", false},
		{"free gap", "12:00", "14:00", false},
	}

	date := calendar.MustDate("2025-03-01")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasConflict(
				"u1",
				date,
				calendar.MustClock(tt.start),
				calendar.MustClock(tt.end),
				existing,
			)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasConflictEmpty(t *testing.T) {
	assert.False(t, HasConflict(
		"u1",
		calendar.MustDate("2025-03-01"),
		calendar.MustClock("09:00"),
		calendar.MustClock("10:00"),
		nil,
	))
}
