// AngelaMos | 2026
// conflict.go

package schedule

import (
	"github.com/carterperez-dev/studyplanner/internal/calendar"
)

// HasConflict reports whether [start, end) overlaps any slot the user already
// holds on date. Slots that only touch at an endpoint do not conflict.
func HasConflict(
	userID string,
	date calendar.Date,
	start, end calendar.Clock,
	existing []Schedule,
) bool {
	want := calendar.Interval{Start: start, End: end}

	for i := range existing {
		s := &existing[i]
		if s.UserID != userID || !s.Date.Equal(date.Time) {
			continue
		}
		if want.Overlaps(s.Interval()) {
			return true
		}
	}

	return false
}
