// AngelaMos | 2026
// calendar_test.go

package calendar

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/studyplanner/internal/core"
)

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, c.Minutes())
	assert.Equal(t, "09:30", c.String())

	for _, bad := range []string{"", "9", "24:00", "12:60", "noon"} {
		_, err := ParseClock(bad)
		assert.ErrorIs(t, err, core.ErrInvalidInput, bad)
	}
}

func TestClockSQLRoundTrip(t *testing.T) {
	v, err := MustClock("14:05").Value()
	require.NoError(t, err)
	assert.Equal(t, "14:05", v)

	var c Clock
	require.NoError(t, c.Scan([]byte("07:45")))
	assert.Equal(t, MustClock("07:45"), c)
	assert.Error(t, c.Scan(42))
}

func TestDateScanAcceptsTimestampText(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2026-03-14 00:00:00+00:00"))
	assert.Equal(t, "2026-03-14", d.String())

	_, err := ParseDate("2026-02-30")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestJSONEncoding(t *testing.T) {
	body, err := json.Marshal(struct {
		Date  Date  `json:"date"`
		Start Clock `json:"start"`
	}{MustDate("2026-01-02"), MustClock("08:00")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-01-02","start":"08:00"}`, string(body))
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     [2]string
		overlaps bool
	}{
		{"touching endpoints", [2]string{"09:00", "10:00"}, [2]string{"10:00", "11:00"}, false},
		{"partial overlap", [2]string{"09:00", "10:30"}, [2]string{"10:00", "11:00"}, true},
		{"contained", [2]string{"09:00", "12:00"}, [2]string{"10:00", "11:00"}, true},
		{"identical", [2]string{"09:00", "10:00"}, [2]string{"09:00", "10:00"}, true},
		{"disjoint", [2]string{"08:00", "09:00"}, [2]string{"13:00", "14:00"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Interval{MustClock(tt.a[0]), MustClock(tt.a[1])}
			b := Interval{MustClock(tt.b[0]), MustClock(tt.b[1])}
			assert.Equal(t, tt.overlaps, a.Overlaps(b))
			assert.Equal(t, tt.overlaps, b.Overlaps(a))
		})
	}
}

func TestNewIntervalRejectsEmpty(t *testing.T) {
	_, err := NewInterval(MustClock("10:00"), MustClock("10:00"))
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	i, err := NewInterval(MustClock("10:00"), MustClock("11:30"))
	require.NoError(t, err)
	assert.Equal(t, 90, i.Minutes())
}
