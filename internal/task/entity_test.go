// AngelaMos | 2026
// entity_test.go

package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := map[string]Status{
		"Pending":     StatusPending,
		"pending":     StatusPending,
		"In Progress": StatusInProgress,
		"InProgress":  StatusInProgress,
		"in_progress": StatusInProgress,
		"COMPLETED":   StatusCompleted,
	}
	for in, want := range tests {
		got, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseStatus("Done")
	assert.Error(t, err)
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("high")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("urgent")
	assert.Error(t, err)
}

func TestParseDeadline(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-01", time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC)},
		{"2025-03-01T10:30", time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"2025-03-01T10:30:45", time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"2025-03-01T10:30:00+02:00", time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDeadline(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	for _, bad := range []string{"", "03/01/2025", "2025-13-01"} {
		_, err := ParseDeadline(bad)
		assert.Error(t, err, bad)
	}
}
