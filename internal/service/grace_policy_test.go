package service

import (
	"testing"
	"time"

	"facelog-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionStartingAt(start time.Time, graceMinutes int) *entity.AttendanceSession {
	return &entity.AttendanceSession{
		ScheduledStart: start,
		ScheduledEnd:   start.Add(2 * time.Hour),
		GraceMinutes:   graceMinutes,
	}
}

func TestClassifyArrival(t *testing.T) {
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	policy := NewGracePeriodPolicy()

	tests := []struct {
		name     string
		grace    int
		observed time.Time
		want     string
	}{
		{"before session start", 10, start.Add(-5 * time.Minute), entity.AttendancePresent},
		{"exactly at start", 10, start, entity.AttendancePresent},
		{"inside grace window", 10, start.Add(9 * time.Minute), entity.AttendancePresent},
		{"exactly at grace boundary", 10, start.Add(10 * time.Minute), entity.AttendancePresent},
		{"one second past boundary", 10, start.Add(10*time.Minute + time.Second), entity.AttendanceLate},
		{"well past boundary", 10, start.Add(45 * time.Minute), entity.AttendanceLate},
		{"zero grace at start", 0, start, entity.AttendancePresent},
		{"zero grace one second late", 0, start.Add(time.Second), entity.AttendanceLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.ClassifyArrival(sessionStartingAt(start, tt.grace), tt.observed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyArrival_RejectsZeroTimes(t *testing.T) {
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	policy := NewGracePeriodPolicy()

	_, err := policy.ClassifyArrival(sessionStartingAt(start, 10), time.Time{})
	assert.ErrorIs(t, err, ErrMissingTimestamp)

	_, err = policy.ClassifyArrival(sessionStartingAt(time.Time{}, 10), start)
	assert.ErrorIs(t, err, ErrMissingTimestamp)
}
