package service

import (
	"errors"
	"time"

	"facelog-be/internal/entity"
)

var ErrMissingTimestamp = errors.New("observed time or session start is not set")

// GracePeriodPolicy decides whether an arrival counts as present or late.
type GracePeriodPolicy struct{}

func NewGracePeriodPolicy() *GracePeriodPolicy {
	return &GracePeriodPolicy{}
}

// ClassifyArrival compares the observed check-in time against the session's
// grace window. The boundary is inclusive: arriving exactly at
// start + grace_minutes is still present. Both timestamps must be set;
// comparing against a zero time would silently misclassify everything.
func (p *GracePeriodPolicy) ClassifyArrival(session *entity.AttendanceSession, observed time.Time) (string, error) {
	if observed.IsZero() || session.ScheduledStart.IsZero() {
		return "", ErrMissingTimestamp
	}

	deadline := session.ScheduledStart.Add(time.Duration(session.GraceMinutes) * time.Minute)
	if observed.After(deadline) {
		return entity.AttendanceLate, nil
	}
	return entity.AttendancePresent, nil
}
