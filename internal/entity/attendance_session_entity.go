package entity

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceSession is one scheduled class meeting of a ficha.
// ScheduledStart carries the session's time zone; the grace policy refuses
// zero timestamps, so sessions must always be scheduled with a full instant.
type AttendanceSession struct {
	Id             uuid.UUID
	FichaId        uuid.UUID
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	GraceMinutes   int
	IsActive       bool
	CreatedAt      time.Time
}
