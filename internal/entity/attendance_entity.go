package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	AttendanceAbsent  = "absent"
	AttendancePresent = "present"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
)

// Attendance is the per-student record of one session, unique on
// (SessionId, StudentId). Rows are seeded as absent when the session is
// scheduled and only ever transitioned afterwards, never recreated.
type Attendance struct {
	Id             uuid.UUID
	SessionId      uuid.UUID
	StudentId      uuid.UUID
	Status         string
	CheckInTime    *time.Time
	VerifiedByFace bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
