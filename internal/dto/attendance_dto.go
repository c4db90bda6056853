package dto

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceResponse struct {
	Id             uuid.UUID  `json:"id"`
	SessionId      uuid.UUID  `json:"session_id"`
	StudentId      uuid.UUID  `json:"student_id"`
	StudentName    string     `json:"student_name,omitempty"`
	Status         string     `json:"status"`
	CheckInTime    *time.Time `json:"check_in_time"`
	VerifiedByFace bool       `json:"verified_by_face"`
}

type OverrideAttendanceRequest struct {
	SessionId uuid.UUID `json:"-"`
	StudentId uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=present late absent excused"`
}
