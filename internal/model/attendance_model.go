package model

import (
	"time"

	"github.com/google/uuid"
)

type Attendance struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_session_student"`
	StudentId      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_session_student;index"`
	Status         string     `gorm:"size:20;not null;default:'absent'"`
	CheckInTime    *time.Time `gorm:""`
	VerifiedByFace bool       `gorm:"default:false"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`
}

func (Attendance) TableName() string {
	return "attendances"
}
