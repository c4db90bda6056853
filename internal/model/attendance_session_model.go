package model

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceSession struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FichaId        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_ficha_start"`
	ScheduledStart time.Time `gorm:"not null;uniqueIndex:idx_ficha_start"`
	ScheduledEnd   time.Time `gorm:"not null"`
	GraceMinutes   int       `gorm:"not null;default:0"`
	IsActive       bool      `gorm:"default:true"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (AttendanceSession) TableName() string {
	return "attendance_sessions"
}
