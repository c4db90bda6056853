package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type FaceVerificationLog struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId    *uuid.UUID     `gorm:"type:uuid;index"`
	Status    string         `gorm:"size:20;not null"`
	Distance  *float64       `gorm:""`
	Details   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (FaceVerificationLog) TableName() string {
	return "face_verification_logs"
}
