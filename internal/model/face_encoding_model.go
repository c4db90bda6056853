package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type FaceEncoding struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Encoding  pgvector.Vector `gorm:"type:vector(128)"` // face_recognition dlib model outputs 128 dimensions
	IsActive  bool            `gorm:"default:true;index"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (FaceEncoding) TableName() string {
	return "face_encodings"
}
