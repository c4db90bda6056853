package model

import "time"

type RecognitionSettings struct {
	Id             int       `gorm:"primaryKey"`
	Threshold      float64   `gorm:"not null;default:0.6"`
	DistanceMetric string    `gorm:"size:20;not null;default:'euclidean'"`
	DetectionModel string    `gorm:"size:20;not null;default:'hog'"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (RecognitionSettings) TableName() string {
	return "recognition_settings"
}
