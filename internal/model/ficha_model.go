package model

import (
	"time"

	"github.com/google/uuid"
)

type Ficha struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Program   string     `gorm:"column:programa_formacion;size:100;not null"`
	Number    string     `gorm:"column:numero_ficha;size:20;uniqueIndex;not null"`
	Schedule  string     `gorm:"column:jornada;size:50"`
	StartDate *time.Time `gorm:"type:date"`
	EndDate   *time.Time `gorm:"type:date"`
	Students  []User     `gorm:"many2many:ficha_students;"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (Ficha) TableName() string {
	return "fichas"
}
