package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySession filters attendance rows and logs by session
type BySession struct {
	SessionID uuid.UUID
}

func (s BySession) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByStudent filters attendance rows by student
type ByStudent struct {
	StudentID uuid.UUID
}

func (s ByStudent) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("student_id = ?", s.StudentID)
}

// ByUser filters rows owned by a user (face encodings, logs)
type ByUser struct {
	UserID uuid.UUID
}

func (s ByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ActiveOnly keeps rows whose is_active flag is set
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// ByFicha filters sessions by their ficha
type ByFicha struct {
	FichaID uuid.UUID
}

func (s ByFicha) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("ficha_id = ?", s.FichaID)
}
