package entity

import (
	"time"

	"github.com/google/uuid"
)

// Ficha is a cohort: the group of students sharing one roster of face
// encodings. The name comes from the SENA training-program register.
type Ficha struct {
	Id         uuid.UUID
	Program    string
	Number     string
	Schedule   string
	StartDate  *time.Time
	EndDate    *time.Time
	StudentIds []uuid.UUID
	CreatedAt  time.Time
}
