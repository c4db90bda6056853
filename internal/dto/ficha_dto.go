package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateFichaRequest struct {
	Number    string    `json:"number" validate:"required"`
	Program   string    `json:"program" validate:"required"`
	Schedule  string    `json:"schedule" validate:"required,oneof=morning afternoon evening"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

type CreateFichaResponse struct {
	Id uuid.UUID `json:"id"`
}

type FichaResponse struct {
	Id           uuid.UUID `json:"id"`
	Number       string    `json:"number"`
	Program      string    `json:"program"`
	Schedule     string    `json:"schedule"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	StudentCount int       `json:"student_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type EnrollStudentsRequest struct {
	FichaId    uuid.UUID   `json:"-"`
	StudentIds []uuid.UUID `json:"student_ids" validate:"required,min=1"`
}

type FichaStudentResponse struct {
	Id          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	HasEncoding bool      `json:"has_encoding"`
}
