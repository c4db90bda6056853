package dto

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleSessionRequest struct {
	FichaId        uuid.UUID `json:"ficha_id" validate:"required"`
	ScheduledStart time.Time `json:"scheduled_start" validate:"required"`
	ScheduledEnd   time.Time `json:"scheduled_end" validate:"required"`
	GraceMinutes   int       `json:"grace_minutes" validate:"min=0,max=120"`
}

type ScheduleSessionResponse struct {
	Id          uuid.UUID `json:"id"`
	SeededCount int       `json:"seeded_count"`
}

type SessionResponse struct {
	Id             uuid.UUID `json:"id"`
	FichaId        uuid.UUID `json:"ficha_id"`
	ScheduledStart time.Time `json:"scheduled_start"`
	ScheduledEnd   time.Time `json:"scheduled_end"`
	GraceMinutes   int       `json:"grace_minutes"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}
