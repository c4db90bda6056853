package entity

import (
	"time"

	"github.com/google/uuid"
)

// FaceEncoding is one enrolled face embedding for a user. Re-enrolling
// deactivates the previous rows instead of deleting them, so the enrollment
// history stays auditable and only the active subset is matched against.
type FaceEncoding struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Encoding  []float32
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
