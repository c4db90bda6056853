package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	VerificationMatched   = "matched"
	VerificationAmbiguous = "ambiguous"
	VerificationNoMatch   = "no_match"
	VerificationNoFace    = "no_face"
)

// FaceVerificationLog is the audit row for one detection processed by the
// recognizer, whether or not it produced an attendance mutation.
type FaceVerificationLog struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	UserId    *uuid.UUID
	Status    string
	Distance  *float64
	Details   map[string]interface{}
	CreatedAt time.Time
}
