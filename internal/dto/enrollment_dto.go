package dto

import "github.com/google/uuid"

// EnrollFaceRequest registers (or replaces) a student's face encoding from a
// reference photo uploaded as multipart.
type EnrollFaceRequest struct {
	StudentId uuid.UUID `json:"-"`
	Image     []byte    `json:"-"`
}

type EnrollFaceResponse struct {
	EncodingId uuid.UUID `json:"encoding_id"`
	Replaced   bool      `json:"replaced"`
}
