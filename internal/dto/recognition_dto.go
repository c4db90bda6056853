package dto

import (
	"time"

	"github.com/google/uuid"
)

// RecognizeFrameRequest carries one camera frame for a session. The image
// arrives as a multipart file upload; the bytes are attached after parsing.
type RecognizeFrameRequest struct {
	SessionId uuid.UUID `json:"-"`
	Image     []byte    `json:"-"`
}

type DetectionResult struct {
	Outcome     string     `json:"outcome"` // matched | already_marked | record_missing | ambiguous | no_match
	StudentId   *uuid.UUID `json:"student_id,omitempty"`
	StudentName string     `json:"student_name,omitempty"`
	Status      string     `json:"status,omitempty"` // present | late, when a record changed
	Distance    *float64   `json:"distance,omitempty"`
	Candidates  int        `json:"candidates,omitempty"`
}

// RecognitionOutcomeMessage is the in-process bus payload emitted for every
// detection, consumed asynchronously to persist verification logs and feed
// live session feeds.
type RecognitionOutcomeMessage struct {
	SessionId  uuid.UUID              `json:"session_id"`
	StudentId  *uuid.UUID             `json:"student_id,omitempty"`
	Outcome    string                 `json:"outcome"`
	Distance   *float64               `json:"distance,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	ObservedAt time.Time              `json:"observed_at"`
}

// Frame-level outcomes. Per-detection results only exist when the frame was
// actually processed.
const (
	FrameProcessed         = "processed"
	FrameNoActiveEncodings = "no_active_encodings"
	FrameNoFaceDetected    = "no_face_detected"
)

type RecognizeFrameResponse struct {
	SessionId   uuid.UUID         `json:"session_id"`
	Outcome     string            `json:"outcome"`
	FacesFound  int               `json:"faces_found"`
	Detections  []DetectionResult `json:"detections"`
	ProcessedAt time.Time         `json:"processed_at"`
}
