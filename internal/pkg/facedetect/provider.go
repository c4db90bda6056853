package facedetect

import (
	"context"
	"errors"

	"facelog-be/internal/pkg/facematch"
)

// ErrNoFaceOrMultipleFaces is returned by Embed when the enrollment portrait
// does not contain exactly one face.
var ErrNoFaceOrMultipleFaces = errors.New("facedetect: expected exactly one face in image")

// BoundingBox is the pixel region of one detected face within a frame.
type BoundingBox struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Detection is one face found in a frame, with its embedding.
type Detection struct {
	Box       BoundingBox
	Embedding facematch.Embedding
}

// Provider is the external face detection/embedding capability. The model
// behind it (and its accuracy) is a black box to this service.
type Provider interface {
	// DetectFaces returns zero or more detections for a captured frame.
	DetectFaces(ctx context.Context, image []byte, model string) ([]Detection, error)
	// Embed returns the embedding of a single-face enrollment portrait, or
	// ErrNoFaceOrMultipleFaces.
	Embed(ctx context.Context, image []byte) (facematch.Embedding, error)
}
