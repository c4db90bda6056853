package entity

import "time"

// RecognitionSettings is the single-row configuration the resolver reads per
// call. Threshold semantics follow the distance metric: a detection matches a
// known encoding when distance <= Threshold.
type RecognitionSettings struct {
	Id             int
	Threshold      float64
	DistanceMetric string
	DetectionModel string
	UpdatedAt      *time.Time
}

func DefaultRecognitionSettings() *RecognitionSettings {
	return &RecognitionSettings{
		Id:             1,
		Threshold:      0.6,
		DistanceMetric: "euclidean",
		DetectionModel: "hog",
	}
}
