package dto

type RecognitionSettingsResponse struct {
	Threshold      float64 `json:"threshold"`
	DistanceMetric string  `json:"distance_metric"`
	DetectionModel string  `json:"detection_model"`
}

type UpdateRecognitionSettingsRequest struct {
	Threshold      float64 `json:"threshold" validate:"required,gt=0,lte=1"`
	DistanceMetric string  `json:"distance_metric" validate:"required,oneof=euclidean cosine"`
	DetectionModel string  `json:"detection_model" validate:"required,oneof=hog cnn"`
}
