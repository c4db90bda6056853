package mapper

import (
	"time"

	"facelog-be/internal/entity"
	"facelog-be/internal/model"
)

type RecognitionSettingsMapper struct{}

func NewRecognitionSettingsMapper() *RecognitionSettingsMapper {
	return &RecognitionSettingsMapper{}
}

func (m *RecognitionSettingsMapper) ToEntity(s *model.RecognitionSettings) *entity.RecognitionSettings {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.RecognitionSettings{
		Id:             s.Id,
		Threshold:      s.Threshold,
		DistanceMetric: s.DistanceMetric,
		DetectionModel: s.DetectionModel,
		UpdatedAt:      updatedAt,
	}
}

func (m *RecognitionSettingsMapper) ToModel(s *entity.RecognitionSettings) *model.RecognitionSettings {
	if s == nil {
		return nil
	}

	return &model.RecognitionSettings{
		Id:             s.Id,
		Threshold:      s.Threshold,
		DistanceMetric: s.DistanceMetric,
		DetectionModel: s.DetectionModel,
	}
}
