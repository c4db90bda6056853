package mapper

import (
	"encoding/json"
	"time"

	"facelog-be/internal/entity"
	"facelog-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type FaceEncodingMapper struct{}

func NewFaceEncodingMapper() *FaceEncodingMapper {
	return &FaceEncodingMapper{}
}

func (m *FaceEncodingMapper) ToEntity(e *model.FaceEncoding) *entity.FaceEncoding {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.FaceEncoding{
		Id:        e.Id,
		UserId:    e.UserId,
		Encoding:  e.Encoding.Slice(),
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *FaceEncodingMapper) ToModel(e *entity.FaceEncoding) *model.FaceEncoding {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.FaceEncoding{
		Id:        e.Id,
		UserId:    e.UserId,
		Encoding:  pgvector.NewVector(e.Encoding),
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *FaceEncodingMapper) ToEntities(encodings []*model.FaceEncoding) []*entity.FaceEncoding {
	entities := make([]*entity.FaceEncoding, len(encodings))
	for i, e := range encodings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

type FaceVerificationLogMapper struct{}

func NewFaceVerificationLogMapper() *FaceVerificationLogMapper {
	return &FaceVerificationLogMapper{}
}

func (m *FaceVerificationLogMapper) ToModel(e *entity.FaceVerificationLog) *model.FaceVerificationLog {
	if e == nil {
		return nil
	}

	var details datatypes.JSON
	if e.Details != nil {
		if raw, err := json.Marshal(e.Details); err == nil {
			details = datatypes.JSON(raw)
		}
	}

	return &model.FaceVerificationLog{
		Id:        e.Id,
		SessionId: e.SessionId,
		UserId:    e.UserId,
		Status:    e.Status,
		Distance:  e.Distance,
		Details:   details,
		CreatedAt: e.CreatedAt,
	}
}

func (m *FaceVerificationLogMapper) ToEntity(e *model.FaceVerificationLog) *entity.FaceVerificationLog {
	if e == nil {
		return nil
	}

	var details map[string]interface{}
	if len(e.Details) > 0 {
		_ = json.Unmarshal(e.Details, &details)
	}

	return &entity.FaceVerificationLog{
		Id:        e.Id,
		SessionId: e.SessionId,
		UserId:    e.UserId,
		Status:    e.Status,
		Distance:  e.Distance,
		Details:   details,
		CreatedAt: e.CreatedAt,
	}
}
