package mapper

import (
	"facelog-be/internal/entity"
	"facelog-be/internal/model"

	"github.com/google/uuid"
)

type FichaMapper struct{}

func NewFichaMapper() *FichaMapper {
	return &FichaMapper{}
}

func (m *FichaMapper) ToEntity(f *model.Ficha) *entity.Ficha {
	if f == nil {
		return nil
	}

	studentIds := make([]uuid.UUID, len(f.Students))
	for i, s := range f.Students {
		studentIds[i] = s.Id
	}

	return &entity.Ficha{
		Id:         f.Id,
		Program:    f.Program,
		Number:     f.Number,
		Schedule:   f.Schedule,
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,
		StudentIds: studentIds,
		CreatedAt:  f.CreatedAt,
	}
}

func (m *FichaMapper) ToModel(f *entity.Ficha) *model.Ficha {
	if f == nil {
		return nil
	}

	return &model.Ficha{
		Id:        f.Id,
		Program:   f.Program,
		Number:    f.Number,
		Schedule:  f.Schedule,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		CreatedAt: f.CreatedAt,
	}
}
