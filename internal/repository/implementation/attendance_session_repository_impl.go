package implementation

import (
	"context"
	"errors"

	"facelog-be/internal/entity"
	"facelog-be/internal/mapper"
	"facelog-be/internal/model"
	"facelog-be/internal/repository/contract"
	"facelog-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AttendanceSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AttendanceSessionMapper
}

func NewAttendanceSessionRepository(db *gorm.DB) contract.AttendanceSessionRepository {
	return &AttendanceSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewAttendanceSessionMapper(),
	}
}

func (r *AttendanceSessionRepositoryImpl) Create(ctx context.Context, session *entity.AttendanceSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *AttendanceSessionRepositoryImpl) Update(ctx context.Context, session *entity.AttendanceSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *AttendanceSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AttendanceSession, error) {
	var m model.AttendanceSession
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AttendanceSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AttendanceSession, error) {
	var models []*model.AttendanceSession
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.AttendanceSession, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
