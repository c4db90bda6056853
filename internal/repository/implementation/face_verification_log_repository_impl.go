package implementation

import (
	"context"

	"facelog-be/internal/entity"
	"facelog-be/internal/mapper"
	"facelog-be/internal/model"
	"facelog-be/internal/repository/contract"
	"facelog-be/internal/repository/specification"

	"gorm.io/gorm"
)

type FaceVerificationLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FaceVerificationLogMapper
}

func NewFaceVerificationLogRepository(db *gorm.DB) contract.FaceVerificationLogRepository {
	return &FaceVerificationLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewFaceVerificationLogMapper(),
	}
}

func (r *FaceVerificationLogRepositoryImpl) Create(ctx context.Context, log *entity.FaceVerificationLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *FaceVerificationLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FaceVerificationLog, error) {
	var models []*model.FaceVerificationLog
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.FaceVerificationLog, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
